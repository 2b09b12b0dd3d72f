package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bylawkit "github.com/reoring/bylawkit"
)

func TestDecodeBody(t *testing.T) {
	d, err := DecodeBody(context.Background(), strings.NewReader(`{"municipality_id":"x","n":1.50}`), bylawkit.ParseOpt{})
	require.NoError(t, err)
	assert.Equal(t, "x", d.Payload["municipality_id"])
	assert.Empty(t, d.Warnings)

	ctx := ContextWithDecoded(context.Background(), d)
	got, ok := DecodedFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, d.Payload, got.Payload)

	_, ok = DecodedFromContext(context.Background())
	assert.False(t, ok)
}

func TestDecodeBody_Failures(t *testing.T) {
	small := DefaultParseOpt()
	small.MaxBytes = 8
	cases := []struct {
		name string
		body string
		opt  bylawkit.ParseOpt
		code string
	}{
		{"syntax", `{"a":`, bylawkit.ParseOpt{}, bylawkit.CodeParseError},
		{"duplicate", `{"a":1,"a":2}`, bylawkit.ParseOpt{}, bylawkit.CodeDuplicateKey},
		{"too large", `{"municipality_id":"x"}`, small, bylawkit.CodeTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBody(context.Background(), strings.NewReader(tc.body), tc.opt)
			var de *bylawkit.DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, http.StatusBadRequest, StatusFor(err))
		})
	}

	_, err := DecodeBody(context.Background(), strings.NewReader(`[1,2]`), bylawkit.ParseOpt{})
	require.ErrorIs(t, err, bylawkit.ErrNotAnObject)
}

func TestErrorPayload(t *testing.T) {
	iss := bylawkit.Issues{{Path: "permit_type", Code: bylawkit.CodeInvalidEnumValue}}
	p := ErrorPayload(iss)
	assert.Equal(t, "validation failed", p["error"])
	assert.Equal(t, iss, p["issues"])
	assert.Equal(t, http.StatusBadRequest, StatusFor(iss))

	p = ErrorPayload(errors.New("boom"))
	assert.Equal(t, "boom", p["error"])
	assert.Equal(t, bylawkit.Issues{}, p["issues"])
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}
