package echomw

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bylawkit "github.com/reoring/bylawkit"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.POST("/in", func(c echo.Context) error {
		d, ok := GetDecoded(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, d.Payload)
	}, DecodeJSON(bylawkit.ParseOpt{}))
	return e
}

func TestDecodeJSON_OK(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/in", strings.NewReader(`{"permit_type":"by_right"}`))
	newEcho().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]any
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "by_right", out["permit_type"])
}

func TestDecodeJSON_Duplicate(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/in", strings.NewReader(`{"a":1,"a":2}`))
	newEcho().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var out struct {
		Error  string           `json:"error"`
		Issues []bylawkit.Issue `json:"issues"`
	}
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Error, bylawkit.CodeDuplicateKey)
	assert.Empty(t, out.Issues)
}
