package engine

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	toks []Token
	pos  int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.pos) }

func tokens(ts ...Token) *sliceSource { return &sliceSource{toks: ts} }

var (
	bo  = Token{Kind: KindBeginObject}
	eo  = Token{Kind: KindEndObject}
	ba  = Token{Kind: KindBeginArray}
	ea  = Token{Kind: KindEndArray}
	nul = Token{Kind: KindNull}
)

func key(k string) Token   { return Token{Kind: KindKey, String: k} }
func str(v string) Token   { return Token{Kind: KindString, String: v} }
func num(n string) Token   { return Token{Kind: KindNumber, Number: n} }
func boolean(b bool) Token { return Token{Kind: KindBool, Bool: b} }

func TestDecodeAny(t *testing.T) {
	src := tokens(bo,
		key("permit_type"), str("by_right"),
		key("zones"), ba, str("R-1"), str("R-2"), ea,
		key("spaces"), num("1"),
		key("flags"), bo, key("garage"), boolean(true), eo,
		key("gone"), nul,
		eo)
	v, err := DecodeAny(src)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"permit_type": "by_right",
		"zones":       []any{"R-1", "R-2"},
		"spaces":      json.Number("1"),
		"flags":       map[string]any{"garage": true},
		"gone":        nil,
	}, v)
}

func TestDecodeAny_Errors(t *testing.T) {
	_, err := DecodeAny(tokens())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = DecodeAny(tokens(bo, key("a")))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = DecodeAny(tokens(bo, eo, bo, eo))
	assert.ErrorIs(t, err, ErrTrailingData)

	_, err = DecodeAny(tokens(bo, str("not a key"), eo))
	assert.ErrorIs(t, err, ErrUnexpectedToken)
}

func TestEnforce_Duplicate(t *testing.T) {
	stream := func() *sliceSource {
		return tokens(bo, key("fees"), bo, key("school"), num("1"), key("school"), num("2"), eo, eo)
	}

	_, err := DecodeAny(Enforce(stream(), Limits{OnDuplicate: DupError}))
	var le *LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "duplicate_key", le.Code)
	assert.Equal(t, "fees.school", le.Path)

	var warned []LimitError
	v, err := DecodeAny(Enforce(stream(), Limits{OnDuplicate: DupWarn, Warn: func(e LimitError) { warned = append(warned, e) }}))
	require.NoError(t, err)
	require.Len(t, warned, 1)
	assert.Equal(t, "fees.school", warned[0].Path)
	// last value wins
	assert.Equal(t, json.Number("2"), v.(map[string]any)["fees"].(map[string]any)["school"])

	_, err = DecodeAny(Enforce(stream(), Limits{}))
	require.NoError(t, err)
}

func TestEnforce_Depth(t *testing.T) {
	src := tokens(bo, key("zones"), ba, str("R-1"), bo, key("x"), num("1"), eo, ea, eo)
	_, err := DecodeAny(Enforce(src, Limits{MaxDepth: 2}))
	var le *LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "too_deep", le.Code)
	assert.Equal(t, "zones[1]", le.Path)
}

func TestEnforce_Bytes(t *testing.T) {
	src := tokens(bo, key("a"), num("1"), key("b"), num("2"), eo)
	_, err := DecodeAny(Enforce(src, Limits{MaxBytes: 3}))
	var le *LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "too_large", le.Code)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "a", AppendKey("", "a"))
	assert.Equal(t, "a.b_c", AppendKey("a", "b_c"))
	assert.Equal(t, `a["R 1"]`, AppendKey("a", "R 1"))
	assert.Equal(t, `["1st"]`, AppendKey("", "1st"))
	assert.Equal(t, "a.r-1", AppendKey("a", "r-1"))
	assert.Equal(t, "zones[3]", AppendIndex("zones", 3))
	assert.Equal(t, "a~1b~0c", PointerEscape("a/b~c"))
	assert.False(t, IsPlainKey(""))
}

func TestKeyTracker(t *testing.T) {
	var kt KeyTracker
	kt.Open(true)
	assert.Equal(t, KindKey, kt.StringKind())
	assert.Equal(t, KindString, kt.StringKind())
	assert.Equal(t, KindKey, kt.StringKind())
	kt.Open(false)
	assert.Equal(t, KindString, kt.StringKind())
	assert.Equal(t, KindString, kt.StringKind())
	kt.Close()
	assert.Equal(t, KindKey, kt.StringKind())
}
