// Package gojson adapts goccy/go-json's streaming decoder to the token engine.
// It is the default JSON driver.
package gojson

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/bylawkit/internal/engine"
)

type source struct {
	dec  *j.Decoder
	keys eng.KeyTracker
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	out := eng.Token{Offset: -1}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.keys.Open(true)
			out.Kind = eng.KindBeginObject
		case '[':
			s.keys.Open(false)
			out.Kind = eng.KindBeginArray
		case '}':
			s.keys.Close()
			out.Kind = eng.KindEndObject
		default:
			s.keys.Close()
			out.Kind = eng.KindEndArray
		}
	case string:
		out.Kind = s.keys.StringKind()
		out.String = v
	case bool:
		s.keys.Value()
		out.Kind, out.Bool = eng.KindBool, v
	case j.Number:
		s.keys.Value()
		out.Kind, out.Number = eng.KindNumber, string(v)
	default:
		s.keys.Value()
		out.Kind = eng.KindNull
	}
	return out, nil
}

// Location is unknown for go-json; byte limits are applied before decoding.
func (s *source) Location() int64 { return -1 }
