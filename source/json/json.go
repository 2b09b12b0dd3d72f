// Package json adapts encoding/json's streaming decoder to the token engine.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/bylawkit/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	keys       eng.KeyTracker
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()
	out := eng.Token{Offset: s.lastOffset}

	switch v := tok.(type) {
	case json.Delim:
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
	case json.Number:
		s.keys.Value()
		out.Kind, out.Number = eng.KindNumber, string(v)
	case float64:
		s.keys.Value()
		out.Kind, out.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	default:
		s.keys.Value()
		out.Kind = eng.KindNull
	}
	return out, nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
