// Package yaml turns a YAML document into the token stream consumed by the
// engine, so bylaw records can be authored as YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/bylawkit/internal/engine"
)

// ErrMultipleDocuments is returned when a stream holds more than one document.
var ErrMultipleDocuments = errors.New("yaml: multiple documents are not supported")

// ErrExpansionLimit is returned when alias expansion would produce far more
// tokens than the document's size accounts for.
var ErrExpansionLimit = errors.New("yaml: alias expansion exceeds document size")

// Token budget: a fixed allowance plus a multiple of the input length.
const (
	baseTokenBudget = 4096
	tokensPerByte   = 16
)

type source struct {
	toks  []eng.Token
	pos   int
	err   error
	limit int
}

// NewReader parses the first YAML document from r.
func NewReader(r io.Reader) eng.TokenSource {
	data, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(data)
}

// NewBytes parses the first YAML document in b.
func NewBytes(b []byte) eng.TokenSource {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &source{}
		}
		return &source{err: err}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return &source{err: ErrMultipleDocuments}
	}
	s := &source{limit: baseTokenBudget + tokensPerByte*len(b)}
	if err := s.walk(&doc, 0); err != nil {
		return &source{err: err}
	}
	return s
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *source) Location() int64 { return -1 }

const maxAliasDepth = 64

func (s *source) walk(n *yaml.Node, aliasDepth int) error {
	if len(s.toks) > s.limit {
		return fmt.Errorf("%w at line %d", ErrExpansionLimit, n.Line)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return s.walk(n.Content[0], aliasDepth)
	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth || n.Alias == nil {
			return fmt.Errorf("yaml: alias nesting too deep at line %d", n.Line)
		}
		return s.walk(n.Alias, aliasDepth+1)
	case yaml.MappingNode:
		s.emit(eng.Token{Kind: eng.KindBeginObject})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("yaml: non-scalar mapping key at line %d", k.Line)
			}
			s.emit(eng.Token{Kind: eng.KindKey, String: k.Value})
			if err := s.walk(n.Content[i+1], aliasDepth); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		s.emit(eng.Token{Kind: eng.KindBeginArray})
		for _, c := range n.Content {
			if err := s.walk(c, aliasDepth); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		return s.scalar(n)
	default:
		return fmt.Errorf("yaml: unsupported node kind %d at line %d", n.Kind, n.Line)
	}
	return nil
}

func (s *source) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		s.emit(eng.Token{Kind: eng.KindNull})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		s.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return err
		}
		s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10)})
	case "!!float":
		s.emit(eng.Token{Kind: eng.KindNumber, Number: floatText(n.Value)})
	default:
		s.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
	return nil
}

// floatText maps YAML float spellings onto text strconv.ParseFloat accepts.
func floatText(v string) string {
	switch strings.ToLower(v) {
	case ".nan":
		return "NaN"
	case ".inf", "+.inf":
		return "+Inf"
	case "-.inf":
		return "-Inf"
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, "_", ""), 64)
	if err != nil || math.IsNaN(f) {
		return v
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (s *source) emit(t eng.Token) {
	t.Offset = -1
	s.toks = append(s.toks, t)
}
