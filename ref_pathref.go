package bylawkit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/bylawkit/internal/engine"
)

// Ref exposes helpers for rules: presence access and path building.
type Ref interface {
	Presence() PresenceMap
	Root() PathRef
	At(path string) PathRef
}

// PathRef builds field paths in a chain-safe way and creates Issues.
// String renders dot/bracket notation; Pointer renders an RFC 6901 JSON Pointer.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	String() string
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

type refImpl struct {
	presence PresenceMap
}

func NewRef(pm PresenceMap) Ref { return &refImpl{presence: pm} }

// Root returns the empty path.
func Root() PathRef { return &pathRef{} }

func (r *refImpl) Presence() PresenceMap { return r.presence }
func (r *refImpl) Root() PathRef         { return Root() }

// At parses a dot-separated path such as "parking_configuration_allowed.garage".
// Bracketed indexes ("permitted_zones[1]") are recognized; quoted bracket keys are not.
func (r *refImpl) At(path string) PathRef {
	var p PathRef = Root()
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}
		name, rest, _ := strings.Cut(seg, "[")
		p = p.Field(name)
		for rest != "" {
			idx, tail, ok := strings.Cut(rest, "]")
			if !ok {
				break
			}
			if i, err := strconv.Atoi(idx); err == nil {
				p = p.Index(i)
			}
			rest = strings.TrimPrefix(tail, "[")
		}
	}
	return p
}

type segment struct {
	key     string
	index   int
	isIndex bool
}

type pathRef struct {
	parts []segment
}

func (p *pathRef) Field(name string) PathRef {
	return &pathRef{parts: append(append([]segment{}, p.parts...), segment{key: name})}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]segment{}, p.parts...), segment{index: i, isIndex: true})}
}

func (p *pathRef) String() string {
	out := ""
	for _, s := range p.parts {
		if s.isIndex {
			out = engine.AppendIndex(out, s.index)
			continue
		}
		out = engine.AppendKey(out, s.key)
	}
	return out
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p.parts {
		b.WriteByte('/')
		if s.isIndex {
			b.WriteString(strconv.Itoa(s.index))
			continue
		}
		b.WriteString(engine.PointerEscape(s.key))
	}
	return b.String()
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: p.String(), Code: code, Message: msg, Params: m}
}
