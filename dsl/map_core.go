package dsl

import (
	"context"
	"sort"

	bylawkit "github.com/reoring/bylawkit"
	js "github.com/reoring/bylawkit/jsonschema"
)

// MapOf returns a node for an open-ended object: any key is accepted and each
// value is checked against entry. An empty map normalizes to absent.
func MapOf(entry Node) Node { return mapSchema{entry: entry} }

type mapSchema struct{ entry Node }

func (m mapSchema) Check(ctx context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "object")}
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]any, len(src))
	var iss bylawkit.Issues
	for _, k := range keys {
		raw := src[k]
		if raw == nil {
			iss = bylawkit.AppendIssues(iss, wrongType(p.Field(k), raw, "non-null"))
			continue
		}
		val, i2 := m.entry.Check(ctx, p.Field(k), raw)
		if len(i2) > 0 {
			iss = bylawkit.AppendIssues(iss, i2...)
			continue
		}
		if val != nil {
			out[k] = val
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (m mapSchema) JSONSchema() *js.Schema {
	return &js.Schema{Type: "object", AdditionalProperties: js.AdditionalSchema(m.entry.JSONSchema())}
}

// FlagSet returns a node for a fixed set of independent booleans. Unknown
// flags are rejected and absent flags normalize to false.
func FlagSet(flags ...string) Node {
	return flagSet{flags: append([]string(nil), flags...)}
}

type flagSet struct{ flags []string }

func (f flagSet) Check(_ context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "object")}
	}
	known := make(map[string]struct{}, len(f.flags))
	out := make(map[string]any, len(f.flags))
	var iss bylawkit.Issues
	for _, k := range f.flags {
		known[k] = struct{}{}
		raw, exists := src[k]
		if !exists {
			out[k] = false
			continue
		}
		b, ok := raw.(bool)
		if !ok {
			iss = bylawkit.AppendIssues(iss, wrongType(p.Field(k), raw, "boolean"))
			continue
		}
		out[k] = b
	}
	var unknown []string
	for k := range src {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		iss = bylawkit.AppendIssues(iss, unknownField(p.Field(k)))
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Flags returns the declared flag names in declaration order.
func (f flagSet) Flags() []string { return append([]string(nil), f.flags...) }

func (f flagSet) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "object", Properties: map[string]*js.Schema{}, AdditionalProperties: js.AllowAdditional(false)}
	for _, k := range f.flags {
		s.Properties[k] = &js.Schema{Type: "boolean", Default: false}
	}
	return s
}
