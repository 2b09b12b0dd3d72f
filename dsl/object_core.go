package dsl

import (
	"context"
	"sort"

	bylawkit "github.com/reoring/bylawkit"
	js "github.com/reoring/bylawkit/jsonschema"
)

// ObjectSchema is a fixed-shape object built by Object().
type ObjectSchema struct {
	fields        map[string]Node
	required      map[string]struct{}
	readOnly      map[string]Node
	unknownPolicy bylawkit.UnknownPolicy
	title         string
	sortedKeys    []string
}

var _ Node = (*ObjectSchema)(nil)

// Keys returns the declared field keys in ascending order.
func (o *ObjectSchema) Keys() []string { return append([]string(nil), o.sortedKeys...) }

// IsRequired reports whether key is required.
func (o *ObjectSchema) IsRequired(key string) bool {
	_, ok := o.required[key]
	return ok
}

// IsReadOnly reports whether key is accepted and discarded.
func (o *ObjectSchema) IsReadOnly(key string) bool {
	_, ok := o.readOnly[key]
	return ok
}

// FieldNode returns the node declared for key.
func (o *ObjectSchema) FieldNode(key string) (Node, bool) {
	n, ok := o.fields[key]
	return n, ok
}

// Check validates every known field in key order, then unknown keys in key
// order. A missing key, an explicit null and a value that normalizes to
// absent are all treated as absence.
func (o *ObjectSchema) Check(ctx context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "object")}
	}
	out := make(map[string]any, len(src))
	var iss bylawkit.Issues
	for _, k := range o.sortedKeys {
		_, req := o.required[k]
		raw, exists := src[k]
		if !exists || raw == nil {
			if req {
				iss = bylawkit.AppendIssues(iss, missingRequired(p.Field(k)))
			}
			continue
		}
		val, i2 := o.fields[k].Check(ctx, p.Field(k), raw)
		if len(i2) > 0 {
			iss = bylawkit.AppendIssues(iss, i2...)
			continue
		}
		if val == nil {
			if req {
				iss = bylawkit.AppendIssues(iss, missingRequired(p.Field(k)))
			}
			continue
		}
		out[k] = val
	}
	iss = append(iss, o.collectUnknown(p, src, out)...)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// collectUnknown processes unknown keys according to unknownPolicy and may write into out for passthrough.
func (o *ObjectSchema) collectUnknown(p bylawkit.PathRef, src, out map[string]any) bylawkit.Issues {
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; known {
			continue
		}
		if _, ro := o.readOnly[k]; ro {
			continue
		}
		uks = append(uks, k)
	}
	sort.Strings(uks)
	var iss bylawkit.Issues
	for _, k := range uks {
		switch o.unknownPolicy {
		case bylawkit.UnknownPassthrough:
			out[k] = src[k]
		default:
			iss = bylawkit.AppendIssues(iss, unknownField(p.Field(k)))
		}
	}
	return iss
}

func (o *ObjectSchema) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "object", Title: o.title, Properties: map[string]*js.Schema{}}
	for _, k := range o.sortedKeys {
		s.Properties[k] = o.fields[k].JSONSchema()
		if _, req := o.required[k]; req {
			s.Required = append(s.Required, k)
		}
	}
	for k, n := range o.readOnly {
		ps := &js.Schema{}
		if n != nil {
			ps = n.JSONSchema()
		}
		ps.ReadOnly = true
		s.Properties[k] = ps
	}
	s.AdditionalProperties = js.AllowAdditional(o.unknownPolicy == bylawkit.UnknownPassthrough)
	return s
}
