package dsl

import (
	"context"
	"strings"
	"time"

	bylawkit "github.com/reoring/bylawkit"
	js "github.com/reoring/bylawkit/jsonschema"
)

// Text returns a free-text node: strings are trimmed and blank text
// normalizes to absent.
func Text() Node { return textSchema{} }

// Date returns a calendar date node (YYYY-MM-DD).
func Date() Node { return dateSchema{} }

// Timestamp returns an RFC 3339 instant node normalized to UTC.
func Timestamp() Node { return timestampSchema{} }

// Bool returns a boolean node.
func Bool() Node { return boolSchema{} }

// Enum returns a node accepting exactly one of values. Comparison is
// case-sensitive and the input is not trimmed.
func Enum(values ...string) Node {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return enumSchema{values: append([]string(nil), values...), set: set}
}

type textSchema struct{}

func (textSchema) Check(_ context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	s, ok := v.(string)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "string")}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return s, nil
}

func (textSchema) JSONSchema() *js.Schema { return &js.Schema{Type: "string"} }

const dateLayout = "2006-01-02"

type dateSchema struct{}

func (dateSchema) Check(_ context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	s, ok := v.(string)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "date")}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, bylawkit.Issues{wrongType(p, v, "date")}
	}
	return d.Format(dateLayout), nil
}

func (dateSchema) JSONSchema() *js.Schema { return &js.Schema{Type: "string", Format: "date"} }

type timestampSchema struct{}

func (timestampSchema) Check(_ context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	s, ok := v.(string)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "date-time")}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, bylawkit.Issues{wrongType(p, v, "date-time")}
	}
	return t.UTC().Format(time.RFC3339Nano), nil
}

func (timestampSchema) JSONSchema() *js.Schema {
	return &js.Schema{Type: "string", Format: "date-time"}
}

type boolSchema struct{}

func (boolSchema) Check(_ context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	b, ok := v.(bool)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "boolean")}
	}
	return b, nil
}

func (boolSchema) JSONSchema() *js.Schema { return &js.Schema{Type: "boolean"} }

type enumSchema struct {
	values []string
	set    map[string]struct{}
}

func (e enumSchema) Check(_ context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	s, ok := v.(string)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "string")}
	}
	if _, ok := e.set[s]; !ok {
		return nil, bylawkit.Issues{invalidEnum(p, s, e.values)}
	}
	return s, nil
}

func (e enumSchema) JSONSchema() *js.Schema {
	vals := make([]any, len(e.values))
	for i, v := range e.values {
		vals[i] = v
	}
	return &js.Schema{Type: "string", Enum: vals}
}
