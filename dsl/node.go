package dsl

import (
	"context"

	bylawkit "github.com/reoring/bylawkit"
	js "github.com/reoring/bylawkit/jsonschema"
)

// Node checks a raw value at path p and returns its canonical form.
// A nil result without Issues means the value normalizes to absent.
// Nodes are stateless after construction and safe for concurrent use.
type Node interface {
	Check(ctx context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues)
	JSONSchema() *js.Schema
}

// Describe returns n with a description attached to its JSON Schema.
func Describe(n Node, text string) Node { return described{Node: n, text: text} }

type described struct {
	Node
	text string
}

func (d described) JSONSchema() *js.Schema {
	s := d.Node.JSONSchema()
	if s == nil {
		s = &js.Schema{}
	}
	s.Description = d.text
	return s
}
