package dsl

import (
	"context"
	"strings"

	bylawkit "github.com/reoring/bylawkit"
	js "github.com/reoring/bylawkit/jsonschema"
)

// StringSet returns a node for a non-empty set of non-blank strings. Items
// are trimmed and de-duplicated keeping the first occurrence.
func StringSet() Node { return stringList{unique: true, minItems: 1} }

// StringList returns a node for an ordered list of non-blank strings. An empty
// list normalizes to absent.
func StringList() Node { return stringList{} }

type stringList struct {
	unique   bool
	minItems int
}

func (l stringList) Check(_ context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	arr, ok := v.([]any)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "array")}
	}
	var iss bylawkit.Issues
	out := make([]any, 0, len(arr))
	seen := make(map[string]struct{}, len(arr))
	for i, it := range arr {
		s, ok := it.(string)
		if !ok {
			iss = bylawkit.AppendIssues(iss, wrongType(p.Index(i), it, "string"))
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			iss = bylawkit.AppendIssues(iss, outOfRange(p.Index(i), it, "non-blank"))
			continue
		}
		if l.unique {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
		}
		out = append(out, s)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if len(arr) < l.minItems {
		return nil, bylawkit.Issues{outOfRange(p, v, "non-empty")}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (l stringList) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "array", Items: &js.Schema{Type: "string", MinLength: js.Int(1)}, UniqueItems: l.unique}
	if l.minItems > 0 {
		s.MinItems = js.Int(l.minItems)
	}
	return s
}
