package dsl

import (
	"encoding/json"
	"fmt"
	"math"

	bylawkit "github.com/reoring/bylawkit"
)

func missingRequired(p bylawkit.PathRef) bylawkit.Issue {
	return bylawkit.NewIssue(p, bylawkit.CodeMissingRequired, nil)
}

func unknownField(p bylawkit.PathRef) bylawkit.Issue {
	return bylawkit.NewIssue(p, bylawkit.CodeUnknownField, nil)
}

func wrongType(p bylawkit.PathRef, v any, expected string) bylawkit.Issue {
	return bylawkit.NewIssue(p, bylawkit.CodeWrongType, map[string]any{"value": paramValue(v), "expected": expected, "received": typeName(v)})
}

func outOfRange(p bylawkit.PathRef, v any, constraint string) bylawkit.Issue {
	return bylawkit.NewIssue(p, bylawkit.CodeOutOfRange, map[string]any{"value": paramValue(v), "constraint": constraint})
}

func invalidEnum(p bylawkit.PathRef, v any, allowed []string) bylawkit.Issue {
	return bylawkit.NewIssue(p, bylawkit.CodeInvalidEnumValue, map[string]any{"value": paramValue(v), "allowed": append([]string(nil), allowed...)})
}

// paramValue makes a received value safe to echo back in Issue params.
// Containers are summarized by kind; non-finite floats become text.
func paramValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Sprint(t)
		}
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return fmt.Sprint(t)
		}
	case json.Number:
		return t.String()
	}
	return v
}

// typeName describes a raw value for diagnostics.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
