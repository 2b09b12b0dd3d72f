package dsl

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"

	bylawkit "github.com/reoring/bylawkit"
	js "github.com/reoring/bylawkit/jsonschema"
)

// NumberBuilder configures a numeric node.
type NumberBuilder struct {
	min, max *float64
	integer  bool
}

var _ Node = (*NumberBuilder)(nil)

// Number returns an unbounded finite number node. Numeric strings are
// rejected with wrong_type.
func Number() *NumberBuilder { return &NumberBuilder{} }

// Measure is a finite number >= 0 (lengths, areas, money).
func Measure() *NumberBuilder { return Number().Min(0) }

// Percent is a finite number in [0, 100].
func Percent() *NumberBuilder { return Number().Min(0).Max(100) }

// Count is an integer >= 0.
func Count() *NumberBuilder { return Number().Integer().Min(0) }

// Min sets an inclusive lower bound.
func (n *NumberBuilder) Min(f float64) *NumberBuilder {
	n.min = &f
	return n
}

// Max sets an inclusive upper bound.
func (n *NumberBuilder) Max(f float64) *NumberBuilder {
	n.max = &f
	return n
}

// Integer rejects values with a fractional part; canonical values are int64.
func (n *NumberBuilder) Integer() *NumberBuilder {
	n.integer = true
	return n
}

func (n *NumberBuilder) expected() string {
	if n.integer {
		return "integer"
	}
	return "number"
}

func (n *NumberBuilder) Check(_ context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	f, ok := toFloat(v)
	if !ok {
		return nil, bylawkit.Issues{wrongType(p, v, n.expected())}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, bylawkit.Issues{outOfRange(p, f, "finite")}
	}
	if n.integer && f != math.Trunc(f) {
		return nil, bylawkit.Issues{wrongType(p, v, "integer")}
	}
	if n.min != nil && f < *n.min {
		return nil, bylawkit.Issues{outOfRange(p, numberParam(v, f), ">= "+formatBound(*n.min))}
	}
	if n.max != nil && f > *n.max {
		return nil, bylawkit.Issues{outOfRange(p, numberParam(v, f), "<= "+formatBound(*n.max))}
	}
	if n.integer {
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return nil, bylawkit.Issues{outOfRange(p, numberParam(v, f), "64-bit integer")}
		}
		if num, isNum := v.(json.Number); isNum {
			if i, err := num.Int64(); err == nil {
				return i, nil
			}
		}
		return int64(f), nil
	}
	return f, nil
}

func (n *NumberBuilder) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "number", Minimum: n.min, Maximum: n.max}
	if n.integer {
		s.Type = "integer"
	}
	return s
}

// NumberOrBool returns a node for open-map entries whose value is either a
// finite number >= 0 or a boolean.
func NumberOrBool() Node { return numberOrBool{num: Measure()} }

type numberOrBool struct{ num *NumberBuilder }

func (nb numberOrBool) Check(ctx context.Context, p bylawkit.PathRef, v any) (any, bylawkit.Issues) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	if _, ok := toFloat(v); !ok {
		return nil, bylawkit.Issues{wrongType(p, v, "number or boolean")}
	}
	return nb.num.Check(ctx, p, v)
}

func (nb numberOrBool) JSONSchema() *js.Schema {
	return &js.Schema{OneOf: []*js.Schema{nb.num.JSONSchema(), {Type: "boolean"}}}
}

// toFloat accepts JSON numbers from any supported decoder plus native Go
// numeric types. Strings are never coerced.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		return parseNumberText(string(t))
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case numberText:
		return parseNumberText(t.String())
	}
	return 0, false
}

// numberText matches number literal types of other JSON libraries.
type numberText interface {
	Float64() (float64, error)
	String() string
}

func parseNumberText(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// range errors yield ±Inf and surface as out_of_range
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// numberParam echoes the received number, preferring its original text.
func numberParam(v any, f float64) any {
	if num, ok := v.(json.Number); ok {
		return num.String()
	}
	return f
}

func formatBound(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
