// Package rules provides typed conditional rules evaluated over a validated
// value. Rules address fields by dot path using the same keys as the wire
// format (see bylawkit.FieldKey).
package rules

import (
	"reflect"
	"strconv"
	"strings"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/i18n"
)

// Op defines simple comparison operators for If(...).Then(...)
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Rule is a typed rule function.
type Rule[T any] = func(bylawkit.DomainCtx[T], T) []bylawkit.Issue

// Conditional composes conditional execution of rules.
type Conditional[T any] struct {
	path string
	op   Op
	want any
	all  []Conditional[T] // composite AND
	any  []Conditional[T] // composite OR
}

// If builds a conditional that evaluates the value at a dot path against want.
// Absent values never satisfy the condition.
func If[T any](path string, op Op, want any) Conditional[T] {
	return Conditional[T]{path: path, op: op, want: want}
}

// IfAll builds a conditional that requires all conditions to hold.
func IfAll[T any](conds ...Conditional[T]) Conditional[T] { return Conditional[T]{all: conds} }

// IfAny builds a conditional that requires any condition to hold.
func IfAny[T any](conds ...Conditional[T]) Conditional[T] { return Conditional[T]{any: conds} }

// And combines the receiver with additional conditions using logical AND.
func (c Conditional[T]) And(others ...Conditional[T]) Conditional[T] {
	return IfAll(append([]Conditional[T]{c}, others...)...)
}

// Or combines the receiver with additional conditions using logical OR.
func (c Conditional[T]) Or(others ...Conditional[T]) Conditional[T] {
	return IfAny(append([]Conditional[T]{c}, others...)...)
}

// Holds evaluates the condition against v.
func (c Conditional[T]) Holds(v T) bool { return evalConditional(v, c) }

// Then attaches rules to run when the condition is satisfied.
func (c Conditional[T]) Then(rules ...Rule[T]) Rule[T] {
	return func(d bylawkit.DomainCtx[T], v T) []bylawkit.Issue {
		if !evalConditional(v, c) {
			return nil
		}
		return And(rules...)(d, v)
	}
}

// Present reports code at path when the value there is absent (nil pointer,
// missing map key) or an empty string.
func Present[T any](path, code string) Rule[T] {
	return func(d bylawkit.DomainCtx[T], v T) []bylawkit.Issue {
		val, ok := ValueAt(v, path)
		if ok {
			if s, isStr := asString(val); !isStr || s != "" {
				return nil
			}
		}
		return []bylawkit.Issue{warning(d, path, code)}
	}
}

// AnyTrue reports code at path unless the struct or map found there has at
// least one true boolean member. An absent value counts as all false.
func AnyTrue[T any](path, code string) Rule[T] {
	return func(d bylawkit.DomainCtx[T], v T) []bylawkit.Issue {
		val, ok := ValueAt(v, path)
		if ok && anyTrue(reflect.ValueOf(val)) {
			return nil
		}
		return []bylawkit.Issue{warning(d, path, code)}
	}
}

// And executes all rules and concatenates Issues.
func And[T any](rules ...Rule[T]) Rule[T] {
	return func(d bylawkit.DomainCtx[T], v T) []bylawkit.Issue {
		var out []bylawkit.Issue
		for _, r := range rules {
			if r == nil {
				continue
			}
			out = append(out, r(d, v)...)
		}
		return out
	}
}

// Or succeeds if any rule returns no Issues. When every branch fails, the
// branch with the fewest Issues is returned.
func Or[T any](rules ...Rule[T]) Rule[T] {
	return func(d bylawkit.DomainCtx[T], v T) []bylawkit.Issue {
		var best []bylawkit.Issue
		bestSet := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			iss := r(d, v)
			if len(iss) == 0 {
				return nil
			}
			if !bestSet || len(iss) < len(best) {
				best = iss
				bestSet = true
			}
		}
		return best
	}
}

// ------- helpers -------

func warning[T any](d bylawkit.DomainCtx[T], path, code string) bylawkit.Issue {
	var p bylawkit.PathRef
	if d.Ref != nil {
		p = d.Ref.At(path)
	} else {
		p = bylawkit.NewRef(nil).At(path)
	}
	iss := p.Issue(code, i18n.T(code, nil))
	iss.Rule = code
	return iss
}

func evalConditional[T any](v T, c Conditional[T]) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !evalConditional(v, it) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if evalConditional(v, it) {
				return true
			}
		}
		return false
	}
	cur, ok := ValueAt(v, c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

// ValueAt navigates v (struct/map/slice) by dot path, dereferencing pointers.
// Struct fields are matched with bylawkit.FieldKey. Numeric segments
// index into slices. A nil pointer anywhere on the way yields false.
func ValueAt(v any, path string) (any, bool) {
	cur := reflect.ValueOf(v)
	if path != "" {
		for _, seg := range strings.Split(path, ".") {
			var ok bool
			if cur, ok = step(cur, seg); !ok {
				return nil, false
			}
		}
	}
	cur, ok := deref(cur)
	if !ok {
		return nil, false
	}
	return cur.Interface(), true
}

func step(cur reflect.Value, seg string) (reflect.Value, bool) {
	cur, ok := deref(cur)
	if !ok {
		return reflect.Value{}, false
	}
	switch cur.Kind() {
	case reflect.Struct:
		return bylawkit.StructField(cur, seg)
	case reflect.Map:
		if cur.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		mv := cur.MapIndex(reflect.ValueOf(seg).Convert(cur.Type().Key()))
		return mv, mv.IsValid()
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= cur.Len() {
			return reflect.Value{}, false
		}
		return cur.Index(idx), true
	}
	return reflect.Value{}, false
}

func deref(cur reflect.Value) (reflect.Value, bool) {
	for cur.IsValid() && (cur.Kind() == reflect.Pointer || cur.Kind() == reflect.Interface) {
		if cur.IsNil() {
			return reflect.Value{}, false
		}
		cur = cur.Elem()
	}
	return cur, cur.IsValid()
}

func anyTrue(rv reflect.Value) bool {
	rv, ok := deref(rv)
	if !ok {
		return false
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).IsExported() && anyTrue(rv.Field(i)) {
				return true
			}
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if anyTrue(iter.Value()) {
				return true
			}
		}
	}
	return false
}

func asString(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func compare(cur any, op Op, want any) bool {
	c, w := reflect.ValueOf(cur), reflect.ValueOf(want)
	switch op {
	case Eq, Ne:
		eq := reflect.DeepEqual(cur, want)
		if !eq && c.Kind() == reflect.String && w.Kind() == reflect.String {
			eq = c.String() == w.String()
		}
		if !eq {
			if a, ok := toFloat(c); ok {
				if b, ok := toFloat(w); ok {
					eq = a == b
				}
			}
		}
		return eq == (op == Eq)
	case Lt, Le, Gt, Ge:
		a, ok1 := toFloat(c)
		b, ok2 := toFloat(w)
		if !ok1 || !ok2 {
			return false
		}
		switch op {
		case Lt:
			return a < b
		case Le:
			return a <= b
		case Gt:
			return a > b
		default:
			return a >= b
		}
	}
	return false
}

func toFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
