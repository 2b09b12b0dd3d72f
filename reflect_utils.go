package bylawkit

import (
	"reflect"
	"strings"
	"sync"
)

// FieldKey returns the external key of a struct field: the json tag name,
// or the Go field name when the tag has none. Fields tagged "-" and
// unexported fields have no key.
func FieldKey(sf reflect.StructField) string {
	if !sf.IsExported() {
		return ""
	}
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return sf.Name
}

var fieldIndexCache sync.Map // reflect.Type -> map[string]int

// StructField returns the field of struct value rv whose FieldKey is key.
func StructField(rv reflect.Value, key string) (reflect.Value, bool) {
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	idx, ok := fieldIndex(rv.Type())[key]
	if !ok {
		return reflect.Value{}, false
	}
	return rv.Field(idx), true
}

func fieldIndex(rt reflect.Type) map[string]int {
	if m, ok := fieldIndexCache.Load(rt); ok {
		return m.(map[string]int)
	}
	m := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if k := FieldKey(rt.Field(i)); k != "" {
			m[k] = i
		}
	}
	actual, _ := fieldIndexCache.LoadOrStore(rt, m)
	return actual.(map[string]int)
}
