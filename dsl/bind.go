package dsl

import (
	"bytes"
	"fmt"

	j "github.com/goccy/go-json"
)

// Bind projects a canonical map (as returned by ObjectSchema.Check) onto T
// using T's json tags.
func Bind[T any](canonical map[string]any) (T, error) {
	var out T
	b, err := j.Marshal(canonical)
	if err != nil {
		return out, fmt.Errorf("dsl: bind marshal: %w", err)
	}
	if err := j.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("dsl: bind %T: %w", out, err)
	}
	return out, nil
}

// Canonical is the inverse of Bind: it renders v as a raw map whose numbers
// are json.Number, the same shape the decoders produce.
func Canonical[T any](v T) (map[string]any, error) {
	b, err := j.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("dsl: canonical marshal: %w", err)
	}
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("dsl: canonical decode: %w", err)
	}
	return m, nil
}
