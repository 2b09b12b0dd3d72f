// Package jsonschema holds a minimal JSON Schema document model used for
// export. Only the keywords the bylaw record needs are modelled.
package jsonschema

import j "github.com/goccy/go-json"

// Draft is the $schema URI emitted at the document root.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	SchemaURI   string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type     any    `json:"type,omitempty"` // string or []string
	Format   string `json:"format,omitempty"`
	Enum     []any  `json:"enum,omitempty"`
	Default  any    `json:"default,omitempty"`
	ReadOnly bool   `json:"readOnly,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// String
	MinLength *int `json:"minLength,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Additional        `json:"additionalProperties,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty"`
	MinItems    *int    `json:"minItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Float returns a pointer to f for Minimum/Maximum.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i for MinItems/MinLength.
func Int(i int) *int { return &i }

// Additional is the additionalProperties keyword: a boolean, or the schema
// every undeclared value must satisfy.
type Additional struct {
	Allowed bool
	Schema  *Schema
}

// AllowAdditional renders as a plain boolean.
func AllowAdditional(ok bool) *Additional { return &Additional{Allowed: ok} }

// AdditionalSchema renders as the given schema.
func AdditionalSchema(s *Schema) *Additional { return &Additional{Allowed: true, Schema: s} }

func (a Additional) MarshalJSON() ([]byte, error) {
	if a.Schema != nil {
		return j.Marshal(a.Schema)
	}
	if a.Allowed {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}
