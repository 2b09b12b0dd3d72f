package dsl

import (
	"fmt"
	"sort"

	bylawkit "github.com/reoring/bylawkit"
)

type objectBuilder struct {
	fields        map[string]Node
	required      map[string]struct{}
	readOnly      map[string]Node
	unknownPolicy bylawkit.UnknownPolicy
	title         string
	err           error
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder with safe defaults (UnknownStrict).
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]Node{},
		required:      map[string]struct{}{},
		readOnly:      map[string]Node{},
		unknownPolicy: bylawkit.UnknownStrict,
	}
}

// Field registers a field with its node. Fields are optional until Required.
func (b *objectBuilder) Field(name string, n Node) *fieldStep {
	if n == nil && b.err == nil {
		b.err = fmt.Errorf("dsl: field %q has nil node", name)
	}
	if _, dup := b.fields[name]; dup && b.err == nil {
		b.err = fmt.Errorf("dsl: field %q declared twice", name)
	}
	b.fields[name] = n
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.name)
	return f.b
}

// Describe attaches a JSON Schema description to the current field.
func (f *fieldStep) Describe(text string) *fieldStep {
	f.b.fields[f.name] = Describe(f.b.fields[f.name], text)
	return f
}

func (f *fieldStep) Field(name string, n Node) *fieldStep { return f.b.Field(name, n) }
func (f *fieldStep) ReadOnly(name string, n Node) *objectBuilder {
	return f.b.ReadOnly(name, n)
}
func (f *fieldStep) UnknownStrict() *objectBuilder      { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownPassthrough() *objectBuilder { return f.b.UnknownPassthrough() }
func (f *fieldStep) Build() (*ObjectSchema, error)      { return f.b.Build() }
func (f *fieldStep) MustBuild() *ObjectSchema           { return f.b.MustBuild() }

// ReadOnly registers a key that input may carry but that is always discarded.
// It is exported to JSON Schema with readOnly set.
func (b *objectBuilder) ReadOnly(name string, n Node) *objectBuilder {
	b.readOnly[name] = n
	return b
}

// Title sets the JSON Schema title.
func (b *objectBuilder) Title(t string) *objectBuilder {
	b.title = t
	return b
}

// UnknownStrict rejects unknown keys with unknown_field.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = bylawkit.UnknownStrict
	return b
}

// UnknownPassthrough keeps unknown keys verbatim.
func (b *objectBuilder) UnknownPassthrough() *objectBuilder {
	b.unknownPolicy = bylawkit.UnknownPassthrough
	return b
}

// Build validates the builder and returns the schema.
func (b *objectBuilder) Build() (*ObjectSchema, error) {
	if b.err != nil {
		return nil, b.err
	}
	for k := range b.required {
		if _, ok := b.fields[k]; !ok {
			return nil, fmt.Errorf("dsl: required field %q is not declared", k)
		}
	}
	for k := range b.readOnly {
		if _, ok := b.fields[k]; ok {
			return nil, fmt.Errorf("dsl: field %q is both writable and read-only", k)
		}
	}
	// cache sorted keys for deterministic order without per-check sorting
	kfs := make([]string, 0, len(b.fields))
	for k := range b.fields {
		kfs = append(kfs, k)
	}
	sort.Strings(kfs)
	return &ObjectSchema{
		fields:        b.fields,
		required:      b.required,
		readOnly:      b.readOnly,
		unknownPolicy: b.unknownPolicy,
		title:         b.title,
		sortedKeys:    kfs,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
