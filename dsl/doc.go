// Package dsl provides declarative field schemas for raw decoded payloads.
//
// A schema is a tree of Nodes. Each Node checks one raw value (as produced by
// bylawkit.DecodeFrom: map[string]any, []any, json.Number, string, bool) and
// returns its canonical form, accumulating Issues instead of stopping at the
// first failure. A nil canonical value with no Issues means the input
// normalizes to absent, for example optional text that is blank after
// trimming.
//
// Entry points
//   - Object(): fixed-shape object builder; chain Field/Required/ReadOnly and
//     finish with Build()/MustBuild().
//   - Text/Date/Timestamp/Enum/Bool: scalar nodes.
//   - Number()/Measure()/Percent()/Count()/NumberOrBool(): numeric nodes.
//   - FlagSet(...)/StringSet()/StringList()/MapOf(entry): compound nodes.
//   - Bind[T]/Canonical[T]: project canonical maps onto typed structs and back.
//
// Every node projects itself to JSON Schema so the exported document and the
// runtime checks stay aligned.
//
// Example
//
//	s := dsl.Object().
//		Field("municipality_id", dsl.Text()).Required().
//		Field("permit_type", dsl.Enum("by_right", "variance")).Required().
//		Field("front_setback_ft", dsl.Measure()).
//		MustBuild()
//	out, iss := s.Check(ctx, bylawkit.Root(), raw)
package dsl
