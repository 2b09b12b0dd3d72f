// Package bylawkit validates and normalizes municipal bylaw records for
// accessory dwelling units (ADU/ARU).
//
// The root package holds the shared vocabulary: the Issues error model,
// PathRef builders, presence metadata and the decode entry points that turn
// JSON or YAML into raw value trees under duplicate-key, depth and size
// limits. Field schemas live under dsl/, the bylaw record and its Validator
// under bylaw/, persistence under store/ and the HTTP surface under server/
// and middleware/.
//
// Typical usage:
//
//	raw, warns, err := bylawkit.DecodeObject(ctx, bylawkit.JSONBytes(body), bylawkit.DefaultParseOpt())
//	v := bylaw.NewValidator()
//	out, err := v.Validate(ctx, raw, bylawkit.ModeCreate, nil)
//	if iss, ok := bylawkit.AsIssues(err); ok {
//		// report iss
//	}
package bylawkit
