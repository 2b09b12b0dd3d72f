package benchmarks_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/bylaw"
)

// ---- Helpers ----

// generateBylawJSON returns a valid record whose open maps and zone list
// carry n entries each.
func generateBylawJSON(n int) []byte {
	var buf bytes.Buffer
	buf.Grow(256 + n*96)
	buf.WriteString(`{"municipality_id":"bench","adu_types_allowed":{"detached":true,"attached":true},`)
	buf.WriteString(`"permit_type":"by_right","owner_occupancy_required":"none","permitted_zones":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `"R-%d"`, i)
	}
	buf.WriteString(`],"design_requirements":{`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `"req_%d":%d.5`, i, i)
	}
	buf.WriteString(`},"impact_fees":{`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `"fee_%d":{"amount":%d,"per_sqft":%t}`, i, i*10, i%2 == 0)
	}
	buf.WriteString(`}}`)
	return buf.Bytes()
}

func benchDriver(b *testing.B, d bylawkit.JSONDriver, n int) {
	prev := bylawkit.CurrentJSONDriver()
	bylawkit.SetJSONDriver(d)
	b.Cleanup(func() { bylawkit.SetJSONDriver(prev) })

	data := generateBylawJSON(n)
	v := bylaw.NewValidator()
	opt := bylawkit.DefaultParseOpt()
	opt.MaxBytes = 0
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := v.ValidateSource(ctx, bylawkit.JSONBytes(data), bylawkit.ModeCreate, nil, opt); err != nil {
			b.Fatalf("validate: %v", err)
		}
	}
}

func BenchmarkValidateSource(b *testing.B) {
	drivers := []bylawkit.JSONDriver{bylawkit.CurrentJSONDriver(), bylawkit.StdlibJSONDriver()}
	for _, d := range drivers {
		for _, n := range []int{1, 100, 2000} {
			b.Run(fmt.Sprintf("%s/entries=%d", d.Name(), n), func(b *testing.B) {
				benchDriver(b, d, n)
			})
		}
	}
}

func BenchmarkValidate_Decoded(b *testing.B) {
	data := generateBylawJSON(100)
	raw, _, err := bylawkit.DecodeObject(context.Background(), bylawkit.JSONBytes(data), bylawkit.DefaultParseOpt())
	if err != nil {
		b.Fatal(err)
	}
	v := bylaw.NewValidator()
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := v.Validate(ctx, raw, bylawkit.ModeCreate, nil); err != nil {
			b.Fatalf("validate: %v", err)
		}
	}
}
