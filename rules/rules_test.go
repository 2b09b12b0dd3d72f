package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/rules"
)

type flags struct {
	Garage bool `json:"garage"`
	Tandem bool `json:"tandem"`
}

type kind string

type lot struct {
	Spaces  *int64             `json:"spaces,omitempty"`
	Rule    *kind              `json:"rule,omitempty"`
	Height  *float64           `json:"height,omitempty"`
	Details *string            `json:"details,omitempty"`
	Config  *flags             `json:"config,omitempty"`
	Extra   map[string]float64 `json:"extra,omitempty"`
	Zones   []string           `json:"zones,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func dctx() bylawkit.DomainCtx[lot] {
	return bylawkit.DomainCtx[lot]{Ctx: context.Background(), Ref: bylawkit.NewRef(nil)}
}

func TestValueAt(t *testing.T) {
	v := lot{Spaces: ptr[int64](2), Config: &flags{Garage: true}, Extra: map[string]float64{"a": 1.5}, Zones: []string{"R1", "R2"}}

	got, ok := rules.ValueAt(v, "spaces")
	require.True(t, ok)
	assert.Equal(t, int64(2), got)

	got, ok = rules.ValueAt(v, "config.garage")
	require.True(t, ok)
	assert.Equal(t, true, got)

	got, ok = rules.ValueAt(v, "extra.a")
	require.True(t, ok)
	assert.Equal(t, 1.5, got)

	got, ok = rules.ValueAt(v, "zones.1")
	require.True(t, ok)
	assert.Equal(t, "R2", got)

	_, ok = rules.ValueAt(v, "height")
	assert.False(t, ok)
	_, ok = rules.ValueAt(v, "nope")
	assert.False(t, ok)
}

func TestIfThen_PresentOnTypedEnum(t *testing.T) {
	r := rules.If[lot]("rule", rules.Eq, "custom").Then(rules.Present[lot]("height", "height_missing"))

	iss := r(dctx(), lot{Rule: ptr(kind("custom"))})
	require.Len(t, iss, 1)
	assert.Equal(t, "height", iss[0].Path)
	assert.Equal(t, "height_missing", iss[0].Code)
	assert.Equal(t, "height_missing", iss[0].Rule)

	assert.Empty(t, r(dctx(), lot{Rule: ptr(kind("custom")), Height: ptr(10.0)}))
	assert.Empty(t, r(dctx(), lot{Rule: ptr(kind("same"))}))
	assert.Empty(t, r(dctx(), lot{}))
}

func TestPresent_EmptyStringCountsAsAbsent(t *testing.T) {
	r := rules.Present[lot]("details", "details_missing")
	assert.Len(t, r(dctx(), lot{Details: ptr("")}), 1)
	assert.Empty(t, r(dctx(), lot{Details: ptr("x")}))
}

func TestAnyTrue_WithCountCondition(t *testing.T) {
	r := rules.If[lot]("spaces", rules.Gt, 0).Then(rules.AnyTrue[lot]("config", "config_missing"))

	assert.Len(t, r(dctx(), lot{Spaces: ptr[int64](1)}), 1)
	assert.Len(t, r(dctx(), lot{Spaces: ptr[int64](1), Config: &flags{}}), 1)
	assert.Empty(t, r(dctx(), lot{Spaces: ptr[int64](1), Config: &flags{Tandem: true}}))
	assert.Empty(t, r(dctx(), lot{Spaces: ptr[int64](0)}))
}

func TestCombinators(t *testing.T) {
	hasSpaces := rules.If[lot]("spaces", rules.Ge, 1)
	isCustom := rules.If[lot]("rule", rules.Eq, "custom")

	v := lot{Spaces: ptr[int64](1), Rule: ptr(kind("custom"))}
	assert.True(t, hasSpaces.And(isCustom).Holds(v))
	assert.True(t, hasSpaces.Or(isCustom).Holds(lot{Spaces: ptr[int64](3)}))
	assert.False(t, hasSpaces.And(isCustom).Holds(lot{Spaces: ptr[int64](3)}))
	assert.True(t, rules.If[lot]("rule", rules.Ne, "custom").Holds(lot{Rule: ptr(kind("x"))}))

	fail := rules.Present[lot]("height", "a")
	pass := rules.Present[lot]("spaces", "b")
	assert.Empty(t, rules.Or(fail, pass)(dctx(), v))
	assert.Len(t, rules.And(fail, rules.Present[lot]("details", "c"))(dctx(), v), 2)
}
