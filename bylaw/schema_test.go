package bylaw_test

import (
	"testing"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/bylawkit/bylaw"
	js "github.com/reoring/bylawkit/jsonschema"
)

func TestJSONSchema_MatchesCatalog(t *testing.T) {
	s := bylaw.JSONSchema()
	assert.Equal(t, js.Draft, s.SchemaURI)
	assert.Equal(t, []string{"adu_types_allowed", "municipality_id", "owner_occupancy_required", "permit_type", "permitted_zones"}, s.Required)

	for field, allowed := range bylaw.Enums().Enums {
		prop, ok := s.Properties[field]
		require.True(t, ok, field)
		want := make([]any, len(allowed))
		for i, a := range allowed {
			want[i] = a
		}
		assert.Equal(t, want, prop.Enum, field)
	}
	for field, flags := range bylaw.Enums().FlagSets {
		prop := s.Properties[field]
		require.NotNil(t, prop, field)
		assert.Len(t, prop.Properties, len(flags))
	}

	assert.True(t, s.Properties[bylaw.KeyUpdatedAt].ReadOnly)
	assert.Equal(t, "integer", s.Properties["max_adus_per_lot"].Type)
	assert.Equal(t, js.Float(100), s.Properties["max_lot_coverage_percent"].Maximum)
}

func TestJSONSchema_Serializes(t *testing.T) {
	b, err := j.Marshal(bylaw.JSONSchema())
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, j.Unmarshal(b, &m))
	assert.Equal(t, "BylawRecord", m["title"])
	assert.Equal(t, false, m["additionalProperties"])
}

func TestEnums_ReturnsCopies(t *testing.T) {
	c := bylaw.Enums()
	c.Enums["permit_type"][0] = "mutated"
	assert.Equal(t, "by_right", bylaw.Enums().Enums["permit_type"][0])
	assert.Equal(t, "by_right", bylaw.PermitTypes[0])
}
