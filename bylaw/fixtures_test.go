package bylaw_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/bylaw"
)

const validJSON = `{
  "municipality_id": " springfield-ma ",
  "municipality_name": "Springfield",
  "effective_date": "2023-07-01",
  "permitted_zones": ["R-1", " R-2", "R-1"],
  "adu_types_allowed": {"detached": true, "attached": true},
  "permit_type": "by_right",
  "owner_occupancy_required": "none",
  "max_lot_coverage_percent": 40,
  "front_setback_ft": 20,
  "max_adus_per_lot": 1,
  "adu_parking_spaces_required": 1,
  "parking_configuration_allowed": {"uncovered": true},
  "parking_exemptions": {"transit_distance_ft": 1320, "historic_district": true},
  "impact_fees": {"school": {"amount": 2.5, "per_sqft": true}},
  "overlay_districts": {"historic": {"description": " Old town ", "max_height_ft": 24, "design_review_required": true}},
  "deed_restrictions": {"affordability": {"required": true, "duration_years": 15, "affordability_ami_percent": 80}},
  "source_documents": ["https://example.gov/bylaw.pdf"],
  "reviewed_at": "2024-03-01T10:00:00-05:00"
}`

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(ts time.Time) bylaw.Option { return bylaw.WithClock(func() time.Time { return ts }) }

// decode parses JSON the way the HTTP layer does.
func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	m, _, err := bylawkit.DecodeObject(context.Background(), bylawkit.JSONBytes([]byte(s)), bylawkit.DefaultParseOpt())
	require.NoError(t, err)
	return m
}

// payload returns the valid fixture with edits applied.
func payload(t *testing.T, edit func(m map[string]any)) map[string]any {
	t.Helper()
	m := decode(t, validJSON)
	if edit != nil {
		edit(m)
	}
	return m
}

func mustCreate(t *testing.T, v *bylaw.Validator) bylaw.Record {
	t.Helper()
	out, err := v.Validate(context.Background(), payload(t, nil), bylawkit.ModeCreate, nil)
	require.NoError(t, err)
	return out.Record
}

func requireIssues(t *testing.T, err error) bylawkit.Issues {
	t.Helper()
	require.Error(t, err)
	iss, ok := bylawkit.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	return iss
}
