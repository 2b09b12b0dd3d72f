package bylaw_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/bylaw"
)

const validYAML = `
municipality_id: springfield-ma
permitted_zones: [R-1, R-2]
adu_types_allowed:
  detached: true
permit_type: by_right
owner_occupancy_required: primary_residence
max_lot_coverage_percent: 35.5
max_adus_per_lot: 1
parking_exemptions:
  transit_distance_ft: 1320
  historic_district: true
`

func TestValidateSource_YAML(t *testing.T) {
	v := bylaw.NewValidator(fixedClock(t0))
	out, err := v.ValidateSource(context.Background(), bylawkit.YAMLBytes([]byte(validYAML)), bylawkit.ModeCreate, nil)
	require.NoError(t, err)
	r := out.Record
	assert.Equal(t, bylaw.OwnerOccupancyPrimaryResidence, r.OwnerOccupancyRequired)
	require.NotNil(t, r.MaxLotCoveragePercent)
	assert.Equal(t, 35.5, *r.MaxLotCoveragePercent)
	require.NotNil(t, r.MaxADUsPerLot)
	assert.Equal(t, int64(1), *r.MaxADUsPerLot)
	assert.Equal(t, bylaw.Num(1320), r.ParkingExemptions["transit_distance_ft"])
	assert.Equal(t, bylaw.Flag(true), r.ParkingExemptions["historic_district"])
}

func TestValidateSource_YAMLQuotedNumberIsWrongType(t *testing.T) {
	src := validYAML + "front_setback_ft: \"20\"\n"
	_, err := bylaw.NewValidator().ValidateSource(context.Background(), bylawkit.YAMLBytes([]byte(src)), bylawkit.ModeCreate, nil)
	iss := requireIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "front_setback_ft", iss[0].Path)
	assert.Equal(t, bylawkit.CodeWrongType, iss[0].Code)
}

func TestValidateSource_DecodeFailuresAreFatal(t *testing.T) {
	v := bylaw.NewValidator()
	cases := map[string]struct {
		body string
		code string
	}{
		"syntax":    {body: `{"municipality_id": `, code: bylawkit.CodeParseError},
		"duplicate": {body: `{"permit_type":"by_right","permit_type":"variance"}`, code: bylawkit.CodeDuplicateKey},
		"trailing":  {body: `{} {}`, code: bylawkit.CodeParseError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.ValidateSource(context.Background(), bylawkit.JSONBytes([]byte(tc.body)), bylawkit.ModeCreate, nil)
			require.Error(t, err)
			var de *bylawkit.DecodeError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tc.code, de.Code)
			assert.True(t, bylawkit.IsFatal(err))
		})
	}
}

func TestValidateSource_DepthLimit(t *testing.T) {
	opt := bylawkit.DefaultParseOpt()
	opt.MaxDepth = 2
	body := `{"overlay_districts": {"historic": {"description": "x"}}}`
	_, err := bylaw.NewValidator().ValidateSource(context.Background(), bylawkit.JSONBytes([]byte(body)), bylawkit.ModeCreate, nil, opt)
	var de *bylawkit.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, bylawkit.CodeTooDeep, de.Code)
	assert.Equal(t, "overlay_districts.historic", de.Path)
}

func TestValidateSource_DuplicateKeyWarning(t *testing.T) {
	opt := bylawkit.DefaultParseOpt()
	opt.Strictness.OnDuplicateKey = bylawkit.Warn
	body := `{"municipality_id":"a","permitted_zones":["R"],"adu_types_allowed":{"detached":true},` +
		`"permit_type":"variance","permit_type":"by_right","owner_occupancy_required":"none"}`
	out, err := bylaw.NewValidator().ValidateSource(context.Background(), bylawkit.JSONBytes([]byte(body)), bylawkit.ModeCreate, nil, opt)
	require.NoError(t, err)
	assert.Equal(t, bylaw.PermitByRight, out.Record.PermitType, "last value wins")
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, bylawkit.CodeDuplicateKey, out.Warnings[0].Code)
	assert.Equal(t, "permit_type", out.Warnings[0].Path)
}

func TestValidateSource_RootArray(t *testing.T) {
	_, err := bylaw.NewValidator().ValidateSource(context.Background(), bylawkit.JSONBytes([]byte(`[1,2]`)), bylawkit.ModeCreate, nil)
	assert.ErrorIs(t, err, bylawkit.ErrNotAnObject)
}
