package bylaw

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	j "github.com/goccy/go-json"
)

// Record is the normalized bylaw data of one municipality. Optional fields
// are pointers (or nil maps/slices) so absence survives a round trip.
type Record struct {
	// Identification
	MunicipalityID   string  `json:"municipality_id"`
	MunicipalityName *string `json:"municipality_name,omitempty"`
	OrdinanceNumber  *string `json:"ordinance_number,omitempty"`
	EffectiveDate    *string `json:"effective_date,omitempty"`
	ContactName      *string `json:"contact_name,omitempty"`
	ContactEmail     *string `json:"contact_email,omitempty"`
	ContactPhone     *string `json:"contact_phone,omitempty"`
	BylawURL         *string `json:"bylaw_url,omitempty"`

	// Zoning permissions
	PermittedZones         []string       `json:"permitted_zones"`
	ADUTypesAllowed        ADUTypes       `json:"adu_types_allowed"`
	PermitType             PermitType     `json:"permit_type"`
	OwnerOccupancyRequired OwnerOccupancy `json:"owner_occupancy_required"`

	// Dimensional limits
	MinLotSizeSqft                     *float64     `json:"min_lot_size_sqft,omitempty"`
	MinLotWidthFt                      *float64     `json:"min_lot_width_ft,omitempty"`
	MinLotDepthFt                      *float64     `json:"min_lot_depth_ft,omitempty"`
	MaxADUsPerLot                      *int64       `json:"max_adus_per_lot,omitempty"`
	MaxUnitsPerLot                     *int64       `json:"max_units_per_lot,omitempty"`
	DetachedADUMaxSizeSqft             *float64     `json:"detached_adu_max_size_sqft,omitempty"`
	DetachedADUMaxHeightFt             *float64     `json:"detached_adu_max_height_ft,omitempty"`
	DetachedADUMaxFootprintSqft        *float64     `json:"detached_adu_max_footprint_sqft,omitempty"`
	AttachedADUMaxSizeSqft             *float64     `json:"attached_adu_max_size_sqft,omitempty"`
	AttachedADUMaxSizePercentOfPrimary *float64     `json:"attached_adu_max_size_percent_of_primary,omitempty"`
	AttachedADUMaxHeightFt             *float64     `json:"attached_adu_max_height_ft,omitempty"`
	AttachedADUHeightRule              *HeightRule  `json:"attached_adu_height_rule,omitempty"`
	AttachedADUSetbackRule             *SetbackRule `json:"attached_adu_setback_rule,omitempty"`
	AttachedADUSetbackDetails          *string      `json:"attached_adu_setback_details,omitempty"`
	InteriorADUMaxSizeSqft             *float64     `json:"interior_adu_max_size_sqft,omitempty"`

	// Setbacks
	FrontSetbackFt           *float64 `json:"front_setback_ft,omitempty"`
	SideSetbackFt            *float64 `json:"side_setback_ft,omitempty"`
	RearSetbackFt            *float64 `json:"rear_setback_ft,omitempty"`
	SetbackAlignWithPrimary  *bool    `json:"setback_align_with_primary,omitempty"`
	SetbackBehindPrimary     *bool    `json:"setback_behind_primary,omitempty"`
	RearSetbackAlleyAdjusted *bool    `json:"rear_setback_alley_adjusted,omitempty"`

	// Coverage
	MaxLotCoveragePercent       *float64          `json:"max_lot_coverage_percent,omitempty"`
	MaxImperviousSurfacePercent *float64          `json:"max_impervious_surface_percent,omitempty"`
	MinLandscapedAreaPercent    *float64          `json:"min_landscaped_area_percent,omitempty"`
	ADUCoverageCounting         *CoverageCounting `json:"adu_coverage_counting,omitempty"`

	// Parking
	ADUParkingSpacesRequired    *int64                  `json:"adu_parking_spaces_required,omitempty"`
	ParkingConfigurationAllowed *ParkingConfigurations  `json:"parking_configuration_allowed,omitempty"`
	ParkingExemptions           map[string]NumberOrBool `json:"parking_exemptions,omitempty"`

	// Design standards
	ArchitecturalCompatibility *ArchitecturalCompatibility `json:"architectural_compatibility,omitempty"`
	DesignRequirements         map[string]NumberOrBool     `json:"design_requirements,omitempty"`
	EntranceRequirements       *EntranceRequirement        `json:"entrance_requirements,omitempty"`

	// Utilities
	UtilityConnections       *UtilityConnections `json:"utility_connections,omitempty"`
	SepticSewerRequirements  *SepticSewer        `json:"septic_sewer_requirements,omitempty"`
	FireAccessMaxDistanceFt  *float64            `json:"fire_access_max_distance_ft,omitempty"`
	FireAccessMinPathWidthFt *float64            `json:"fire_access_min_path_width_ft,omitempty"`

	// Fees, overlays, deed restrictions
	ImpactFees       map[string]Fee             `json:"impact_fees,omitempty"`
	PermitFees       map[string]Fee             `json:"permit_fees,omitempty"`
	OverlayDistricts map[string]OverlayDistrict `json:"overlay_districts,omitempty"`
	DeedRestrictions map[string]DeedRestriction `json:"deed_restrictions,omitempty"`

	// Provenance
	SourceDocuments []string   `json:"source_documents,omitempty"`
	EnteredBy       *string    `json:"entered_by,omitempty"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ADUTypes is the flag-set of permitted ADU construction types.
type ADUTypes struct {
	Detached           bool `json:"detached"`
	Attached           bool `json:"attached"`
	GarageConversion   bool `json:"garage_conversion"`
	BasementConversion bool `json:"basement_conversion"`
	Interior           bool `json:"interior"`
}

// None reports whether every type is disallowed.
func (a ADUTypes) None() bool {
	return !a.Detached && !a.Attached && !a.GarageConversion && !a.BasementConversion && !a.Interior
}

// ParkingConfigurations is the flag-set of permitted parking layouts.
type ParkingConfigurations struct {
	Uncovered bool `json:"uncovered"`
	Covered   bool `json:"covered"`
	Garage    bool `json:"garage"`
	Tandem    bool `json:"tandem"`
	OnStreet  bool `json:"on_street"`
}

// Fee is one impact or permit fee. PerSqft marks Amount as a rate per square foot.
type Fee struct {
	Amount  float64 `json:"amount"`
	PerSqft bool    `json:"per_sqft"`
}

// OverlayDistrict holds the ADU rules an overlay adds on top of the base zone.
type OverlayDistrict struct {
	Description          *string  `json:"description,omitempty"`
	AdditionalSetbackFt  *float64 `json:"additional_setback_ft,omitempty"`
	MaxHeightFt          *float64 `json:"max_height_ft,omitempty"`
	ADUPermitted         *bool    `json:"adu_permitted,omitempty"`
	DesignReviewRequired *bool    `json:"design_review_required,omitempty"`
}

// DeedRestriction describes a recorded restriction required for ADU approval.
type DeedRestriction struct {
	Required                *bool    `json:"required,omitempty"`
	DurationYears           *int64   `json:"duration_years,omitempty"`
	AffordabilityAMIPercent *float64 `json:"affordability_ami_percent,omitempty"`
	Description             *string  `json:"description,omitempty"`
}

// NumberOrBool is an open-map value that is either a number or a boolean.
type NumberOrBool struct {
	Number *float64
	Bool   *bool
}

// Num returns a numeric NumberOrBool.
func Num(f float64) NumberOrBool { return NumberOrBool{Number: &f} }

// Flag returns a boolean NumberOrBool.
func Flag(b bool) NumberOrBool { return NumberOrBool{Bool: &b} }

// MarshalJSON encodes the set variant, or null when neither is set.
func (n NumberOrBool) MarshalJSON() ([]byte, error) {
	switch {
	case n.Bool != nil:
		return strconv.AppendBool(nil, *n.Bool), nil
	case n.Number != nil:
		return j.Marshal(*n.Number)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a boolean, a number or null.
func (n *NumberOrBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null":
		*n = NumberOrBool{}
		return nil
	case "true", "false":
		*n = Flag(string(b) == "true")
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("bylaw: number or boolean expected, got %s", b)
	}
	*n = Num(f)
	return nil
}

// Clone returns a deep copy of r.
func (r Record) Clone() (Record, error) {
	b, err := j.Marshal(r)
	if err != nil {
		return Record{}, err
	}
	var out Record
	if err := j.Unmarshal(b, &out); err != nil {
		return Record{}, err
	}
	return out, nil
}
