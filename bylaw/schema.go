package bylaw

import (
	"sync"

	"github.com/reoring/bylawkit/dsl"
	js "github.com/reoring/bylawkit/jsonschema"
)

// Server-managed keys. Input may carry them; their values are always replaced.
const (
	KeyCreatedAt = "created_at"
	KeyUpdatedAt = "updated_at"
)

// KeyMunicipalityID is the immutable identity field.
const KeyMunicipalityID = "municipality_id"

var (
	schemaOnce sync.Once
	schema     *dsl.ObjectSchema
)

// Schema returns the record schema. It is built once and shared.
func Schema() *dsl.ObjectSchema {
	schemaOnce.Do(func() { schema = buildSchema() })
	return schema
}

// JSONSchema renders the record schema as a standalone JSON Schema document.
func JSONSchema() *js.Schema {
	s := Schema().JSONSchema()
	s.SchemaURI = js.Draft
	return s
}

func buildSchema() *dsl.ObjectSchema {
	fee := dsl.Object().
		Field("amount", dsl.Measure()).Required().
		Field("per_sqft", dsl.Bool()).Required().
		MustBuild()

	overlay := dsl.Object().
		Field("description", dsl.Text()).
		Field("additional_setback_ft", dsl.Measure()).
		Field("max_height_ft", dsl.Measure()).
		Field("adu_permitted", dsl.Bool()).
		Field("design_review_required", dsl.Bool()).
		MustBuild()

	deed := dsl.Object().
		Field("required", dsl.Bool()).
		Field("duration_years", dsl.Count()).
		Field("affordability_ami_percent", dsl.Percent()).
		Field("description", dsl.Text()).
		MustBuild()

	return dsl.Object().
		Title("BylawRecord").
		// identification
		Field(KeyMunicipalityID, dsl.Text()).Describe("Municipality reference; immutable once created.").Required().
		Field("municipality_name", dsl.Text()).
		Field("ordinance_number", dsl.Text()).
		Field("effective_date", dsl.Date()).
		Field("contact_name", dsl.Text()).
		Field("contact_email", dsl.Text()).
		Field("contact_phone", dsl.Text()).
		Field("bylaw_url", dsl.Text()).
		// zoning permissions
		Field("permitted_zones", dsl.StringSet()).Describe("Zone codes where ADUs are permitted.").Required().
		Field("adu_types_allowed", dsl.FlagSet(ADUTypeFlags...)).Required().
		Field("permit_type", dsl.Enum(PermitTypes...)).Required().
		Field("owner_occupancy_required", dsl.Enum(OwnerOccupancies...)).Required().
		// dimensional limits
		Field("min_lot_size_sqft", dsl.Measure()).
		Field("min_lot_width_ft", dsl.Measure()).
		Field("min_lot_depth_ft", dsl.Measure()).
		Field("max_adus_per_lot", dsl.Count()).
		Field("max_units_per_lot", dsl.Count()).
		Field("detached_adu_max_size_sqft", dsl.Measure()).
		Field("detached_adu_max_height_ft", dsl.Measure()).
		Field("detached_adu_max_footprint_sqft", dsl.Measure()).
		Field("attached_adu_max_size_sqft", dsl.Measure()).
		Field("attached_adu_max_size_percent_of_primary", dsl.Percent()).
		Field("attached_adu_max_height_ft", dsl.Measure()).
		Field("attached_adu_height_rule", dsl.Enum(HeightRules...)).
		Field("attached_adu_setback_rule", dsl.Enum(SetbackRules...)).
		Field("attached_adu_setback_details", dsl.Text()).
		Field("interior_adu_max_size_sqft", dsl.Measure()).
		// setbacks
		Field("front_setback_ft", dsl.Measure()).
		Field("side_setback_ft", dsl.Measure()).
		Field("rear_setback_ft", dsl.Measure()).
		Field("setback_align_with_primary", dsl.Bool()).
		Field("setback_behind_primary", dsl.Bool()).
		Field("rear_setback_alley_adjusted", dsl.Bool()).
		// coverage
		Field("max_lot_coverage_percent", dsl.Percent()).
		Field("max_impervious_surface_percent", dsl.Percent()).
		Field("min_landscaped_area_percent", dsl.Percent()).
		Field("adu_coverage_counting", dsl.Enum(CoverageCountings...)).
		// parking
		Field("adu_parking_spaces_required", dsl.Count()).
		Field("parking_configuration_allowed", dsl.FlagSet(ParkingConfigFlags...)).
		Field("parking_exemptions", dsl.MapOf(dsl.NumberOrBool())).Describe("Exemption name to distance, count or flag.").
		// design standards
		Field("architectural_compatibility", dsl.Enum(ArchCompatibility...)).
		Field("design_requirements", dsl.MapOf(dsl.NumberOrBool())).
		Field("entrance_requirements", dsl.Enum(EntranceRules...)).
		// utilities
		Field("utility_connections", dsl.Enum(UtilityRules...)).
		Field("septic_sewer_requirements", dsl.Enum(SepticSewerRules...)).
		Field("fire_access_max_distance_ft", dsl.Measure()).
		Field("fire_access_min_path_width_ft", dsl.Measure()).
		// fees, overlays, deed restrictions
		Field("impact_fees", dsl.MapOf(fee)).
		Field("permit_fees", dsl.MapOf(fee)).
		Field("overlay_districts", dsl.MapOf(overlay)).
		Field("deed_restrictions", dsl.MapOf(deed)).
		// provenance
		Field("source_documents", dsl.StringList()).
		Field("entered_by", dsl.Text()).
		Field("reviewed_by", dsl.Text()).
		Field("reviewed_at", dsl.Timestamp()).
		ReadOnly(KeyCreatedAt, dsl.Timestamp()).
		ReadOnly(KeyUpdatedAt, dsl.Timestamp()).
		MustBuild()
}
