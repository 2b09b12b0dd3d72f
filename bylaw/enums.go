package bylaw

// PermitType is the permit procedure an ADU application goes through.
type PermitType string

const (
	PermitByRight        PermitType = "by_right"
	PermitSpecialPermit  PermitType = "special_permit"
	PermitConditionalUse PermitType = "conditional_use"
	PermitVariance       PermitType = "variance"
)

// OwnerOccupancy states who must live on the lot.
type OwnerOccupancy string

const (
	OwnerOccupancyNone             OwnerOccupancy = "none"
	OwnerOccupancyPrimaryResidence OwnerOccupancy = "primary_residence"
	OwnerOccupancyEitherUnit       OwnerOccupancy = "either_unit"
)

// HeightRule relates an attached ADU's height to the primary dwelling.
type HeightRule string

const (
	HeightSameAsPrimary    HeightRule = "same_as_primary"
	HeightLowerThanPrimary HeightRule = "lower_than_primary"
	HeightCustom           HeightRule = "custom"
)

// SetbackRule relates an attached ADU's setbacks to the primary dwelling.
type SetbackRule string

const (
	SetbackSameAsPrimary SetbackRule = "same_as_primary"
	SetbackCustom        SetbackRule = "custom"
)

// CoverageCounting is how ADU floor area counts toward lot coverage.
type CoverageCounting string

const (
	CoverageFull    CoverageCounting = "full"
	CoveragePartial CoverageCounting = "partial"
	CoverageExempt  CoverageCounting = "exempt"
)

// ArchitecturalCompatibility is how closely an ADU must match the primary dwelling's design.
type ArchitecturalCompatibility string

const (
	ArchMustMatch           ArchitecturalCompatibility = "must_match"
	ArchCompatibleMaterials ArchitecturalCompatibility = "compatible_materials"
	ArchNone                ArchitecturalCompatibility = "none"
)

// EntranceRequirement restricts where the ADU entrance may face.
type EntranceRequirement string

const (
	EntranceNoRestriction   EntranceRequirement = "no_restriction"
	EntranceSeparate        EntranceRequirement = "separate_entrance_required"
	EntranceSideOrRearOnly  EntranceRequirement = "side_or_rear_only"
	EntranceNotStreetFacing EntranceRequirement = "not_street_facing"
)

// UtilityConnections states whether the ADU may share the primary dwelling's utilities.
type UtilityConnections string

const (
	UtilitySharedAllowed    UtilityConnections = "shared_allowed"
	UtilitySeparateRequired UtilityConnections = "separate_required"
	UtilityDependsOnSize    UtilityConnections = "depends_on_size"
)

// SepticSewer is the wastewater requirement for an ADU.
type SepticSewer string

const (
	SewerPublicRequired SepticSewer = "public_sewer_required"
	SewerSepticAllowed  SepticSewer = "septic_allowed"
	SewerCapacityReview SepticSewer = "capacity_review_required"
)

// Canonical literal sets, in the order they are presented to clients.
var (
	PermitTypes        = []string{string(PermitByRight), string(PermitSpecialPermit), string(PermitConditionalUse), string(PermitVariance)}
	OwnerOccupancies   = []string{string(OwnerOccupancyNone), string(OwnerOccupancyPrimaryResidence), string(OwnerOccupancyEitherUnit)}
	HeightRules        = []string{string(HeightSameAsPrimary), string(HeightLowerThanPrimary), string(HeightCustom)}
	SetbackRules       = []string{string(SetbackSameAsPrimary), string(SetbackCustom)}
	CoverageCountings  = []string{string(CoverageFull), string(CoveragePartial), string(CoverageExempt)}
	ArchCompatibility  = []string{string(ArchMustMatch), string(ArchCompatibleMaterials), string(ArchNone)}
	EntranceRules      = []string{string(EntranceNoRestriction), string(EntranceSeparate), string(EntranceSideOrRearOnly), string(EntranceNotStreetFacing)}
	UtilityRules       = []string{string(UtilitySharedAllowed), string(UtilitySeparateRequired), string(UtilityDependsOnSize)}
	SepticSewerRules   = []string{string(SewerPublicRequired), string(SewerSepticAllowed), string(SewerCapacityReview)}
	ADUTypeFlags       = []string{"detached", "attached", "garage_conversion", "basement_conversion", "interior"}
	ParkingConfigFlags = []string{"uncovered", "covered", "garage", "tandem", "on_street"}
)

// Catalog lists every closed value set of the record, keyed by field name.
// Clients build dropdowns from it so labels never drift from stored tokens.
type Catalog struct {
	Enums    map[string][]string `json:"enums"`
	FlagSets map[string][]string `json:"flag_sets"`
}

// Enums returns a fresh Catalog.
func Enums() Catalog {
	cp := func(s []string) []string { return append([]string(nil), s...) }
	return Catalog{
		Enums: map[string][]string{
			"permit_type":                 cp(PermitTypes),
			"owner_occupancy_required":    cp(OwnerOccupancies),
			"attached_adu_height_rule":    cp(HeightRules),
			"attached_adu_setback_rule":   cp(SetbackRules),
			"adu_coverage_counting":       cp(CoverageCountings),
			"architectural_compatibility": cp(ArchCompatibility),
			"entrance_requirements":       cp(EntranceRules),
			"utility_connections":         cp(UtilityRules),
			"septic_sewer_requirements":   cp(SepticSewerRules),
		},
		FlagSets: map[string][]string{
			"adu_types_allowed":             cp(ADUTypeFlags),
			"parking_configuration_allowed": cp(ParkingConfigFlags),
		},
	}
}
