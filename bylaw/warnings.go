package bylaw

import (
	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/rules"
)

// warningRules are cross-field consistency checks. They never block a write.
func warningRules() rules.Rule[Record] {
	return rules.And(
		rules.AnyTrue[Record]("adu_types_allowed", bylawkit.WarnADUTypesNone),
		rules.If[Record]("attached_adu_height_rule", rules.Eq, string(HeightCustom)).
			Then(rules.Present[Record]("attached_adu_max_height_ft", bylawkit.WarnAttachedHeightValueMissing)),
		rules.If[Record]("attached_adu_setback_rule", rules.Eq, string(SetbackCustom)).
			Then(rules.Present[Record]("attached_adu_setback_details", bylawkit.WarnAttachedSetbackDetails)),
		rules.If[Record]("adu_parking_spaces_required", rules.Gt, 0).
			Then(rules.AnyTrue[Record]("parking_configuration_allowed", bylawkit.WarnParkingConfigurationMissing)),
	)
}
