package scoring

import "github.com/secmon-lab/airisk/pkg/domain/types"

const (
	// MaxScore is the highest total an assessment can reach
	MaxScore = unapprovedToolPenalty + 5 + 5 + 5 + 2

	unapprovedToolPenalty = 3
)

var autonomyPoints = map[types.Autonomy]int{
	types.AutonomySupportOnly:       1,
	types.AutonomyInteractive:       2,
	types.AutonomySemiAutomated:     3,
	types.AutonomyAutomated:         4,
	types.AutonomyCriticalAutomated: 5,
}

var dataPoints = map[types.DataSensitivity]int{
	types.DataPublicOnly:         0,
	types.DataCompanyGeneral:     1,
	types.DataClientConfidential: 2,
	types.DataStrategicSensitive: 3,
	types.DataPersonalData:       4,
	types.DataSpecialCategories:  5,
}

var impactPoints = map[types.Impact]int{
	types.ImpactInternalEfficiency: 1,
	types.ImpactProjectSupport:     2,
	types.ImpactClientDeliverable:  3,
	types.ImpactStrategicDecision:  4,
	types.ImpactCriticalOperations: 5,
}

var transparencyPoints = map[types.Transparency]int{
	types.TransparencyHigh:   0,
	types.TransparencyMedium: 1,
	types.TransparencyLow:    2,
}

// tierThresholds is checked top down; the first threshold the total reaches wins.
var tierThresholds = []struct {
	min  int
	tier types.Tier
}{
	{min: 13, tier: types.TierCritical},
	{min: 10, tier: types.TierHigh},
	{min: 7, tier: types.TierMedium},
	{min: 4, tier: types.TierLow},
}

func toolPenalty(tool types.ToolID) int {
	if tool.IsApproved() {
		return 0
	}
	return unapprovedToolPenalty
}

// maxScore returns the highest weight among the selected values. Unknown
// values weigh 0. Every multi-select category aggregates through here.
func maxScore[K comparable](table map[K]int, selected []K) int {
	highest := 0
	for _, v := range selected {
		if p := table[v]; p > highest {
			highest = p
		}
	}
	return highest
}
