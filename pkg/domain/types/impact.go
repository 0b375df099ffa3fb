package types

import "github.com/m-mizutani/goerr/v2"

// Impact is the reach of the AI system's output
type Impact string

const (
	ImpactInternalEfficiency Impact = "internal_efficiency"
	ImpactProjectSupport     Impact = "project_support"
	ImpactClientDeliverable  Impact = "client_deliverable"
	ImpactStrategicDecision  Impact = "strategic_decision"
	ImpactCriticalOperations Impact = "critical_operations"
)

// AllImpacts returns the scopes ordered from lowest to highest impact
func AllImpacts() []Impact {
	return []Impact{
		ImpactInternalEfficiency,
		ImpactProjectSupport,
		ImpactClientDeliverable,
		ImpactStrategicDecision,
		ImpactCriticalOperations,
	}
}

func (i Impact) IsValid() bool {
	switch i {
	case ImpactInternalEfficiency,
		ImpactProjectSupport,
		ImpactClientDeliverable,
		ImpactStrategicDecision,
		ImpactCriticalOperations:
		return true
	default:
		return false
	}
}

func (i Impact) String() string {
	return string(i)
}

// ParseImpact parses a string into an Impact
func ParseImpact(s string) (Impact, error) {
	i := Impact(s)
	if !i.IsValid() {
		return "", goerr.New("invalid impact scope", goerr.V("impact", s))
	}
	return i, nil
}
