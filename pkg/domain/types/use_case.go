package types

// UseCase tags what the AI system is used for. The set is open; only
// UseCaseRiskAssessment and UseCaseCodeGeneration change the recommendations.
type UseCase string

const (
	UseCaseClientAdvisory      UseCase = "client_advisory"
	UseCasePredictiveAnalytics UseCase = "predictive_analytics"
	UseCaseAutomation          UseCase = "automation"
	UseCaseDecisionSupport     UseCase = "decision_support"
	UseCaseNLPAnalysis         UseCase = "nlp_analysis"
	UseCaseCodeGeneration      UseCase = "code_generation"
	UseCaseResourceAllocation  UseCase = "resource_allocation"
	UseCaseRiskAssessment      UseCase = "risk_assessment"
)

// KnownUseCases returns the use cases offered by the questionnaire
func KnownUseCases() []UseCase {
	return []UseCase{
		UseCaseClientAdvisory,
		UseCasePredictiveAnalytics,
		UseCaseAutomation,
		UseCaseDecisionSupport,
		UseCaseNLPAnalysis,
		UseCaseCodeGeneration,
		UseCaseResourceAllocation,
		UseCaseRiskAssessment,
	}
}

func (u UseCase) String() string {
	return string(u)
}
