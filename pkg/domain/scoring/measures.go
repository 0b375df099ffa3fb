package scoring

import (
	"slices"

	"github.com/secmon-lab/airisk/pkg/domain/types"
)

func hasPersonalData(tags []types.DataSensitivity) bool {
	return slices.ContainsFunc(tags, types.DataSensitivity.IsPersonal)
}

func hasConfidentialData(tags []types.DataSensitivity) bool {
	return slices.ContainsFunc(tags, types.DataSensitivity.IsConfidential)
}

// recommend builds the ordered measure list. Each rule appends; none removes.
func recommend(input Input, toolApproved bool, tier types.Tier) []types.MeasureTag {
	var measures []types.MeasureTag

	if toolApproved {
		measures = append(measures, types.MeasureToolPreApproved)
	} else {
		measures = append(measures, types.MeasureITApprovalRequired)
	}

	if tier == types.TierCritical {
		measures = append(measures,
			types.MeasureHighRiskConformityAssessment,
			types.MeasureExecutiveApproval,
		)
	}

	if tier.AtLeast(types.TierHigh) {
		measures = append(measures,
			types.MeasureHumanOversight,
			types.MeasureBiasFairnessTesting,
		)
	}

	if hasPersonalData(input.DataTags) {
		measures = append(measures,
			types.MeasureDataProtectionImpactAssessment,
			types.MeasureDataMinimization,
		)
	}

	if hasConfidentialData(input.DataTags) {
		measures = append(measures, types.MeasureConfidentialityIPProtection)
	}

	if input.Transparency == types.TransparencyLow {
		measures = append(measures, types.MeasureExplainabilityEnhancement)
	}

	if input.Autonomy.IsAutomated() {
		measures = append(measures, types.MeasureMonitoringAuditTrail)
	}

	if slices.Contains(input.UseCases, types.UseCaseRiskAssessment) {
		measures = append(measures, types.MeasureValidationBacktesting)
	}

	if slices.Contains(input.UseCases, types.UseCaseCodeGeneration) {
		measures = append(measures, types.MeasureSecurityReview)
	}

	return append(measures,
		types.MeasureDocumentationGovernance,
		types.MeasureStakeholderCommunication,
	)
}

func compliance(input Input, toolApproved bool, tier types.Tier) []types.ComplianceTag {
	tags := []types.ComplianceTag{}

	if hasPersonalData(input.DataTags) {
		tags = append(tags, types.ComplianceGDPR)
	}
	if tier.AtLeast(types.TierHigh) {
		tags = append(tags, types.ComplianceEUAIActHighRisk)
	}
	if !toolApproved {
		tags = append(tags, types.ComplianceITApproval)
	}
	if hasConfidentialData(input.DataTags) {
		tags = append(tags, types.ComplianceNDA)
	}

	return tags
}
