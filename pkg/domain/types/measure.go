package types

// MeasureTag identifies a recommended mitigation. Titles and descriptions
// are looked up in the catalog.
type MeasureTag string

const (
	MeasureITApprovalRequired             MeasureTag = "it_approval_required"
	MeasureToolPreApproved                MeasureTag = "tool_pre_approved"
	MeasureHighRiskConformityAssessment   MeasureTag = "high_risk_conformity_assessment"
	MeasureExecutiveApproval              MeasureTag = "executive_approval"
	MeasureHumanOversight                 MeasureTag = "human_oversight"
	MeasureBiasFairnessTesting            MeasureTag = "bias_fairness_testing"
	MeasureDataProtectionImpactAssessment MeasureTag = "data_protection_impact_assessment"
	MeasureDataMinimization               MeasureTag = "data_minimization"
	MeasureConfidentialityIPProtection    MeasureTag = "confidentiality_ip_protection"
	MeasureExplainabilityEnhancement      MeasureTag = "explainability_enhancement"
	MeasureMonitoringAuditTrail           MeasureTag = "monitoring_audit_trail"
	MeasureValidationBacktesting          MeasureTag = "validation_backtesting"
	MeasureSecurityReview                 MeasureTag = "security_review"
	MeasureDocumentationGovernance        MeasureTag = "documentation_governance"
	MeasureStakeholderCommunication       MeasureTag = "stakeholder_communication"
)

// AllMeasureTags returns every tag in the order the scorer can emit them
func AllMeasureTags() []MeasureTag {
	return []MeasureTag{
		MeasureITApprovalRequired,
		MeasureToolPreApproved,
		MeasureHighRiskConformityAssessment,
		MeasureExecutiveApproval,
		MeasureHumanOversight,
		MeasureBiasFairnessTesting,
		MeasureDataProtectionImpactAssessment,
		MeasureDataMinimization,
		MeasureConfidentialityIPProtection,
		MeasureExplainabilityEnhancement,
		MeasureMonitoringAuditTrail,
		MeasureValidationBacktesting,
		MeasureSecurityReview,
		MeasureDocumentationGovernance,
		MeasureStakeholderCommunication,
	}
}

func (m MeasureTag) String() string {
	return string(m)
}

// ComplianceTag identifies a regulatory or policy requirement triggered by an assessment
type ComplianceTag string

const (
	ComplianceGDPR            ComplianceTag = "gdpr"
	ComplianceEUAIActHighRisk ComplianceTag = "eu_ai_act_high_risk"
	ComplianceITApproval      ComplianceTag = "it_approval"
	ComplianceNDA             ComplianceTag = "nda"
)

func AllComplianceTags() []ComplianceTag {
	return []ComplianceTag{
		ComplianceGDPR,
		ComplianceEUAIActHighRisk,
		ComplianceITApproval,
		ComplianceNDA,
	}
}

func (c ComplianceTag) String() string {
	return string(c)
}
