package scoring_test

import (
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airisk/pkg/domain/scoring"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

func baseInput() scoring.Input {
	return scoring.Input{
		Tool:         types.ToolM365Copilot,
		Autonomy:     types.AutonomySupportOnly,
		DataTags:     []types.DataSensitivity{types.DataPublicOnly},
		Impact:       types.ImpactInternalEfficiency,
		Transparency: types.TransparencyHigh,
	}
}

func evaluate(t *testing.T, input scoring.Input) *scoring.Result {
	t.Helper()
	result, err := scoring.Evaluate(input)
	gt.NoError(t, err).Required()
	return result
}

func TestEvaluate_UnapprovedHighRisk(t *testing.T) {
	result := evaluate(t, scoring.Input{
		Tool:         types.ToolChatGPT,
		Autonomy:     types.AutonomyAutomated,
		DataTags:     []types.DataSensitivity{types.DataPersonalData},
		Impact:       types.ImpactCriticalOperations,
		Transparency: types.TransparencyLow,
	})

	gt.V(t, result.Score).Equal(18)
	gt.V(t, result.Tier).Equal(types.TierCritical)
	gt.B(t, result.ToolApproved).False()
	gt.V(t, result.Breakdown).Equal(scoring.Breakdown{
		Tool:         3,
		Autonomy:     4,
		Data:         4,
		Impact:       5,
		Transparency: 2,
	})
	gt.V(t, result.Measures).Equal([]types.MeasureTag{
		types.MeasureITApprovalRequired,
		types.MeasureHighRiskConformityAssessment,
		types.MeasureExecutiveApproval,
		types.MeasureHumanOversight,
		types.MeasureBiasFairnessTesting,
		types.MeasureDataProtectionImpactAssessment,
		types.MeasureDataMinimization,
		types.MeasureExplainabilityEnhancement,
		types.MeasureMonitoringAuditTrail,
		types.MeasureDocumentationGovernance,
		types.MeasureStakeholderCommunication,
	})
	gt.V(t, result.Compliance).Equal([]types.ComplianceTag{
		types.ComplianceGDPR,
		types.ComplianceEUAIActHighRisk,
		types.ComplianceITApproval,
	})
}

func TestEvaluate_ApprovedMinimal(t *testing.T) {
	result := evaluate(t, baseInput())

	gt.V(t, result.Score).Equal(2)
	gt.V(t, result.Tier).Equal(types.TierMinimal)
	gt.B(t, result.ToolApproved).True()
	gt.V(t, result.Measures).Equal([]types.MeasureTag{
		types.MeasureToolPreApproved,
		types.MeasureDocumentationGovernance,
		types.MeasureStakeholderCommunication,
	})
	gt.A(t, result.Compliance).Length(0)
}

func TestEvaluate_TierThresholds(t *testing.T) {
	tests := []struct {
		name  string
		input func(in *scoring.Input)
		score int
		tier  types.Tier
	}{
		{
			name:  "score 3 is minimal",
			input: func(in *scoring.Input) { in.Autonomy = types.AutonomyInteractive },
			score: 3,
			tier:  types.TierMinimal,
		},
		{
			name:  "score 4 is low",
			input: func(in *scoring.Input) { in.Autonomy = types.AutonomySemiAutomated },
			score: 4,
			tier:  types.TierLow,
		},
		{
			name: "score 7 is medium",
			input: func(in *scoring.Input) {
				in.Autonomy = types.AutonomySemiAutomated
				in.DataTags = []types.DataSensitivity{types.DataStrategicSensitive}
			},
			score: 7,
			tier:  types.TierMedium,
		},
		{
			name: "score 10 is high",
			input: func(in *scoring.Input) {
				in.Autonomy = types.AutonomySemiAutomated
				in.DataTags = []types.DataSensitivity{types.DataStrategicSensitive}
				in.Impact = types.ImpactStrategicDecision
			},
			score: 10,
			tier:  types.TierHigh,
		},
		{
			name: "score 12 is still high",
			input: func(in *scoring.Input) {
				in.Autonomy = types.AutonomyCriticalAutomated
				in.DataTags = []types.DataSensitivity{types.DataSpecialCategories}
				in.Impact = types.ImpactInternalEfficiency
				in.Transparency = types.TransparencyMedium
			},
			score: 12,
			tier:  types.TierHigh,
		},
		{
			name: "score 13 is critical",
			input: func(in *scoring.Input) {
				in.Autonomy = types.AutonomyCriticalAutomated
				in.DataTags = []types.DataSensitivity{types.DataSpecialCategories}
				in.Impact = types.ImpactProjectSupport
				in.Transparency = types.TransparencyMedium
			},
			score: 13,
			tier:  types.TierCritical,
		},
		{
			name: "approved maximum is critical",
			input: func(in *scoring.Input) {
				in.Autonomy = types.AutonomyCriticalAutomated
				in.DataTags = []types.DataSensitivity{types.DataSpecialCategories}
				in.Impact = types.ImpactCriticalOperations
				in.Transparency = types.TransparencyLow
			},
			score: 17,
			tier:  types.TierCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.input(&input)
			result := evaluate(t, input)
			gt.V(t, result.Score).Equal(tt.score)
			gt.V(t, result.Tier).Equal(tt.tier)
		})
	}
}

func TestEvaluate_UnapprovedToolForcesCritical(t *testing.T) {
	input := baseInput()
	input.Tool = types.ToolID("some_unknown_tool")

	result := evaluate(t, input)
	gt.V(t, result.Score).Equal(5)
	gt.V(t, result.Tier).Equal(types.TierCritical)
	gt.V(t, result.Measures[0]).Equal(types.MeasureITApprovalRequired)
	gt.A(t, result.Measures).Has(types.MeasureHighRiskConformityAssessment)
	gt.A(t, result.Measures).Has(types.MeasureHumanOversight)
}

func TestEvaluate_DataTagsUseMaximum(t *testing.T) {
	input := baseInput()
	input.DataTags = []types.DataSensitivity{
		types.DataCompanyGeneral,
		types.DataClientConfidential,
		types.DataStrategicSensitive,
	}

	result := evaluate(t, input)
	gt.V(t, result.Breakdown.Data).Equal(3)
	gt.V(t, result.Score).Equal(5)

	// Only the confidentiality measure is added once for two confidential tags
	count := 0
	for _, m := range result.Measures {
		if m == types.MeasureConfidentialityIPProtection {
			count++
		}
	}
	gt.V(t, count).Equal(1)
	gt.V(t, result.Compliance).Equal([]types.ComplianceTag{types.ComplianceNDA})
}

func TestEvaluate_UseCaseMeasures(t *testing.T) {
	input := baseInput()
	input.UseCases = []types.UseCase{
		types.UseCaseCodeGeneration,
		types.UseCaseClientAdvisory,
		types.UseCaseRiskAssessment,
	}

	result := evaluate(t, input)
	gt.V(t, result.Score).Equal(2)
	gt.V(t, result.Measures).Equal([]types.MeasureTag{
		types.MeasureToolPreApproved,
		types.MeasureValidationBacktesting,
		types.MeasureSecurityReview,
		types.MeasureDocumentationGovernance,
		types.MeasureStakeholderCommunication,
	})
}

func TestEvaluate_IncompleteInput(t *testing.T) {
	tests := []struct {
		name  string
		input func(in *scoring.Input)
	}{
		{name: "missing tool", input: func(in *scoring.Input) { in.Tool = "" }},
		{name: "missing autonomy", input: func(in *scoring.Input) { in.Autonomy = "" }},
		{name: "no data tags", input: func(in *scoring.Input) { in.DataTags = nil }},
		{name: "empty data tag", input: func(in *scoring.Input) {
			in.DataTags = []types.DataSensitivity{types.DataPublicOnly, ""}
		}},
		{name: "missing impact", input: func(in *scoring.Input) { in.Impact = "" }},
		{name: "missing transparency", input: func(in *scoring.Input) { in.Transparency = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.input(&input)
			result, err := scoring.Evaluate(input)
			gt.Error(t, err).Is(scoring.ErrIncompleteInput)
			gt.V(t, result).Nil()
		})
	}
}

func TestEvaluate_UnknownValuesScoreZero(t *testing.T) {
	input := baseInput()
	input.Autonomy = types.Autonomy("telepathic")
	input.DataTags = []types.DataSensitivity{"classified"}

	result := evaluate(t, input)
	gt.V(t, result.Breakdown.Autonomy).Equal(0)
	gt.V(t, result.Breakdown.Data).Equal(0)
	gt.V(t, result.Score).Equal(1)
}

func TestEvaluate_Bounds(t *testing.T) {
	// Walk the whole single-select space and check bounds and tier/measure consistency
	for _, tool := range []types.ToolID{types.ToolM365Copilot, types.ToolChatGPT} {
		for _, a := range types.AllAutonomyLevels() {
			for _, d := range types.AllDataSensitivities() {
				for _, i := range types.AllImpacts() {
					for _, tr := range types.AllTransparencies() {
						input := scoring.Input{
							Tool:         tool,
							Autonomy:     a,
							DataTags:     []types.DataSensitivity{d},
							Impact:       i,
							Transparency: tr,
						}
						result := evaluate(t, input)

						gt.B(t, result.Score >= 0).True()
						gt.B(t, result.Score <= scoring.MaxScore).True()
						gt.V(t, result.Breakdown.Total()).Equal(result.Score)
						if !tool.IsApproved() {
							gt.V(t, result.Tier).Equal(types.TierCritical)
						}

						n := len(result.Measures)
						gt.V(t, result.Measures[n-2]).Equal(types.MeasureDocumentationGovernance)
						gt.V(t, result.Measures[n-1]).Equal(types.MeasureStakeholderCommunication)
					}
				}
			}
		}
	}
}

func TestEvaluate_TierMonotonic(t *testing.T) {
	// Raising any single category never lowers the tier
	input := baseInput()
	prev := evaluate(t, input)

	for _, a := range types.AllAutonomyLevels()[1:] {
		input.Autonomy = a
		next := evaluate(t, input)
		gt.B(t, next.Tier.AtLeast(prev.Tier)).True()
		gt.B(t, next.Score > prev.Score).True()
		prev = next
	}

	for _, i := range types.AllImpacts()[1:] {
		input.Impact = i
		next := evaluate(t, input)
		gt.B(t, next.Tier.AtLeast(prev.Tier)).True()
		prev = next
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	input := baseInput()
	input.Tool = types.ToolClaude
	input.DataTags = []types.DataSensitivity{types.DataPersonalData, types.DataClientConfidential}

	first := evaluate(t, input)
	second := evaluate(t, input)
	gt.V(t, second).Equal(first)
}

func TestEvaluate_Concurrent(t *testing.T) {
	input := baseInput()
	input.Autonomy = types.AutonomyCriticalAutomated
	expected := evaluate(t, input)

	var wg sync.WaitGroup
	results := make([]*scoring.Result, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := scoring.Evaluate(input)
			if err == nil {
				results[i] = r
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		gt.V(t, r).Equal(expected)
	}
}

func TestMaxScore(t *testing.T) {
	gt.V(t, scoring.MaxScore).Equal(20)
}
