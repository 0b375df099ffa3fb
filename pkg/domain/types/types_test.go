package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

func TestToolID_IsApproved(t *testing.T) {
	tests := []struct {
		name string
		tool types.ToolID
		want bool
	}{
		{name: "m365 copilot", tool: types.ToolM365Copilot, want: true},
		{name: "ai builder", tool: types.ToolAIBuilder, want: true},
		{name: "chatgpt", tool: types.ToolChatGPT, want: false},
		{name: "free form", tool: types.ToolID("in_house_llm"), want: false},
		{name: "empty", tool: types.ToolID(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.tool.IsApproved()).Equal(tt.want)
		})
	}
}

func TestToolID_Validate(t *testing.T) {
	gt.NoError(t, types.ToolID("anything").Validate())
	gt.Error(t, types.ToolID("").Validate())
}

func TestKnownTools(t *testing.T) {
	tools := types.KnownTools()
	gt.A(t, tools).Length(15)
	for _, approved := range types.ApprovedTools() {
		gt.A(t, tools).Has(approved)
	}
}

func TestParseAutonomy(t *testing.T) {
	for _, a := range types.AllAutonomyLevels() {
		got, err := types.ParseAutonomy(a.String())
		gt.NoError(t, err)
		gt.V(t, got).Equal(a)
	}

	_, err := types.ParseAutonomy("fully_autonomous")
	gt.Error(t, err)
	_, err = types.ParseAutonomy("")
	gt.Error(t, err)
}

func TestAutonomy_IsAutomated(t *testing.T) {
	gt.B(t, types.AutonomyAutomated.IsAutomated()).True()
	gt.B(t, types.AutonomyCriticalAutomated.IsAutomated()).True()
	gt.B(t, types.AutonomySemiAutomated.IsAutomated()).False()
	gt.B(t, types.AutonomySupportOnly.IsAutomated()).False()
}

func TestDataSensitivity_Classes(t *testing.T) {
	tests := []struct {
		name         string
		data         types.DataSensitivity
		personal     bool
		confidential bool
	}{
		{name: "public", data: types.DataPublicOnly},
		{name: "company", data: types.DataCompanyGeneral},
		{name: "client confidential", data: types.DataClientConfidential, confidential: true},
		{name: "strategic", data: types.DataStrategicSensitive, confidential: true},
		{name: "personal", data: types.DataPersonalData, personal: true},
		{name: "special categories", data: types.DataSpecialCategories, personal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.B(t, tt.data.IsValid()).True()
			gt.V(t, tt.data.IsPersonal()).Equal(tt.personal)
			gt.V(t, tt.data.IsConfidential()).Equal(tt.confidential)
		})
	}

	_, err := types.ParseDataSensitivity("secret")
	gt.Error(t, err)
}

func TestParseImpactAndTransparency(t *testing.T) {
	for _, i := range types.AllImpacts() {
		got, err := types.ParseImpact(i.String())
		gt.NoError(t, err)
		gt.V(t, got).Equal(i)
	}
	for _, tr := range types.AllTransparencies() {
		got, err := types.ParseTransparency(tr.String())
		gt.NoError(t, err)
		gt.V(t, got).Equal(tr)
	}

	_, err := types.ParseImpact("catastrophic")
	gt.Error(t, err)
	_, err = types.ParseTransparency("opaque")
	gt.Error(t, err)
}

func TestTier_Ordering(t *testing.T) {
	tiers := types.AllTiers()
	for i := 1; i < len(tiers); i++ {
		gt.B(t, tiers[i].AtLeast(tiers[i-1])).True()
		gt.B(t, tiers[i-1].AtLeast(tiers[i])).False()
	}
	gt.V(t, types.Tier("extreme").Rank()).Equal(-1)

	got, err := types.ParseTier("high")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.TierHigh)
	_, err = types.ParseTier("HIGH")
	gt.Error(t, err)
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  types.Language
	}{
		{input: "de", want: types.LanguageGerman},
		{input: "en", want: types.LanguageEnglish},
		{input: "DE", want: types.LanguageGerman},
		{input: "de-DE,de;q=0.9,en;q=0.8", want: types.LanguageGerman},
		{input: "fr-FR,de;q=0.5", want: types.LanguageGerman},
		{input: "fr", want: types.LanguageEnglish},
		{input: "", want: types.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gt.V(t, types.ParseLanguage(tt.input)).Equal(tt.want)
		})
	}
}

func TestAssessmentID(t *testing.T) {
	id := types.NewAssessmentID()
	gt.NoError(t, id.Validate())
	gt.V(t, types.NewAssessmentID() == id).Equal(false)

	gt.Error(t, types.AssessmentID("").Validate())
	gt.Error(t, types.AssessmentID("42").Validate())
}
