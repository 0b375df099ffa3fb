package usecase

import (
	"github.com/secmon-lab/airisk/pkg/domain/catalog"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/scoring"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

// Report is a scored questionnaire rendered in one language
type Report struct {
	Language        types.Language    `json:"language"`
	Score           int               `json:"score"`
	MaxScore        int               `json:"maxScore"`
	Tier            types.Tier        `json:"tier"`
	TierLabel       string            `json:"tierLabel"`
	TierExplanation string            `json:"tierExplanation"`
	ToolApproved    bool              `json:"toolApproved"`
	Breakdown       scoring.Breakdown `json:"breakdown"`
	Measures        []catalog.Measure `json:"measures"`
	Compliance      []ComplianceItem  `json:"compliance"`
	Answers         Answers           `json:"answers"`
}

type ComplianceItem struct {
	ID    types.ComplianceTag `json:"id"`
	Title string              `json:"title"`
}

// Answers holds the display labels of the questionnaire answers
type Answers struct {
	ProjectType  string   `json:"projectType"`
	Tool         string   `json:"tool"`
	UseCases     []string `json:"useCases"`
	DataTypes    []string `json:"dataTypes"`
	Autonomy     string   `json:"autonomy"`
	Impact       string   `json:"impact"`
	Transparency string   `json:"transparency"`
}

// BuildReport localizes a scoring result together with the answers it came from
func BuildReport(cat *catalog.Catalog, lang types.Language, q *model.Questionnaire, result *scoring.Result) *Report {
	compliance := make([]ComplianceItem, len(result.Compliance))
	for i, tag := range result.Compliance {
		compliance[i] = ComplianceItem{ID: tag, Title: cat.Compliance(lang, tag)}
	}

	return &Report{
		Language:        lang,
		Score:           result.Score,
		MaxScore:        scoring.MaxScore,
		Tier:            result.Tier,
		TierLabel:       cat.TierLabel(lang, result.Tier),
		TierExplanation: cat.TierExplanation(lang, result.Tier),
		ToolApproved:    result.ToolApproved,
		Breakdown:       result.Breakdown,
		Measures:        cat.Measures(lang, result.Measures),
		Compliance:      compliance,
		Answers:         answerLabels(cat, lang, q),
	}
}

// BuildStoredReport localizes a stored assessment. Score, tier and measures
// come from the record; breakdown and compliance are derived from its answers.
func BuildStoredReport(cat *catalog.Catalog, lang types.Language, a *model.Assessment) *Report {
	q := a.Questionnaire()
	result := &scoring.Result{
		Score:        a.TotalScore,
		Tier:         a.Tier,
		ToolApproved: a.ToolID.IsApproved(),
		Measures:     a.MeasureTags,
		Compliance:   []types.ComplianceTag{},
	}
	if derived, err := scoring.Evaluate(q.Input()); err == nil {
		result.Breakdown = derived.Breakdown
		result.Compliance = derived.Compliance
	}

	return BuildReport(cat, lang, q, result)
}

func answerLabels(cat *catalog.Catalog, lang types.Language, q *model.Questionnaire) Answers {
	return Answers{
		ProjectType:  cat.Label(lang, catalog.LabelProjectType, string(q.ProjectType)),
		Tool:         cat.Label(lang, catalog.LabelTool, string(q.Tool)),
		UseCases:     cat.Labels(lang, catalog.LabelUseCase, toStrings(q.UseCases)),
		DataTypes:    cat.Labels(lang, catalog.LabelData, toStrings(q.DataTags)),
		Autonomy:     cat.Label(lang, catalog.LabelAutonomy, string(q.Autonomy)),
		Impact:       cat.Label(lang, catalog.LabelImpact, string(q.Impact)),
		Transparency: cat.Label(lang, catalog.LabelTransparency, string(q.Transparency)),
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
