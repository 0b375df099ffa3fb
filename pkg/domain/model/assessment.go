package model

import (
	"slices"
	"time"

	"github.com/secmon-lab/airisk/pkg/domain/model/auth"
	"github.com/secmon-lab/airisk/pkg/domain/scoring"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

// Questionnaire is a set of answers submitted for assessment
type Questionnaire struct {
	ProjectType  types.ProjectType       `json:"projectType"`
	Tool         types.ToolID            `json:"tool"`
	Autonomy     types.Autonomy          `json:"autonomy"`
	DataTags     []types.DataSensitivity `json:"dataTags"`
	Impact       types.Impact            `json:"impact"`
	Transparency types.Transparency      `json:"transparency"`
	UseCases     []types.UseCase         `json:"useCases"`
}

// Input converts the answers to the scorer input
func (q *Questionnaire) Input() scoring.Input {
	return scoring.Input{
		Tool:         q.Tool,
		Autonomy:     q.Autonomy,
		DataTags:     slices.Clone(q.DataTags),
		Impact:       q.Impact,
		Transparency: q.Transparency,
		UseCases:     slices.Clone(q.UseCases),
	}
}

// Assessment is a scored questionnaire stored for a user. It is created once
// and never updated.
type Assessment struct {
	ID           types.AssessmentID
	UserID       string
	UserEmail    string
	UserName     string
	ProjectType  types.ProjectType
	ToolID       types.ToolID
	Autonomy     types.Autonomy
	DataTags     []types.DataSensitivity
	Impact       types.Impact
	Transparency types.Transparency
	UseCaseTags  []types.UseCase
	TotalScore   int
	Tier         types.Tier
	MeasureTags  []types.MeasureTag
	CreatedAt    time.Time
}

// NewAssessment builds an unsaved record from the answers and their score
func NewAssessment(user *auth.User, q *Questionnaire, result *scoring.Result) *Assessment {
	return &Assessment{
		UserID:       user.ID,
		UserEmail:    user.Email,
		UserName:     user.Name,
		ProjectType:  q.ProjectType,
		ToolID:       q.Tool,
		Autonomy:     q.Autonomy,
		DataTags:     slices.Clone(q.DataTags),
		Impact:       q.Impact,
		Transparency: q.Transparency,
		UseCaseTags:  slices.Clone(q.UseCases),
		TotalScore:   result.Score,
		Tier:         result.Tier,
		MeasureTags:  slices.Clone(result.Measures),
	}
}

// Questionnaire returns the answers the assessment was made from
func (a *Assessment) Questionnaire() *Questionnaire {
	return &Questionnaire{
		ProjectType:  a.ProjectType,
		Tool:         a.ToolID,
		Autonomy:     a.Autonomy,
		DataTags:     slices.Clone(a.DataTags),
		Impact:       a.Impact,
		Transparency: a.Transparency,
		UseCases:     slices.Clone(a.UseCaseTags),
	}
}

// Copy returns a deep copy
func (a *Assessment) Copy() *Assessment {
	c := *a
	c.DataTags = slices.Clone(a.DataTags)
	c.UseCaseTags = slices.Clone(a.UseCaseTags)
	c.MeasureTags = slices.Clone(a.MeasureTags)
	return &c
}
