// Package scoring computes the risk score, tier and recommended measures of an
// AI usage questionnaire. Everything here is a pure function of its input.
package scoring

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/types"
)

var (
	// ErrIncompleteInput is returned when a required questionnaire answer is missing
	ErrIncompleteInput = goerr.New("incomplete assessment input")
)

// Input is a completed questionnaire
type Input struct {
	Tool         types.ToolID
	Autonomy     types.Autonomy
	DataTags     []types.DataSensitivity
	Impact       types.Impact
	Transparency types.Transparency
	UseCases     []types.UseCase
}

// Breakdown holds the points contributed by each category
type Breakdown struct {
	Tool         int `json:"tool"`
	Autonomy     int `json:"autonomy"`
	Data         int `json:"data"`
	Impact       int `json:"impact"`
	Transparency int `json:"transparency"`
}

// Total sums all category points
func (b Breakdown) Total() int {
	return b.Tool + b.Autonomy + b.Data + b.Impact + b.Transparency
}

// Result is the outcome of Evaluate
type Result struct {
	Score        int                   `json:"score"`
	Tier         types.Tier            `json:"tier"`
	ToolApproved bool                  `json:"tool_approved"`
	Breakdown    Breakdown             `json:"breakdown"`
	Measures     []types.MeasureTag    `json:"measures"`
	Compliance   []types.ComplianceTag `json:"compliance"`
}

// Validate checks that every required answer is present
func (x *Input) Validate() error {
	switch {
	case x.Tool == "":
		return goerr.Wrap(ErrIncompleteInput, "tool is required", goerr.V("field", "tool"))
	case x.Autonomy == "":
		return goerr.Wrap(ErrIncompleteInput, "autonomy is required", goerr.V("field", "autonomy"))
	case len(x.DataTags) == 0:
		return goerr.Wrap(ErrIncompleteInput, "at least one data tag is required", goerr.V("field", "data_tags"))
	case slices.Contains(x.DataTags, ""):
		return goerr.Wrap(ErrIncompleteInput, "data tag cannot be empty", goerr.V("field", "data_tags"))
	case x.Impact == "":
		return goerr.Wrap(ErrIncompleteInput, "impact is required", goerr.V("field", "impact"))
	case x.Transparency == "":
		return goerr.Wrap(ErrIncompleteInput, "transparency is required", goerr.V("field", "transparency"))
	}
	return nil
}

// Evaluate scores the questionnaire. It fails only with ErrIncompleteInput.
func Evaluate(input Input) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	approved := input.Tool.IsApproved()
	breakdown := Breakdown{
		Tool:         toolPenalty(input.Tool),
		Autonomy:     autonomyPoints[input.Autonomy],
		Data:         maxScore(dataPoints, input.DataTags),
		Impact:       impactPoints[input.Impact],
		Transparency: transparencyPoints[input.Transparency],
	}
	score := breakdown.Total()
	tier := classify(approved, score)

	return &Result{
		Score:        score,
		Tier:         tier,
		ToolApproved: approved,
		Breakdown:    breakdown,
		Measures:     recommend(input, approved, tier),
		Compliance:   compliance(input, approved, tier),
	}, nil
}

// classify maps a total to a tier. An unapproved tool is always critical.
func classify(toolApproved bool, score int) types.Tier {
	if !toolApproved {
		return types.TierCritical
	}
	for _, th := range tierThresholds {
		if score >= th.min {
			return th.tier
		}
	}
	return types.TierMinimal
}
