package types

import "github.com/m-mizutani/goerr/v2"

// ToolID identifies an AI tool or system. Any non-empty value is accepted;
// only membership in the approved set carries meaning for scoring.
type ToolID string

const (
	ToolM365Copilot   ToolID = "m365_copilot"
	ToolAIBuilder     ToolID = "ai_builder"
	ToolChatGPT       ToolID = "chatgpt"
	ToolGPT4          ToolID = "gpt4"
	ToolClaude        ToolID = "claude"
	ToolGemini        ToolID = "gemini"
	ToolGitHubCopilot ToolID = "github_copilot"
	ToolAzureOpenAI   ToolID = "azure_openai"
	ToolAWSBedrock    ToolID = "aws_bedrock"
	ToolHuggingFace   ToolID = "huggingface"
	ToolMidjourney    ToolID = "midjourney"
	ToolJasper        ToolID = "jasper"
	ToolNotionAI      ToolID = "notion_ai"
	ToolPerplexity    ToolID = "perplexity"
	ToolOther         ToolID = "other"
)

// approvedTools is the static set of tools cleared for use without review.
var approvedTools = map[ToolID]struct{}{
	ToolM365Copilot: {},
	ToolAIBuilder:   {},
}

// ApprovedTools returns the approved tool identifiers in a stable order
func ApprovedTools() []ToolID {
	return []ToolID{ToolM365Copilot, ToolAIBuilder}
}

// KnownTools returns every tool offered by the questionnaire, approved ones first
func KnownTools() []ToolID {
	return []ToolID{
		ToolM365Copilot,
		ToolAIBuilder,
		ToolChatGPT,
		ToolGPT4,
		ToolClaude,
		ToolGemini,
		ToolGitHubCopilot,
		ToolAzureOpenAI,
		ToolAWSBedrock,
		ToolHuggingFace,
		ToolMidjourney,
		ToolJasper,
		ToolNotionAI,
		ToolPerplexity,
		ToolOther,
	}
}

// IsApproved reports whether the tool is in the approved set
func (t ToolID) IsApproved() bool {
	_, ok := approvedTools[t]
	return ok
}

// Validate checks that the tool identifier is present
func (t ToolID) Validate() error {
	if t == "" {
		return goerr.New("tool ID cannot be empty")
	}
	return nil
}

func (t ToolID) String() string {
	return string(t)
}
