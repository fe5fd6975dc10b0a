// Package drafts integrates external LLM providers to draft and revise
// prompt content. Provider responses are untrusted: everything is
// schema-checked before it reaches a caller, and drafted content is
// only persisted through the normal prompt validation path.
package drafts

import (
	"promptvault/internal/prompts"
)

// DraftResult is the structured output every draft operation returns.
// Answer is only populated by feedback flows.
type DraftResult struct {
	Answer string `json:"answer,omitempty"`
	prompts.Attributes
	FinalPrompt string `json:"finalPrompt"`
}

// FeedbackCommand asks a provider to critique and revise an existing
// prompt.
type FeedbackCommand struct {
	Provider string             `json:"provider"`
	Prompt   prompts.Attributes `json:"prompt"`
	Final    string             `json:"final_prompt"`
	Feedback string             `json:"feedback"`
}

// KeywordsCommand drafts a prompt from loose keywords.
type KeywordsCommand struct {
	Provider string `json:"provider"`
	Keywords string `json:"keywords"`
}

// TextCommand drafts a prompt from free text. With Optimize false the
// input text is kept verbatim as the final prompt and only the
// structured attributes are derived from it.
type TextCommand struct {
	Provider string `json:"provider"`
	Text     string `json:"text"`
	Optimize bool   `json:"optimize"`
}

// CompareCommand runs the same text request against every registered
// provider.
type CompareCommand struct {
	Text string `json:"text"`
}

// ProviderResult pairs a provider name with its draft or failure.
type ProviderResult struct {
	Provider string       `json:"provider"`
	Result   *DraftResult `json:"result,omitempty"`
	Error    string       `json:"error,omitempty"`
}
