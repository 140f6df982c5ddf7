package assistant

import (
	"assist-server/services/assistant-api/internal/domain/conversation"
)

// Caller identifies the authenticated requester. Identity and preferred
// locale are supplied by the authentication layer upstream of this package.
type Caller struct {
	ID     string
	Locale string
}

// ChatInput is the caller-facing request for a chat turn.
type ChatInput struct {
	ConversationID string  `json:"conversation_id,omitempty" validate:"omitempty,max=128"`
	Message        string  `json:"message" validate:"required,max=2000"`
	Locale         string  `json:"locale,omitempty" validate:"omitempty,max=35"`
	IntentHint     *string `json:"intent_hint,omitempty" validate:"omitempty,max=200"`
}

// SuggestInput is the caller-facing request for service suggestions.
type SuggestInput struct {
	Context    string  `json:"context" validate:"required,max=1000"`
	Locale     string  `json:"locale,omitempty" validate:"omitempty,max=35"`
	IntentHint *string `json:"intent_hint,omitempty" validate:"omitempty,max=200"`
}

// DocumentInput is the caller-facing request for document assistance.
type DocumentInput struct {
	Prompt string `json:"prompt" validate:"required"`
	Locale string `json:"locale,omitempty" validate:"omitempty,max=35"`
}

type summarizeInput struct {
	Prompt string `validate:"required,min=3"`
}

// ChatResult is the well-formed response every chat turn produces,
// fallback or not.
type ChatResult struct {
	Conversation conversation.Snapshot `json:"conversation"`
	Reply        string                `json:"reply"`
	Intent       *string               `json:"intent,omitempty"`
	Fallback     bool                  `json:"fallback"`
	Locale       string                `json:"locale"`
}

// SuggestionsResult is the response shape for service suggestions. Message
// is only set on the fallback path.
type SuggestionsResult struct {
	Suggestions []Suggestion `json:"suggestions"`
	Intent      string       `json:"intent"`
	Fallback    bool         `json:"fallback"`
	Locale      string       `json:"locale"`
	Message     string       `json:"message,omitempty"`
}

// DocumentAssistResult is the response shape for document assistance.
type DocumentAssistResult struct {
	Answer   string   `json:"answer"`
	FollowUp []string `json:"follow_up"`
	Intent   *string  `json:"intent,omitempty"`
	Fallback bool     `json:"fallback"`
	Locale   string   `json:"locale"`
}

// SummaryResult is the response shape for summarization.
type SummaryResult struct {
	Summary string `json:"summary"`
	Locale  string `json:"locale"`
}
