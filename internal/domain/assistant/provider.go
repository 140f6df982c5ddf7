package assistant

import (
	"context"
)

// Turn is one prior conversation turn passed to the model backend.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest asks the backend for the next assistant turn.
type ChatRequest struct {
	Locale     string
	Message    string
	History    []Turn
	IntentHint *string
}

// ChatReply is the backend's answer to a chat turn.
type ChatReply struct {
	Reply  string
	Intent *string
}

// SuggestRequest asks the backend for service recommendations.
type SuggestRequest struct {
	Locale     string
	Context    string
	IntentHint *string
}

// Suggestion is a single recommended service.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestReply is the backend's set of recommendations.
type SuggestReply struct {
	Suggestions []Suggestion
	Intent      string
}

// DocumentRequest asks the backend for document assistance.
type DocumentRequest struct {
	Locale string
	Prompt string
}

// DocumentReply is the backend's document assistance answer.
type DocumentReply struct {
	Answer   string
	FollowUp []string
	Intent   *string
}

// ModelProvider abstracts the language-model backend. The active variant is
// selected once at process start and fixed for the process lifetime. Every
// call can fail; the orchestrator converts any failure into a localized
// fallback and never surfaces it to the caller.
type ModelProvider interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatReply, error)
	SuggestServices(ctx context.Context, req SuggestRequest) (*SuggestReply, error)
	AssistDocument(ctx context.Context, req DocumentRequest) (*DocumentReply, error)
}
