package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"assist-server/services/assistant-api/internal/domain/assistant"
)

// Deterministic intents the mock backend recognizes by keyword.
const (
	intentDocumentAssistance = "document_assistance"
	intentServiceInquiry     = "service_inquiry"
	intentGeneralQuestion    = "general_question"
)

// MockProvider is a deterministic in-process backend for local development
// and tests. Replies are derived from the request text so behaviour is
// reproducible without network access.
type MockProvider struct {
	log zerolog.Logger
}

// NewMockProvider creates the mock backend.
func NewMockProvider(log zerolog.Logger) *MockProvider {
	return &MockProvider{
		log: log.With().Str("component", "mock_provider").Logger(),
	}
}

func (p *MockProvider) Chat(ctx context.Context, req assistant.ChatRequest) (*assistant.ChatReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	intent := classify(req.Message)
	if req.IntentHint != nil && *req.IntentHint != "" {
		intent = *req.IntentHint
	}

	var reply string
	switch intent {
	case intentDocumentAssistance:
		reply = "Here is how I can help with your documents."
	case intentServiceInquiry:
		reply = "Here are the services that match your request."
	default:
		reply = fmt.Sprintf("You asked: %q. How can I assist further?", req.Message)
	}

	p.log.Debug().Str("intent", intent).Int("history_len", len(req.History)).Msg("mock chat reply")
	return &assistant.ChatReply{Reply: reply, Intent: &intent}, nil
}

func (p *MockProvider) SuggestServices(ctx context.Context, req assistant.SuggestRequest) (*assistant.SuggestReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &assistant.SuggestReply{
		Suggestions: []assistant.Suggestion{
			{
				Title:       "Document Review",
				Description: "Have a specialist review your paperwork before submission.",
			},
			{
				Title:       "Application Assistance",
				Description: "Step-by-step guidance through the application process.",
			},
		},
		Intent: intentServiceInquiry,
	}, nil
}

func (p *MockProvider) AssistDocument(ctx context.Context, req assistant.DocumentRequest) (*assistant.DocumentReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	intent := intentDocumentAssistance
	return &assistant.DocumentReply{
		Answer: fmt.Sprintf("Based on your prompt, start by gathering the documents mentioned in: %q.", req.Prompt),
		FollowUp: []string{
			"Which documents do I need for this process?",
			"Are certified translations required?",
		},
		Intent: &intent,
	}, nil
}

func classify(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "document") || strings.Contains(lowered, "paperwork") || strings.Contains(lowered, "form"):
		return intentDocumentAssistance
	case strings.Contains(lowered, "service") || strings.Contains(lowered, "help me with") || strings.Contains(lowered, "appointment"):
		return intentServiceInquiry
	default:
		return intentGeneralQuestion
	}
}
