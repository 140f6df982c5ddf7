package provider

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"assist-server/services/assistant-api/internal/domain/assistant"
)

func TestMockProviderChatIntents(t *testing.T) {
	mock := NewMockProvider(zerolog.Nop())

	tests := []struct {
		name       string
		message    string
		wantIntent string
	}{
		{
			name:       "document wording maps to document assistance",
			message:    "I need help with my documents",
			wantIntent: "document_assistance",
		},
		{
			name:       "service wording maps to service inquiry",
			message:    "What services do you offer?",
			wantIntent: "service_inquiry",
		},
		{
			name:       "anything else is a general question",
			message:    "hello there",
			wantIntent: "general_question",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply, err := mock.Chat(context.Background(), assistant.ChatRequest{
				Locale:  "en",
				Message: tc.message,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reply.Intent == nil || *reply.Intent != tc.wantIntent {
				t.Errorf("intent = %v, want %q", reply.Intent, tc.wantIntent)
			}
			if reply.Reply == "" {
				t.Error("reply must not be empty")
			}
		})
	}
}

func TestMockProviderHonorsIntentHint(t *testing.T) {
	mock := NewMockProvider(zerolog.Nop())

	hint := "document_assistance"
	reply, err := mock.Chat(context.Background(), assistant.ChatRequest{
		Locale:     "en",
		Message:    "hello",
		IntentHint: &hint,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Intent == nil || *reply.Intent != hint {
		t.Errorf("intent = %v, the hint should win", reply.Intent)
	}
	if reply.Reply != "Here is how I can help with your documents." {
		t.Errorf("reply = %q", reply.Reply)
	}
}

func TestMockProviderIsDeterministic(t *testing.T) {
	mock := NewMockProvider(zerolog.Nop())
	req := assistant.ChatRequest{Locale: "en", Message: "check my paperwork"}

	first, err := mock.Chat(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := mock.Chat(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Reply != second.Reply {
		t.Error("mock replies must be reproducible for the same input")
	}
}

func TestMockProviderSuggestServices(t *testing.T) {
	mock := NewMockProvider(zerolog.Nop())

	reply, err := mock.SuggestServices(context.Background(), assistant.SuggestRequest{
		Locale:  "en",
		Context: "visa renewal",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reply.Suggestions) == 0 {
		t.Error("mock suggestions must not be empty")
	}
	if reply.Intent != "service_inquiry" {
		t.Errorf("intent = %q", reply.Intent)
	}
}

func TestMockProviderAssistDocument(t *testing.T) {
	mock := NewMockProvider(zerolog.Nop())

	reply, err := mock.AssistDocument(context.Background(), assistant.DocumentRequest{
		Locale: "en",
		Prompt: "What do I need for attestation?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Answer == "" {
		t.Error("answer must not be empty")
	}
	if len(reply.FollowUp) == 0 {
		t.Error("follow-up suggestions must not be empty")
	}
}

func TestMockProviderRespectsCancellation(t *testing.T) {
	mock := NewMockProvider(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mock.Chat(ctx, assistant.ChatRequest{Locale: "en", Message: "hello"}); err == nil {
		t.Error("cancelled context should be reported")
	}
}
