package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"assist-server/services/assistant-api/internal/domain/assistant"
	"assist-server/services/assistant-api/internal/utils/platformerrors"
)

const (
	chatSystemPrompt = "You are a customer assistant for a government-services portal. " +
		"Answer in the locale %q. Respond with a JSON object: " +
		`{"reply": string, "intent": string}. The intent is a short snake_case label for the user's goal.`

	suggestSystemPrompt = "You recommend services from a government-services portal. " +
		"Answer in the locale %q. Respond with a JSON object: " +
		`{"suggestions": [{"title": string, "description": string}], "intent": string}.`

	documentSystemPrompt = "You help users prepare official documents. " +
		"Answer in the locale %q. Respond with a JSON object: " +
		`{"answer": string, "follow_up": [string], "intent": string}.`
)

// OpenAIProvider talks to an OpenAI-compatible chat completions endpoint.
// Structured output is requested through a JSON-object response format and
// parsed defensively: a reply that is not valid JSON is used verbatim.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// OpenAIConfig configures the remote backend.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// NewOpenAIProvider creates the remote backend client.
func NewOpenAIProvider(cfg OpenAIConfig, log zerolog.Logger) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) != "" {
		clientConfig.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		log:    log.With().Str("component", "openai_provider").Logger(),
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, req assistant.ChatRequest) (*assistant.ChatReply, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf(chatSystemPrompt, req.Locale),
	})
	for _, turn := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    completionRole(turn.Role),
			Content: turn.Content,
		})
	}
	if req.IntentHint != nil && *req.IntentHint != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("The caller hinted the intent may be %q.", *req.IntentHint),
		})
	}

	content, err := p.complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Reply  string `json:"reply"`
		Intent string `json:"intent"`
	}
	if jsonErr := json.Unmarshal([]byte(content), &parsed); jsonErr != nil || parsed.Reply == "" {
		p.log.Debug().Msg("chat completion was not structured JSON, using raw content")
		return &assistant.ChatReply{Reply: content}, nil
	}

	reply := &assistant.ChatReply{Reply: parsed.Reply}
	if parsed.Intent != "" {
		reply.Intent = &parsed.Intent
	}
	return reply, nil
}

func (p *OpenAIProvider) SuggestServices(ctx context.Context, req assistant.SuggestRequest) (*assistant.SuggestReply, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(suggestSystemPrompt, req.Locale),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Context,
		},
	}
	if req.IntentHint != nil && *req.IntentHint != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("The caller hinted the intent may be %q.", *req.IntentHint),
		})
	}

	content, err := p.complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []assistant.Suggestion `json:"suggestions"`
		Intent      string                 `json:"intent"`
	}
	if jsonErr := json.Unmarshal([]byte(content), &parsed); jsonErr != nil || len(parsed.Suggestions) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"model returned no parseable suggestions", jsonErr, "")
	}

	if parsed.Intent == "" {
		parsed.Intent = intentServiceInquiry
	}
	return &assistant.SuggestReply{Suggestions: parsed.Suggestions, Intent: parsed.Intent}, nil
}

func (p *OpenAIProvider) AssistDocument(ctx context.Context, req assistant.DocumentRequest) (*assistant.DocumentReply, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(documentSystemPrompt, req.Locale),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		},
	}

	content, err := p.complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Answer   string   `json:"answer"`
		FollowUp []string `json:"follow_up"`
		Intent   string   `json:"intent"`
	}
	if jsonErr := json.Unmarshal([]byte(content), &parsed); jsonErr != nil || parsed.Answer == "" {
		p.log.Debug().Msg("document completion was not structured JSON, using raw content")
		return &assistant.DocumentReply{Answer: content}, nil
	}

	reply := &assistant.DocumentReply{Answer: parsed.Answer, FollowUp: parsed.FollowUp}
	if parsed.Intent != "" {
		reply.Intent = &parsed.Intent
	}
	return reply, nil
}

func (p *OpenAIProvider) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "chat completion request failed")
	}
	if len(resp.Choices) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion returned no choices", nil, "")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion returned empty content", nil, "")
	}
	return content, nil
}

func completionRole(role string) string {
	if role == "assistant" {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}
