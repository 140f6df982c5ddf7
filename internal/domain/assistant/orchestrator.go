package assistant

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"assist-server/services/assistant-api/internal/domain/catalog"
	"assist-server/services/assistant-api/internal/domain/conversation"
	"assist-server/services/assistant-api/internal/domain/guardrail"
	"assist-server/services/assistant-api/internal/infrastructure/metrics"
	"assist-server/services/assistant-api/internal/infrastructure/observability"
	"assist-server/services/assistant-api/internal/utils/platformerrors"
)

const serviceName = "assistant-api"

// IntentCatalogRecommendation labels suggestions synthesized from the
// catalog when the model backend is unavailable.
const IntentCatalogRecommendation = "catalog_recommendation"

// Fallback page requested from the catalog collaborator.
const (
	fallbackCatalogPage  = 1
	fallbackCatalogLimit = 3
)

// FallbackBundle carries the localized canned responses for one locale.
type FallbackBundle struct {
	Chat               string
	ServiceSuggestions string
	DocumentAssist     string
}

// Config holds the orchestrator's immutable runtime settings.
type Config struct {
	DefaultLocale     string
	SupportedLocales  []string
	Fallbacks         map[string]FallbackBundle
	DocumentFollowUps []string
	ProviderTimeout   time.Duration
}

// Orchestrator composes guardrail, conversation store, model provider and
// catalog collaborator. Each operation follows the same state machine:
// validate, resolve state (chat only), invoke the provider, then either the
// success path or the fallback path. A provider failure is never retried
// and never surfaces to the caller; only validation errors do.
type Orchestrator struct {
	provider ModelProvider
	store    conversation.Store
	guard    *guardrail.Validator
	catalog  catalog.Catalog
	cfg      Config
	validate *validator.Validate
	log      zerolog.Logger
}

// NewOrchestrator wires the orchestrator with its collaborators.
func NewOrchestrator(
	cfg Config,
	provider ModelProvider,
	store conversation.Store,
	guard *guardrail.Validator,
	cat catalog.Catalog,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		store:    store,
		guard:    guard,
		catalog:  cat,
		cfg:      cfg,
		validate: validator.New(),
		log:      log.With().Str("component", "orchestrator").Logger(),
	}
}

// Chat runs one conversational turn. The user message is recorded before
// the provider call; on provider failure the localized generic fallback is
// recorded as the assistant's turn so the stored history stays consistent
// with what the user saw.
func (o *Orchestrator) Chat(ctx context.Context, caller Caller, input ChatInput) (*ChatResult, error) {
	ctx, span := observability.StartSpan(ctx, serviceName, "Orchestrator.Chat")
	defer span.End()

	if err := o.validateInput(ctx, input); err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("chat", "rejected").Inc()
		return nil, err
	}

	locale := ResolveLocale(input.Locale, caller.Locale, o.cfg.SupportedLocales, o.cfg.DefaultLocale)
	observability.AddSpanAttributes(ctx,
		attribute.String("assistant.locale", locale),
		attribute.Bool("assistant.has_conversation_id", input.ConversationID != ""),
	)

	normalized, err := o.guard.Enforce(ctx, input.Message, "message")
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("chat", "rejected").Inc()
		observability.RecordError(ctx, err)
		return nil, err
	}

	state, err := o.store.Resolve(ctx, caller.ID, locale, input.ConversationID)
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("chat", "error").Inc()
		observability.RecordError(ctx, err)
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve conversation")
	}
	observability.AddSpanAttributes(ctx, attribute.String("conversation.id", state.ID))

	o.store.AppendMessage(state, conversation.Message{
		Role:    conversation.RoleUser,
		Content: normalized,
		Locale:  locale,
	})

	history := historyFromSnapshot(o.store.Snapshot(state))
	reply, err := o.callChat(ctx, ChatRequest{
		Locale:     locale,
		Message:    normalized,
		History:    history,
		IntentHint: input.IntentHint,
	})
	if err != nil {
		if cancelErr := contextError(ctx, err); cancelErr != nil {
			// The caller is gone; do not record a half-finished assistant turn.
			return nil, cancelErr
		}
		bundle := o.fallbackFor(locale)
		o.store.AppendMessage(state, conversation.Message{
			Role:    conversation.RoleAssistant,
			Content: bundle.Chat,
			Locale:  locale,
		})
		o.recordFallback(ctx, "chat", locale, err)
		return &ChatResult{
			Conversation: o.store.Snapshot(state),
			Reply:        bundle.Chat,
			Fallback:     true,
			Locale:       locale,
		}, nil
	}

	o.store.AppendMessage(state, conversation.Message{
		Role:    conversation.RoleAssistant,
		Content: reply.Reply,
		Locale:  locale,
		Intent:  reply.Intent,
	})
	o.store.PushIntent(state, reply.Intent)

	metrics.AssistantRequestsTotal.WithLabelValues("chat", "ok").Inc()
	return &ChatResult{
		Conversation: o.store.Snapshot(state),
		Reply:        reply.Reply,
		Intent:       reply.Intent,
		Fallback:     false,
		Locale:       locale,
	}, nil
}

// SuggestServices recommends services for the given context. Stateless: no
// conversation record is involved. On provider failure the suggestions are
// synthesized from the first page of the active service catalog.
func (o *Orchestrator) SuggestServices(ctx context.Context, caller Caller, input SuggestInput) (*SuggestionsResult, error) {
	ctx, span := observability.StartSpan(ctx, serviceName, "Orchestrator.SuggestServices")
	defer span.End()

	if err := o.validateInput(ctx, input); err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("suggest_services", "rejected").Inc()
		return nil, err
	}

	locale := ResolveLocale(input.Locale, caller.Locale, o.cfg.SupportedLocales, o.cfg.DefaultLocale)
	observability.AddSpanAttributes(ctx, attribute.String("assistant.locale", locale))

	normalized, err := o.guard.Enforce(ctx, input.Context, "context")
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("suggest_services", "rejected").Inc()
		observability.RecordError(ctx, err)
		return nil, err
	}

	reply, err := o.callSuggestServices(ctx, SuggestRequest{
		Locale:     locale,
		Context:    normalized,
		IntentHint: input.IntentHint,
	})
	if err != nil {
		if cancelErr := contextError(ctx, err); cancelErr != nil {
			return nil, cancelErr
		}
		suggestions := o.catalogSuggestions(ctx, locale)
		o.recordFallback(ctx, "suggest_services", locale, err)
		return &SuggestionsResult{
			Suggestions: suggestions,
			Intent:      IntentCatalogRecommendation,
			Fallback:    true,
			Locale:      locale,
			Message:     o.fallbackFor(locale).ServiceSuggestions,
		}, nil
	}

	metrics.AssistantRequestsTotal.WithLabelValues("suggest_services", "ok").Inc()
	return &SuggestionsResult{
		Suggestions: reply.Suggestions,
		Intent:      reply.Intent,
		Fallback:    false,
		Locale:      locale,
	}, nil
}

// AssistDocument answers a document-related prompt. Stateless. On provider
// failure the localized canned answer plus the configured default follow-up
// suggestions are returned.
func (o *Orchestrator) AssistDocument(ctx context.Context, caller Caller, input DocumentInput) (*DocumentAssistResult, error) {
	ctx, span := observability.StartSpan(ctx, serviceName, "Orchestrator.AssistDocument")
	defer span.End()

	if err := o.validateInput(ctx, input); err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("assist_document", "rejected").Inc()
		return nil, err
	}

	locale := ResolveLocale(input.Locale, caller.Locale, o.cfg.SupportedLocales, o.cfg.DefaultLocale)
	observability.AddSpanAttributes(ctx, attribute.String("assistant.locale", locale))

	normalized, err := o.guard.Enforce(ctx, input.Prompt, "prompt")
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("assist_document", "rejected").Inc()
		observability.RecordError(ctx, err)
		return nil, err
	}

	reply, err := o.callAssistDocument(ctx, DocumentRequest{Locale: locale, Prompt: normalized})
	if err != nil {
		if cancelErr := contextError(ctx, err); cancelErr != nil {
			return nil, cancelErr
		}
		o.recordFallback(ctx, "assist_document", locale, err)
		return &DocumentAssistResult{
			Answer:   o.fallbackFor(locale).DocumentAssist,
			FollowUp: append([]string(nil), o.cfg.DocumentFollowUps...),
			Fallback: true,
			Locale:   locale,
		}, nil
	}

	metrics.AssistantRequestsTotal.WithLabelValues("assist_document", "ok").Inc()
	return &DocumentAssistResult{
		Answer:   reply.Answer,
		FollowUp: reply.FollowUp,
		Intent:   reply.Intent,
		Fallback: false,
		Locale:   locale,
	}, nil
}

// Summarize is a thin, stateless delegation to the provider's document
// assistance call, bypassing the public document DTO. The guardrail does
// not run here; the only floor is the three-character minimum.
func (o *Orchestrator) Summarize(ctx context.Context, prompt, locale string) (*SummaryResult, error) {
	ctx, span := observability.StartSpan(ctx, serviceName, "Orchestrator.Summarize")
	defer span.End()

	if err := o.validateInput(ctx, summarizeInput{Prompt: prompt}); err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("summarize", "rejected").Inc()
		return nil, err
	}

	resolved := ResolveLocale(locale, "", o.cfg.SupportedLocales, o.cfg.DefaultLocale)
	observability.AddSpanAttributes(ctx, attribute.String("assistant.locale", resolved))

	reply, err := o.callAssistDocument(ctx, DocumentRequest{Locale: resolved, Prompt: prompt})
	if err != nil {
		if cancelErr := contextError(ctx, err); cancelErr != nil {
			return nil, cancelErr
		}
		o.recordFallback(ctx, "summarize", resolved, err)
		return &SummaryResult{Summary: o.fallbackFor(resolved).DocumentAssist, Locale: resolved}, nil
	}

	metrics.AssistantRequestsTotal.WithLabelValues("summarize", "ok").Inc()
	return &SummaryResult{Summary: reply.Answer, Locale: resolved}, nil
}

// ===============================================
// Provider invocation
// ===============================================

func (o *Orchestrator) callChat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.ProviderTimeout)
	defer cancel()

	start := time.Now()
	reply, err := o.provider.Chat(callCtx, req)
	o.observeProviderCall("chat", start, err)
	return reply, err
}

func (o *Orchestrator) callSuggestServices(ctx context.Context, req SuggestRequest) (*SuggestReply, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.ProviderTimeout)
	defer cancel()

	start := time.Now()
	reply, err := o.provider.SuggestServices(callCtx, req)
	o.observeProviderCall("suggest_services", start, err)
	return reply, err
}

func (o *Orchestrator) callAssistDocument(ctx context.Context, req DocumentRequest) (*DocumentReply, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.ProviderTimeout)
	defer cancel()

	start := time.Now()
	reply, err := o.provider.AssistDocument(callCtx, req)
	o.observeProviderCall("assist_document", start, err)
	return reply, err
}

func (o *Orchestrator) observeProviderCall(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		metrics.ProviderErrorsTotal.WithLabelValues(operation).Inc()
	}
	metrics.ProviderDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}

// ===============================================
// Fallback synthesis
// ===============================================

func (o *Orchestrator) fallbackFor(locale string) FallbackBundle {
	if bundle, ok := o.cfg.Fallbacks[locale]; ok && bundle != (FallbackBundle{}) {
		return bundle
	}
	return o.cfg.Fallbacks[o.cfg.DefaultLocale]
}

func (o *Orchestrator) recordFallback(ctx context.Context, operation, locale string, cause error) {
	o.log.Warn().
		Str("operation", operation).
		Str("locale", locale).
		Err(cause).
		Msg("provider unavailable, serving localized fallback")
	observability.AddSpanEvent(ctx, "fallback_served", attribute.String("operation", operation))
	metrics.FallbacksTotal.WithLabelValues(operation, locale).Inc()
	metrics.AssistantRequestsTotal.WithLabelValues(operation, "fallback").Inc()
}

// catalogSuggestions maps the first page of active catalog entries to
// suggestion items. A catalog failure degrades to an empty list; the
// fallback response must stay well-formed either way.
func (o *Orchestrator) catalogSuggestions(ctx context.Context, locale string) []Suggestion {
	page, err := o.catalog.ListActive(ctx, fallbackCatalogPage, fallbackCatalogLimit)
	if err != nil {
		o.log.Error().Err(err).Msg("catalog lookup failed during suggestion fallback")
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, len(page.Items))
	for _, entry := range page.Items {
		tr := entry.Localized(locale)
		suggestions = append(suggestions, Suggestion{
			Title:       tr.Name,
			Description: tr.Summary,
		})
	}
	return suggestions
}

// ===============================================
// Helpers
// ===============================================

func (o *Orchestrator) validateInput(ctx context.Context, input any) error {
	if err := o.validate.Struct(input); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"invalid request", err, "")
	}
	return nil
}

// contextError distinguishes caller-initiated cancellation from a provider
// failure: when the request context itself is done, the error propagates
// instead of triggering the fallback path.
func contextError(ctx context.Context, err error) error {
	if ctx.Err() == nil {
		return nil
	}
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
		"request cancelled", err, "")
}

func historyFromSnapshot(snap conversation.Snapshot) []Turn {
	history := make([]Turn, len(snap.Messages))
	for i, msg := range snap.Messages {
		history[i] = Turn{Role: msg.Role, Content: msg.Content}
	}
	return history
}
