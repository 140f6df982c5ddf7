package domain

import (
	"github.com/google/wire"

	"assist-server/services/assistant-api/internal/config"
	"assist-server/services/assistant-api/internal/domain/assistant"
	"assist-server/services/assistant-api/internal/domain/guardrail"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Guardrail
	ProvideGuardrailPolicy,
	guardrail.NewValidator,

	// Orchestrator
	ProvideOrchestratorConfig,
	assistant.NewOrchestrator,
)

func ProvideGuardrailPolicy(cfg *config.Config) guardrail.Policy {
	return guardrail.Policy{
		BlockedPhrases:  cfg.BlockedPhrases,
		MaxPromptLength: cfg.MaxPromptLength,
	}
}

func ProvideOrchestratorConfig(cfg *config.Config) assistant.Config {
	fallbacks := make(map[string]assistant.FallbackBundle, len(cfg.LocaleBundles))
	for locale, bundle := range cfg.LocaleBundles {
		fallbacks[locale] = assistant.FallbackBundle{
			Chat:               bundle.Chat,
			ServiceSuggestions: bundle.ServiceSuggestions,
			DocumentAssist:     bundle.DocumentAssist,
		}
	}
	return assistant.Config{
		DefaultLocale:     cfg.DefaultLocale,
		SupportedLocales:  cfg.SupportedLocales,
		Fallbacks:         fallbacks,
		DocumentFollowUps: cfg.DocumentFollowUps,
		ProviderTimeout:   cfg.ProviderTimeout,
	}
}
