package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"assist-server/services/assistant-api/internal/config"
	"assist-server/services/assistant-api/internal/domain/assistant"
	"assist-server/services/assistant-api/internal/domain/catalog"
	"assist-server/services/assistant-api/internal/domain/conversation"
	"assist-server/services/assistant-api/internal/infrastructure/catalogstore"
	"assist-server/services/assistant-api/internal/infrastructure/convstore"
	"assist-server/services/assistant-api/internal/infrastructure/crontab"
	"assist-server/services/assistant-api/internal/infrastructure/logger"
	"assist-server/services/assistant-api/internal/infrastructure/provider"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideModelProvider selects the configured model backend.
func ProvideModelProvider(cfg *config.Config, log zerolog.Logger) (assistant.ModelProvider, error) {
	return provider.New(cfg, log)
}

// ProvideCatalog selects the configured catalog source.
func ProvideCatalog(cfg *config.Config, log zerolog.Logger) (catalog.Catalog, error) {
	return catalogstore.New(cfg, log)
}

// ProvideConversationStore builds the in-memory conversation store.
func ProvideConversationStore(cfg *config.Config) conversation.Store {
	return convstore.NewMemoryStore(convstore.Config{
		MaxContextMessages: cfg.MaxContextMessages,
	})
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Logger
	logger.GetLogger,

	// Model backend
	ProvideModelProvider,

	// Service catalog
	ProvideCatalog,

	// Conversation store
	ProvideConversationStore,

	// Crontab for conversation retention
	crontab.NewCrontab,
)
