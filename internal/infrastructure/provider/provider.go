package provider

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"assist-server/services/assistant-api/internal/config"
	"assist-server/services/assistant-api/internal/domain/assistant"
	"assist-server/services/assistant-api/internal/utils/platformerrors"
)

// New selects the model backend named in configuration. The choice is made
// once at startup and stays fixed for the process lifetime.
func New(cfg *config.Config, log zerolog.Logger) (assistant.ModelProvider, error) {
	switch cfg.Provider {
	case config.ProviderMock:
		return NewMockProvider(log), nil
	case config.ProviderOpenAI:
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		}, log), nil
	default:
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConfiguration,
			fmt.Sprintf("unknown model provider %q", cfg.Provider), nil, "")
	}
}
