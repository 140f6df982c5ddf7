//go:build wireinject

package main

import (
	"assist-server/services/assistant-api/internal/domain"
	"assist-server/services/assistant-api/internal/infrastructure"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
