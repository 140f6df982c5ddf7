package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"assist-server/services/assistant-api/internal/config"
	"assist-server/services/assistant-api/internal/domain/assistant"
	"assist-server/services/assistant-api/internal/infrastructure/crontab"
	"assist-server/services/assistant-api/internal/infrastructure/logger"
	"assist-server/services/assistant-api/internal/infrastructure/observability"
)

const metricsShutdownTimeout = 5 * time.Second

// Application bundles the long-running pieces of the service. The
// orchestrator is the embedding surface; callers (gRPC or HTTP layers in a
// sibling service) consume it directly.
type Application struct {
	Orchestrator *assistant.Orchestrator
	Crontab      *crontab.Crontab
	Config       *config.Config
}

func (application *Application) Start(ctx context.Context) error {
	log := logger.GetLogger()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", application.Config.MetricsPort),
		Handler: promhttp.Handler(),
	}

	var eg errgroup.Group
	eg.Go(func() error {
		log.Info().Int("port", application.Config.MetricsPort).Msg("metrics listener started")
		err := metricsServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			cancel()
			return err
		}
		return nil
	})
	eg.Go(func() error {
		err := application.Crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer shutdownCancel()
		return metricsServer.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func main() {
	log := logger.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	otelShutdown, err := observability.Setup(ctx, application.Config, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	if err := application.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("application stopped")
	}
}
