package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"assist-server/services/assistant-api/internal/config"
	"assist-server/services/assistant-api/internal/domain/conversation"
	"assist-server/services/assistant-api/internal/infrastructure/logger"
	"assist-server/services/assistant-api/internal/utils/platformerrors"
)

const defaultSweepInterval = 1 // in minutes

// Crontab owns the background jobs of the service. The only job today is
// the idle-conversation sweep that enforces the retention TTL.
type Crontab struct {
	ctab  *crontab.Crontab
	store conversation.Store
	cfg   *config.Config
}

func NewCrontab(store conversation.Store, cfg *config.Config) *Crontab {
	return &Crontab{
		ctab:  crontab.New(),
		store: store,
		cfg:   cfg,
	}
}

// Run sweeps once at startup, schedules the recurring sweep, then blocks
// until the context is cancelled.
func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	c.sweepIdleConversations()

	interval := c.cfg.SweepIntervalMinutes
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	cronExpr := fmt.Sprintf("*/%d * * * *", interval)
	if err := c.ctab.AddJob(cronExpr, c.sweepIdleConversations); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to schedule conversation sweep")
	}
	log.Info().Msgf("Conversation sweep scheduled: every %d minute(s)", interval)

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) sweepIdleConversations() {
	log := logger.GetLogger()

	cutoff := time.Now().Add(-c.cfg.ConversationTTL)
	if evicted := c.store.EvictIdle(cutoff); evicted > 0 {
		log.Info().Int("evicted", evicted).Msg("evicted idle conversations")
	}
}
