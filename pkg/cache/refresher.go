package cache

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher rebuilds the cached capacity snapshot on a cron schedule so
// scheduling calls rarely pay for a calendar expansion.
type Refresher struct {
	cron   *cron.Cron
	cache  *CapacityCache
	spec   string
	logger *zap.Logger
}

// NewRefresher creates a Refresher firing on spec, e.g. "@every 5m"
func NewRefresher(cache *CapacityCache, spec string, logger *zap.Logger) *Refresher {
	return &Refresher{
		cron:   cron.New(),
		cache:  cache,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the refresh job, warms the cache once and then starts the
// scheduler. Every refresh runs under the cron scheduler, so Stop waits for all of them.
func (r *Refresher) Start(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.spec, func() { r.refresh(ctx) }); err != nil {
		return fmt.Errorf("invalid cache refresh spec %q: %w", r.spec, err)
	}

	r.refresh(ctx)

	r.cron.Start()
	r.logger.Info("Capacity cache refresher started", zap.String("spec", r.spec))

	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("Capacity cache refresher stopped")
}

func (r *Refresher) refresh(ctx context.Context) {
	snapshot, err := r.cache.Refresh(ctx)
	if err != nil {
		r.logger.Warn("Capacity cache refresh failed", zap.Error(err))
		return
	}
	r.logger.Debug("Capacity cache refreshed", zap.Int("work_centers", len(snapshot)))
}
