package capacity

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/calendar"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/db"
)

// StoreProvider builds snapshots from the work center store
type StoreProvider struct {
	store     db.WorkCenterStore
	overrides map[string]calendar.Rule
	horizon   time.Duration
	clock     func() time.Time
}

// NewStoreProvider creates a StoreProvider. overrides replace the stored
// opening rule per work center; clock defaults to time.Now.
func NewStoreProvider(store db.WorkCenterStore, overrides map[string]calendar.Rule, horizon time.Duration, clock func() time.Time) *StoreProvider {
	if clock == nil {
		clock = time.Now
	}
	return &StoreProvider{
		store:     store,
		overrides: overrides,
		horizon:   horizon,
		clock:     clock,
	}
}

// GetCapacity loads work centers and bookings and expands their calendars
func (p *StoreProvider) GetCapacity(ctx context.Context) ([]model.WorkCenterCapacity, error) {
	now := p.clock()

	centers, err := p.store.GetWorkCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailed, err)
	}

	bookings, err := p.store.GetBookings(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailed, err)
	}

	snapshot, err := Build(now, p.horizon, centers, bookings, p.overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailed, err)
	}

	return snapshot, nil
}
