// Package capacity supplies work-center capacity snapshots to the scheduling engine.
package capacity

import (
	"context"
	"errors"
	"slices"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

// ErrProviderFailed wraps every failure to produce a capacity snapshot
var ErrProviderFailed = errors.New("capacity provider failed")

// Provider produces the capacity snapshot a scheduling call runs against
type Provider interface {
	GetCapacity(ctx context.Context) ([]model.WorkCenterCapacity, error)
}

// Invalidator is implemented by providers that cache snapshots
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Static returns a fixed, caller-supplied snapshot
type Static struct {
	snapshot []model.WorkCenterCapacity
}

// NewStatic creates a Static provider
func NewStatic(snapshot []model.WorkCenterCapacity) *Static {
	return &Static{snapshot: snapshot}
}

// GetCapacity returns a copy of the snapshot so callers cannot mutate it
func (s *Static) GetCapacity(ctx context.Context) ([]model.WorkCenterCapacity, error) {
	return Clone(s.snapshot), nil
}

// Clone deep-copies a snapshot
func Clone(snapshot []model.WorkCenterCapacity) []model.WorkCenterCapacity {
	out := make([]model.WorkCenterCapacity, len(snapshot))
	for i, wc := range snapshot {
		wc.Skills = slices.Clone(wc.Skills)
		wc.TimeSlots = slices.Clone(wc.TimeSlots)
		for j := range wc.TimeSlots {
			wc.TimeSlots[j].JobIDs = slices.Clone(wc.TimeSlots[j].JobIDs)
		}
		if wc.HourlyRate != nil {
			rate := *wc.HourlyRate
			wc.HourlyRate = &rate
		}
		out[i] = wc
	}
	return out
}
