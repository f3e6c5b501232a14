package criteria

import (
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

// Blackout is a period during which a work center must not run new work
// (planned maintenance, stocktake). An empty WorkCenterID applies to all.
type Blackout struct {
	WorkCenterID string
	Start        time.Time
	End          time.Time
}

// BlackoutCriterion rejects placements that overlap a blackout on the work center
type BlackoutCriterion struct {
	blackouts []Blackout
}

// NewBlackoutCriterion creates a new BlackoutCriterion
func NewBlackoutCriterion(blackouts []Blackout) *BlackoutCriterion {
	return &BlackoutCriterion{blackouts: blackouts}
}

func (c *BlackoutCriterion) Name() string {
	return "Blackout"
}

func (c *BlackoutCriterion) IsWorkCenterValid(placement allocator.Placement, workCenter model.WorkCenterCapacity) bool {
	for _, b := range c.blackouts {
		if b.WorkCenterID != "" && b.WorkCenterID != workCenter.WorkCenterID {
			continue
		}
		if placement.Start.Before(b.End) && placement.End.After(b.Start) {
			return false
		}
	}
	return true
}
