package commands

import (
	"github.com/jakechorley/production-scheduler/internal/config"
	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/allocator/criteria"
)

// NewEngine builds the scheduling engine from configuration
func NewEngine(cfg *config.Config) (*allocator.Engine, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var extra []allocator.Criterion
	if cfg.Engine.EnforceRequiredSkills {
		extra = append(extra, criteria.NewRequiredSkillsCriterion())
	}
	if blackouts := cfg.BlackoutWindows(); len(blackouts) > 0 {
		extra = append(extra, criteria.NewBlackoutCriterion(blackouts))
	}

	return allocator.NewEngine(allocator.EngineConfig{
		BufferRatio:     cfg.BufferRatio(),
		MinOperationGap: cfg.MinOperationGap(),
		Criteria:        extra,
		Location:        loc,
	}), nil
}
