package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/capacity"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/core/operations"
)

// PreviewRequest is an ad-hoc scheduling request that is never persisted
type PreviewRequest struct {
	Job model.JobData `json:"job"`
	// LineItems are used to derive operations when Job has none
	LineItems []model.LineItem `json:"lineItems,omitempty"`
	// Capacity replaces the provider snapshot when set
	Capacity []model.WorkCenterCapacity `json:"capacity,omitempty"`
}

// PreviewSchedule generates a suggestion without touching the database
func PreviewSchedule(
	ctx context.Context,
	provider capacity.Provider,
	engine *allocator.Engine,
	logger *zap.Logger,
	req PreviewRequest,
) (*model.SchedulingSuggestion, error) {
	logger.Debug("Starting previewSchedule", zap.String("job_number", req.Job.JobNumber))

	job := req.Job
	if len(job.Operations) == 0 && len(req.LineItems) > 0 {
		job.Operations = operations.Derive(req.LineItems, job.Quantity)
		logger.Debug("Derived operations for preview", zap.Int("operations", len(job.Operations)))
	}

	source := provider
	if req.Capacity != nil {
		source = capacity.NewStatic(req.Capacity)
	}

	snapshot, err := source.GetCapacity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch capacity: %w", err)
	}

	suggestion, err := engine.GenerateSuggestion(job, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule preview: %w", err)
	}

	logger.Info("Schedule preview generated",
		zap.String("job_number", job.JobNumber),
		zap.Int("assignments", len(suggestion.Assignments)),
		zap.Int("confidence", suggestion.ConfidenceScore))

	return suggestion, nil
}
