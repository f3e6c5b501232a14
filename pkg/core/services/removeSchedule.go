package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/pkg/core/capacity"
	"github.com/jakechorley/production-scheduler/pkg/db"
)

// RemoveScheduleStore defines the database operations needed for removing a schedule
type RemoveScheduleStore interface {
	GetJob(ctx context.Context, jobID string) (*db.Job, error)
	DeleteSchedule(ctx context.Context, jobID string) (int64, error)
}

// RemoveSchedule deletes a job's persisted schedule, releasing its work
// centers, and returns the number of operations removed
func RemoveSchedule(ctx context.Context, database RemoveScheduleStore, provider capacity.Provider, logger *zap.Logger, jobID string) (int64, error) {
	if _, err := database.GetJob(ctx, jobID); err != nil {
		return 0, fmt.Errorf("failed to fetch job: %w", err)
	}

	removed, err := database.DeleteSchedule(ctx, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove schedule: %w", err)
	}

	if removed > 0 {
		invalidateCapacity(ctx, provider, logger)
	}

	logger.Info("Schedule removed", zap.String("job_id", jobID), zap.Int64("operations", removed))

	return removed, nil
}
