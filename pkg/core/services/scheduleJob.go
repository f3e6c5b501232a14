package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/capacity"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/core/operations"
	"github.com/jakechorley/production-scheduler/pkg/db"
)

// ScheduleJobStore defines the database operations needed for scheduling a job
type ScheduleJobStore interface {
	db.JobStore
	db.ScheduleStore
}

// ScheduleResult is the outcome of scheduling a stored job
type ScheduleResult struct {
	JobID      string
	Suggestion *model.SchedulingSuggestion
	// DerivedOperations is true when the job had no routing and operations
	// were derived from its line items
	DerivedOperations bool
}

// ScheduleJob schedules a stored job against current capacity and persists
// the assignments, replacing any earlier schedule for the job.
//
// Jobs without operations get them derived from their line items first; the
// derived operations are stored so later runs reuse them.
func ScheduleJob(
	ctx context.Context,
	database ScheduleJobStore,
	provider capacity.Provider,
	engine *allocator.Engine,
	logger *zap.Logger,
	jobID string,
) (*ScheduleResult, error) {
	logger.Debug("Starting scheduleJob", zap.String("job_id", jobID))

	job, err := database.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}

	ops, derived, err := loadOrDeriveOperations(ctx, database, logger, job)
	if err != nil {
		return nil, err
	}

	snapshot, err := provider.GetCapacity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch capacity: %w", err)
	}

	existing, err := database.GetSchedule(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing schedule: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Rescheduling job, existing schedule will be replaced",
			zap.String("job_id", jobID),
			zap.Int("existing_operations", len(existing)))
		snapshot = capacity.ExcludeJob(snapshot, jobID, existing, engine.Now())
	}

	suggestion, err := engine.GenerateSuggestion(job.ToJobData(ops), snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule for job %s: %w", job.JobNumber, err)
	}

	logger.Debug("Schedule generated",
		zap.String("job_number", job.JobNumber),
		zap.Int("assignments", len(suggestion.Assignments)),
		zap.Int("conflicts", len(suggestion.Conflicts)),
		zap.Int("confidence", suggestion.ConfidenceScore))

	if err := database.ReplaceSchedule(ctx, jobID, toScheduledOperations(jobID, suggestion.Assignments)); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	invalidateCapacity(ctx, provider, logger)

	logger.Info("Job scheduled",
		zap.String("job_id", jobID),
		zap.String("job_number", job.JobNumber),
		zap.Time("start", suggestion.SuggestedStartDate),
		zap.Time("end", suggestion.SuggestedEndDate))

	return &ScheduleResult{
		JobID:             jobID,
		Suggestion:        suggestion,
		DerivedOperations: derived,
	}, nil
}

// loadOrDeriveOperations returns the job's stored operations, deriving and
// storing them from line items when there are none
func loadOrDeriveOperations(ctx context.Context, database db.JobStore, logger *zap.Logger, job *db.Job) ([]db.JobOperation, bool, error) {
	ops, err := database.GetJobOperations(ctx, job.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch job operations: %w", err)
	}
	if len(ops) > 0 {
		return ops, false, nil
	}

	items, err := database.GetLineItems(ctx, job.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch line items: %w", err)
	}
	if len(items) == 0 {
		logger.Warn("Job has no operations or line items", zap.String("job_id", job.ID))
		return nil, false, nil
	}

	lineItems := make([]model.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, item.ToLineItem())
	}

	derived := operations.Derive(lineItems, job.Quantity)
	ops = make([]db.JobOperation, 0, len(derived))
	for _, op := range derived {
		ops = append(ops, db.JobOperation{
			ID:              uuid.New().String(),
			JobID:           job.ID,
			Name:            op.Name,
			OperationNumber: op.OperationNumber,
			EstimatedHours:  op.EstimatedHours,
		})
	}

	if err := database.InsertJobOperations(ctx, ops); err != nil {
		return nil, false, fmt.Errorf("failed to save derived operations: %w", err)
	}

	logger.Info("Derived operations from line items",
		zap.String("job_id", job.ID),
		zap.Int("line_items", len(items)),
		zap.Int("operations", len(ops)))

	return ops, true, nil
}

func toScheduledOperations(jobID string, assignments []model.WorkCenterAssignment) []db.ScheduledOperation {
	records := make([]db.ScheduledOperation, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, db.ScheduledOperation{
			ID:             uuid.New().String(),
			JobID:          jobID,
			OperationID:    a.OperationID,
			OperationName:  a.OperationName,
			WorkCenterID:   a.WorkCenterID,
			ScheduledStart: a.ScheduledStart,
			ScheduledEnd:   a.ScheduledEnd,
			EstimatedHours: a.EstimatedHours,
		})
	}
	return records
}

// invalidateCapacity drops cached snapshots after the bookings changed.
// Failures are logged only; the cache TTL bounds the staleness.
func invalidateCapacity(ctx context.Context, provider capacity.Provider, logger *zap.Logger) {
	invalidator, ok := provider.(capacity.Invalidator)
	if !ok {
		return
	}
	if err := invalidator.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate capacity cache", zap.Error(err))
	}
}
