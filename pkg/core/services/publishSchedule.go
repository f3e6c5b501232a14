package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/internal/config"
	"github.com/jakechorley/production-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/production-scheduler/pkg/db"
	"github.com/jakechorley/production-scheduler/pkg/utils/dates"
)

// PublishScheduleStore defines the database operations needed for publishing a schedule
type PublishScheduleStore interface {
	GetJob(ctx context.Context, jobID string) (*db.Job, error)
	GetSchedule(ctx context.Context, jobID string) ([]db.ScheduledOperation, error)
	GetWorkCenters(ctx context.Context) ([]db.WorkCenter, error)
}

// SchedulePublisher writes a schedule somewhere planners can see it
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, schedule *sheetsclient.PublishedSchedule) error
}

// Notifier sends a plain-text email
type Notifier interface {
	SendEmail(to, subject, body string) error
}

// PublishResult is the outcome of publishing a schedule
type PublishResult struct {
	Schedule *sheetsclient.PublishedSchedule
	Notified bool
}

// PublishSchedule writes a job's persisted schedule to the configured
// spreadsheet and, when a notify address is configured, emails the planner a
// summary. A failed email does not undo the publish; it is logged and
// reported through PublishResult.Notified.
func PublishSchedule(
	ctx context.Context,
	database PublishScheduleStore,
	publisher SchedulePublisher,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	jobID string,
) (*PublishResult, error) {
	logger.Debug("Starting publishSchedule", zap.String("job_id", jobID))

	if cfg.Publish.SpreadsheetID == "" {
		return nil, errors.New("publish.spreadsheetID is not configured")
	}

	job, err := database.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}

	ops, err := database.GetSchedule(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("job %s has no schedule to publish: %w", job.JobNumber, db.ErrNotFound)
	}

	centers, err := database.GetWorkCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work centers: %w", err)
	}

	schedule := buildPublishedSchedule(job, ops, centers)

	if err := publisher.PublishSchedule(cfg.Publish.SpreadsheetID, schedule); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published",
		zap.String("job_number", job.JobNumber),
		zap.String("tab", schedule.TabTitle()),
		zap.Int("operations", len(schedule.Rows)))

	result := &PublishResult{Schedule: schedule}

	if notifier == nil || cfg.Publish.NotifyEmail == "" {
		return result, nil
	}

	subject := fmt.Sprintf("Schedule published for job %s", job.JobNumber)
	if err := notifier.SendEmail(cfg.Publish.NotifyEmail, subject, scheduleSummary(schedule)); err != nil {
		logger.Warn("Failed to send schedule notification",
			zap.String("to", cfg.Publish.NotifyEmail),
			zap.Error(err))
		return result, nil
	}

	result.Notified = true
	return result, nil
}

func buildPublishedSchedule(job *db.Job, ops []db.ScheduledOperation, centers []db.WorkCenter) *sheetsclient.PublishedSchedule {
	names := make(map[string]string, len(centers))
	for _, wc := range centers {
		names[wc.ID] = wc.Name
	}

	schedule := &sheetsclient.PublishedSchedule{
		JobNumber: job.JobNumber,
		DueDate:   dates.FormatDay(job.DueDate),
		Rows:      make([]sheetsclient.PublishedScheduleRow, 0, len(ops)),
	}

	for i, op := range ops {
		workCenter := names[op.WorkCenterID]
		if workCenter == "" {
			workCenter = op.WorkCenterID
		}
		schedule.Rows = append(schedule.Rows, sheetsclient.PublishedScheduleRow{
			Step:       i + 1,
			Operation:  op.OperationName,
			WorkCenter: workCenter,
			Start:      op.ScheduledStart,
			End:        op.ScheduledEnd,
			Hours:      op.EstimatedHours,
		})
	}

	return schedule
}

func scheduleSummary(schedule *sheetsclient.PublishedSchedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job %s (due %s) has been scheduled:\n\n", schedule.JobNumber, schedule.DueDate)
	for _, row := range schedule.Rows {
		fmt.Fprintf(&b, "%d. %s on %s, %s to %s\n",
			row.Step,
			row.Operation,
			row.WorkCenter,
			row.Start.Format("Mon Jan 02 15:04"),
			row.End.Format("Mon Jan 02 15:04"))
	}
	return b.String()
}
