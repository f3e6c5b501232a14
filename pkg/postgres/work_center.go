package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/db"
)

// GetWorkCenters retrieves all work center records ordered by id
func (d *DB) GetWorkCenters(ctx context.Context) ([]db.WorkCenter, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, max_capacity, hourly_rate, skills, rrule, shift_hours, active
		FROM work_center
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query work centers: %w", err)
	}
	defer rows.Close()

	var centers []db.WorkCenter
	for rows.Next() {
		var wc db.WorkCenter
		if err := rows.Scan(&wc.ID, &wc.Name, &wc.MaxCapacity, &wc.HourlyRate, &wc.Skills, &wc.RRule, &wc.ShiftHours, &wc.Active); err != nil {
			return nil, fmt.Errorf("failed to scan work center: %w", err)
		}
		centers = append(centers, wc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work centers: %w", err)
	}

	return centers, nil
}

// GetBookings retrieves scheduled operations ending after from across all jobs
func (d *DB) GetBookings(ctx context.Context, from time.Time) ([]db.ScheduledOperation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, job_id, operation_id, operation_name, work_center_id,
		       scheduled_start, scheduled_end, estimated_hours, created_at
		FROM scheduled_operation
		WHERE scheduled_end > $1
		ORDER BY work_center_id, scheduled_start
	`, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	return scanScheduledOperations(rows)
}
