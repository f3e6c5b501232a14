package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/production-scheduler/pkg/db"
)

// GetSchedule retrieves a job's scheduled operations in start order
func (d *DB) GetSchedule(ctx context.Context, jobID string) ([]db.ScheduledOperation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, job_id, operation_id, operation_name, work_center_id,
		       scheduled_start, scheduled_end, estimated_hours, created_at
		FROM scheduled_operation
		WHERE job_id = $1
		ORDER BY scheduled_start, operation_id
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer rows.Close()

	return scanScheduledOperations(rows)
}

// ReplaceSchedule deletes a job's existing schedule and inserts ops in one
// transaction. Each target work center row is locked and its load re-counted
// first; if another job filled it since the snapshot the whole replacement is
// rolled back with db.ErrCapacityChanged.
func (d *DB) ReplaceSchedule(ctx context.Context, jobID string, ops []db.ScheduledOperation) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM scheduled_operation WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("failed to delete existing schedule: %w", err)
	}

	for _, workCenterID := range distinctWorkCenters(ops) {
		if err := checkWorkCenterLoad(ctx, tx, workCenterID, jobID); err != nil {
			return err
		}
	}

	rows := make([][]any, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, []any{
			op.ID, jobID, op.OperationID, op.OperationName, op.WorkCenterID,
			op.ScheduledStart, op.ScheduledEnd, op.EstimatedHours,
		})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"scheduled_operation"},
		[]string{"id", "job_id", "operation_id", "operation_name", "work_center_id", "scheduled_start", "scheduled_end", "estimated_hours"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert scheduled operations: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteSchedule removes a job's scheduled operations and returns how many were removed
func (d *DB) DeleteSchedule(ctx context.Context, jobID string) (int64, error) {
	tag, err := d.pool.Exec(ctx, `DELETE FROM scheduled_operation WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete schedule: %w", err)
	}
	return tag.RowsAffected(), nil
}

// checkWorkCenterLoad locks the work center row and counts the other jobs with
// unfinished operations on it
func checkWorkCenterLoad(ctx context.Context, tx pgx.Tx, workCenterID, jobID string) error {
	var maxCapacity int
	err := tx.QueryRow(ctx, `SELECT max_capacity FROM work_center WHERE id = $1 FOR UPDATE`, workCenterID).Scan(&maxCapacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("work center %s: %w", workCenterID, db.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock work center %s: %w", workCenterID, err)
	}

	var load int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(DISTINCT job_id)
		FROM scheduled_operation
		WHERE work_center_id = $1 AND job_id <> $2 AND scheduled_end > NOW()
	`, workCenterID, jobID).Scan(&load)
	if err != nil {
		return fmt.Errorf("failed to count load on work center %s: %w", workCenterID, err)
	}

	if load >= maxCapacity {
		return fmt.Errorf("%w: work center %s is at %d/%d", db.ErrCapacityChanged, workCenterID, load, maxCapacity)
	}

	return nil
}

// distinctWorkCenters returns the sorted work center ids so locks are always
// taken in the same order
func distinctWorkCenters(ops []db.ScheduledOperation) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, op := range ops {
		if !seen[op.WorkCenterID] {
			seen[op.WorkCenterID] = true
			ids = append(ids, op.WorkCenterID)
		}
	}
	sort.Strings(ids)
	return ids
}

func scanScheduledOperations(rows pgx.Rows) ([]db.ScheduledOperation, error) {
	var ops []db.ScheduledOperation
	for rows.Next() {
		var op db.ScheduledOperation
		if err := rows.Scan(&op.ID, &op.JobID, &op.OperationID, &op.OperationName, &op.WorkCenterID,
			&op.ScheduledStart, &op.ScheduledEnd, &op.EstimatedHours, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled operation: %w", err)
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scheduled operations: %w", err)
	}

	return ops, nil
}
