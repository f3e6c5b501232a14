package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/production-scheduler/pkg/db"
)

// GetJob retrieves a job by id, returning db.ErrNotFound when it does not exist
func (d *DB) GetJob(ctx context.Context, jobID string) (*db.Job, error) {
	var job db.Job
	err := d.pool.QueryRow(ctx, `
		SELECT id, job_number, due_date, total_estimated_hours, priority_level, quantity
		FROM job
		WHERE id = $1
	`, jobID).Scan(&job.ID, &job.JobNumber, &job.DueDate, &job.TotalEstimatedHours, &job.PriorityLevel, &job.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", jobID, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query job: %w", err)
	}

	return &job, nil
}

// GetJobOperations retrieves a job's operations ordered by operation number
func (d *DB) GetJobOperations(ctx context.Context, jobID string) ([]db.JobOperation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, job_id, name, operation_number, estimated_hours, work_center_id, required_skills
		FROM job_operation
		WHERE job_id = $1
		ORDER BY operation_number, id
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query job operations: %w", err)
	}
	defer rows.Close()

	var ops []db.JobOperation
	for rows.Next() {
		var op db.JobOperation
		var workCenterID *string
		if err := rows.Scan(&op.ID, &op.JobID, &op.Name, &op.OperationNumber, &op.EstimatedHours, &workCenterID, &op.RequiredSkills); err != nil {
			return nil, fmt.Errorf("failed to scan job operation: %w", err)
		}
		if workCenterID != nil {
			op.WorkCenterID = *workCenterID
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job operations: %w", err)
	}

	return ops, nil
}

// GetLineItems retrieves a job's line items
func (d *DB) GetLineItems(ctx context.Context, jobID string) ([]db.LineItem, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, job_id, description, quantity
		FROM job_line_item
		WHERE job_id = $1
		ORDER BY id
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	var items []db.LineItem
	for rows.Next() {
		var item db.LineItem
		if err := rows.Scan(&item.ID, &item.JobID, &item.Description, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line items: %w", err)
	}

	return items, nil
}

// InsertJobOperations inserts operation records in a single transaction
func (d *DB) InsertJobOperations(ctx context.Context, ops []db.JobOperation) error {
	if len(ops) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, op := range ops {
		var workCenterID *string
		if op.WorkCenterID != "" {
			workCenterID = &op.WorkCenterID
		}
		skills := op.RequiredSkills
		if skills == nil {
			skills = []string{}
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO job_operation (id, job_id, name, operation_number, estimated_hours, work_center_id, required_skills)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, op.ID, op.JobID, op.Name, op.OperationNumber, op.EstimatedHours, workCenterID, skills)
		if err != nil {
			return fmt.Errorf("failed to insert job operation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
