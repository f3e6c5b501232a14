package db

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrCapacityChanged is returned when a work center filled up between the
	// capacity snapshot and the reservation
	ErrCapacityChanged = errors.New("work center capacity changed since snapshot")
)

// JobStore defines the interface for job database operations
type JobStore interface {
	GetJob(ctx context.Context, jobID string) (*Job, error)
	GetJobOperations(ctx context.Context, jobID string) ([]JobOperation, error)
	GetLineItems(ctx context.Context, jobID string) ([]LineItem, error)
	InsertJobOperations(ctx context.Context, ops []JobOperation) error
}

// ScheduleStore defines the interface for scheduled operation database operations
type ScheduleStore interface {
	GetSchedule(ctx context.Context, jobID string) ([]ScheduledOperation, error)
	// ReplaceSchedule atomically swaps a job's schedule, failing with
	// ErrCapacityChanged if any target work center is now full
	ReplaceSchedule(ctx context.Context, jobID string, ops []ScheduledOperation) error
	DeleteSchedule(ctx context.Context, jobID string) (int64, error)
}

// WorkCenterStore defines the interface for work center database operations
type WorkCenterStore interface {
	GetWorkCenters(ctx context.Context) ([]WorkCenter, error)
	// GetBookings returns scheduled operations ending after from
	GetBookings(ctx context.Context, from time.Time) ([]ScheduledOperation, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	JobStore
	ScheduleStore
	WorkCenterStore
}
