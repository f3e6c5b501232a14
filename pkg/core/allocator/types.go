package allocator

import (
	"errors"
	"fmt"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

var (
	// ErrUnplaceableOperation is returned when no work center can accept an operation
	ErrUnplaceableOperation = errors.New("no available work center")

	// ErrInvalidInput is returned when the job or capacity snapshot is malformed
	ErrInvalidInput = errors.New("invalid scheduling input")
)

// UnplaceableOperationError names the operation that stopped the schedule
type UnplaceableOperationError struct {
	OperationID   string
	OperationName string
	Hours         float64

	// EarliestStart is the cursor time the operation was tried from
	EarliestStart time.Time
}

func (e *UnplaceableOperationError) Error() string {
	return fmt.Sprintf("no available work center for operation %q (%s, %.2fh) at or after %s",
		e.OperationName, e.OperationID, e.Hours, e.EarliestStart.Format(time.RFC3339))
}

// Unwrap lets callers match with errors.Is(err, ErrUnplaceableOperation)
func (e *UnplaceableOperationError) Unwrap() error {
	return ErrUnplaceableOperation
}

// Placement is a candidate binding of an operation to a time window
type Placement struct {
	Operation model.Operation
	Start     time.Time
	End       time.Time
}

// AssignmentRequest is the input to a Strategy
type AssignmentRequest struct {
	// Operations in execution order
	Operations []model.Operation

	// Capacity snapshot, in caller order (ties between work centers follow it)
	Capacity []model.WorkCenterCapacity

	// Start is the backward-planned start of the first operation
	Start time.Time

	// Earliest is the lower bound no operation may start before ("now")
	Earliest time.Time
}

// Strategy binds operations to work centers.
// GreedyLeastLoaded is the only implementation; an optimiser can replace it
// without changing Engine callers.
type Strategy interface {
	Name() string
	Assign(req AssignmentRequest) ([]model.WorkCenterAssignment, error)
}
