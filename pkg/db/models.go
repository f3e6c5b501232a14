package db

import (
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/utils/dates"
)

// WorkCenter represents a database work_center record
type WorkCenter struct {
	ID          string
	Name        string
	MaxCapacity int
	HourlyRate  *float64
	Skills      []string
	// RRule and ShiftHours describe the opening hours; an empty RRule means always open
	RRule      string
	ShiftHours float64
	Active     bool
}

// Job represents a database job record
type Job struct {
	ID                  string
	JobNumber           string
	DueDate             time.Time
	TotalEstimatedHours float64
	PriorityLevel       int
	Quantity            int
}

// JobOperation represents a database job_operation record
type JobOperation struct {
	ID              string
	JobID           string
	Name            string
	OperationNumber int
	EstimatedHours  float64
	WorkCenterID    string
	RequiredSkills  []string
}

// LineItem represents a database job_line_item record
type LineItem struct {
	ID          string
	JobID       string
	Description string
	Quantity    int
}

// ScheduledOperation represents a database scheduled_operation record
type ScheduledOperation struct {
	ID             string
	JobID          string
	OperationID    string
	OperationName  string
	WorkCenterID   string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	EstimatedHours float64
	CreatedAt      time.Time
}

// ToJobData converts a stored job and its operations into engine input
func (j Job) ToJobData(ops []JobOperation) model.JobData {
	operations := make([]model.Operation, 0, len(ops))
	for _, op := range ops {
		operations = append(operations, op.ToOperation())
	}

	return model.JobData{
		ID:                  j.ID,
		JobNumber:           j.JobNumber,
		DueDate:             dates.FormatDay(j.DueDate),
		TotalEstimatedHours: j.TotalEstimatedHours,
		Operations:          operations,
		PriorityLevel:       j.PriorityLevel,
		Quantity:            j.Quantity,
	}
}

// ToOperation converts a stored operation into engine input
func (o JobOperation) ToOperation() model.Operation {
	return model.Operation{
		ID:              o.ID,
		Name:            o.Name,
		OperationNumber: o.OperationNumber,
		EstimatedHours:  o.EstimatedHours,
		WorkCenterID:    o.WorkCenterID,
		RequiredSkills:  o.RequiredSkills,
	}
}

// ToLineItem converts a stored line item for operation derivation
func (l LineItem) ToLineItem() model.LineItem {
	return model.LineItem{Description: l.Description, Quantity: l.Quantity}
}
