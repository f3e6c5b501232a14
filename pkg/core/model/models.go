// Package model defines the value objects exchanged with the scheduling engine.
// All of them are request scoped: built fresh for a scheduling call and never
// mutated once the call returns.
package model

import (
	"fmt"
	"time"
)

// ConflictType classifies a ConflictWarning
type ConflictType string

const (
	ConflictCapacity   ConflictType = "capacity"
	ConflictTiming     ConflictType = "timing"
	ConflictResource   ConflictType = "resource"
	ConflictDependency ConflictType = "dependency"
)

// Severity of a ConflictWarning
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// JobData is a scheduling request
type JobData struct {
	// ID is assigned by the persistence layer (empty for previews)
	ID string `json:"id,omitempty"`

	JobNumber string `json:"jobNumber" validate:"required"`

	// DueDate is a calendar day ("2006-01-02") in the caller's location
	DueDate string `json:"dueDate" validate:"required"`

	// TotalEstimatedHours drives backward planning of the start date.
	// When zero the sum of operation hours is used instead.
	TotalEstimatedHours float64 `json:"totalEstimatedDuration" validate:"gte=0"`

	Operations    []Operation `json:"operations" validate:"dive"`
	PriorityLevel int         `json:"priorityLevel" validate:"min=1,max=5"`
	Quantity      int         `json:"quantity" validate:"gte=0"`
}

// Operation is one ordered unit of work within a job
type Operation struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	OperationNumber int      `json:"operationNumber"`
	EstimatedHours  float64  `json:"estimatedHours" validate:"gt=0"`
	WorkCenterID    string   `json:"workCenterId,omitempty"`
	RequiredSkills  []string `json:"requiredSkills,omitempty"`
}

// EffectiveID returns the operation id, synthesising temp-{operationNumber} when absent
func (o Operation) EffectiveID() string {
	if o.ID != "" {
		return o.ID
	}
	return fmt.Sprintf("temp-%d", o.OperationNumber)
}

// WorkCenterCapacity is a schedulable resource snapshot
type WorkCenterCapacity struct {
	WorkCenterID string `json:"workCenterId" validate:"required"`
	Name         string `json:"name"`

	// MaxCapacity is the number of jobs the work center can run concurrently
	MaxCapacity int `json:"maxCapacity" validate:"min=1"`

	// CurrentLoad is the number of jobs already committed, may exceed MaxCapacity
	CurrentLoad int `json:"currentLoad" validate:"gte=0"`

	HourlyRate *float64   `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	Skills     []string   `json:"skills,omitempty"`
	TimeSlots  []TimeSlot `json:"timeSlots" validate:"dive"`
}

// HasSpareCapacity reports whether the snapshot load is below the limit
func (w WorkCenterCapacity) HasSpareCapacity() bool {
	return w.CurrentLoad < w.MaxCapacity
}

// TimeSlot is a half-open window [Start, End) during which a work center is open
type TimeSlot struct {
	WorkCenterID string    `json:"workCenterId"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Available    bool      `json:"available"`
	JobIDs       []string  `json:"jobIds,omitempty"`
}

// Contains reports whether [start, end) lies entirely inside the slot
func (s TimeSlot) Contains(start, end time.Time) bool {
	return !start.Before(s.Start) && !end.After(s.End)
}

// Duration of the slot
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// WorkCenterAssignment binds one operation to one work center at a specific time
type WorkCenterAssignment struct {
	OperationID    string    `json:"operationId"`
	OperationName  string    `json:"operationName"`
	WorkCenterID   string    `json:"workCenterId"`
	WorkCenterName string    `json:"workCenterName"`
	ScheduledStart time.Time `json:"scheduledStart"`
	ScheduledEnd   time.Time `json:"scheduledEnd"`
	EstimatedHours float64   `json:"estimatedHours"`
}

// ConflictWarning is an advisory problem attached to a still-valid suggestion
type ConflictWarning struct {
	Type                ConflictType `json:"type"`
	Severity            Severity     `json:"severity"`
	Message             string       `json:"message"`
	AffectedOperations  []string     `json:"affectedOperations"`
	SuggestedResolution string       `json:"suggestedResolution,omitempty"`
}

// SchedulingSuggestion is the result of a scheduling call
type SchedulingSuggestion struct {
	JobNumber          string                 `json:"jobNumber"`
	SuggestedStartDate time.Time              `json:"suggestedStartDate"`
	SuggestedEndDate   time.Time              `json:"suggestedEndDate"`
	Assignments        []WorkCenterAssignment `json:"workCenterAssignments"`
	Conflicts          []ConflictWarning      `json:"conflictWarnings"`
	OptimizationNotes  []string               `json:"optimizationNotes"`
	ConfidenceScore    int                    `json:"confidenceScore"`
	EstimatedCost      *float64               `json:"estimatedCost,omitempty"`
}

// LineItem is an unstructured quote/order line used to derive operations
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity,omitempty"`
}
