package allocator

import (
	"math"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/utils/dates"
)

// EngineConfig contains the configuration for creating a new Engine
type EngineConfig struct {
	// BufferRatio is the safety margin for backward planning (0.2 = 20%)
	BufferRatio float64

	// MinOperationGap below which adjacent operations raise a timing warning
	MinOperationGap time.Duration

	// Strategy binds operations to work centers (GreedyLeastLoaded by default)
	Strategy Strategy

	// Criteria are extra vetoes for the default strategy; ignored when Strategy is set
	Criteria []Criterion

	// Clock returns "now" (time.Now by default)
	Clock func() time.Time

	// Location due dates are interpreted in (time.Local by default)
	Location *time.Location
}

// Engine generates scheduling suggestions. It keeps no state between calls
// and is safe for concurrent use.
type Engine struct {
	bufferRatio float64
	minGap      time.Duration
	strategy    Strategy
	clock       func() time.Time
	loc         *time.Location
}

// NewEngine creates an Engine, filling in defaults for unset fields
func NewEngine(config EngineConfig) *Engine {
	e := &Engine{
		bufferRatio: config.BufferRatio,
		minGap:      config.MinOperationGap,
		strategy:    config.Strategy,
		clock:       config.Clock,
		loc:         config.Location,
	}

	if e.bufferRatio <= 0 {
		e.bufferRatio = DefaultBufferRatio
	}
	if e.minGap <= 0 {
		e.minGap = DefaultMinOperationGap
	}
	if e.strategy == nil {
		e.strategy = NewGreedyLeastLoaded(config.Criteria...)
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.loc == nil {
		e.loc = time.Local
	}

	return e
}

// Location returns the location due dates are interpreted in
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Now returns the engine clock in its location
func (e *Engine) Now() time.Time {
	return e.clock().In(e.loc)
}

// GenerateSuggestion schedules a job against a capacity snapshot.
//
// It fails with ErrInvalidInput for malformed input and with an
// *UnplaceableOperationError when some operation cannot be placed; conflicts
// never fail the call.
func (e *Engine) GenerateSuggestion(job model.JobData, capacity []model.WorkCenterCapacity) (*model.SchedulingSuggestion, error) {
	if err := ValidateJob(job, e.loc); err != nil {
		return nil, err
	}
	if err := validateLeadTime(job, e.bufferRatio); err != nil {
		return nil, err
	}
	if err := ValidateCapacity(capacity); err != nil {
		return nil, err
	}

	now := e.Now()
	due, _ := dates.ParseLocalDateStrict(job.DueDate, e.loc)
	deadline := dates.EndOfDay(due)

	start := OptimalStartDate(due, TotalHours(job), e.bufferRatio, now)

	assignments, err := e.strategy.Assign(AssignmentRequest{
		Operations: SortOperations(job.Operations),
		Capacity:   capacity,
		Start:      start,
		Earliest:   now,
	})
	if err != nil {
		return nil, err
	}

	conflicts := detectConflicts(assignments, capacity, e.minGap)
	conflicts = append(conflicts, deadlineConflicts(assignments, deadline)...)

	suggestion := &model.SchedulingSuggestion{
		JobNumber:          job.JobNumber,
		SuggestedStartDate: start,
		SuggestedEndDate:   start,
		Assignments:        assignments,
		Conflicts:          conflicts,
		OptimizationNotes:  OptimizationNotes(assignments, conflicts, job, now),
		ConfidenceScore:    ConfidenceScore(conflicts, assignments, deadline),
		EstimatedCost:      EstimatedCost(assignments, capacity),
	}

	if len(assignments) > 0 {
		suggestion.SuggestedStartDate = assignments[0].ScheduledStart
		suggestion.SuggestedEndDate = assignments[0].ScheduledEnd
		for _, a := range assignments[1:] {
			if a.ScheduledEnd.After(suggestion.SuggestedEndDate) {
				suggestion.SuggestedEndDate = a.ScheduledEnd
			}
		}
	}

	return suggestion, nil
}

// EstimatedCost is Σ hours × hourly rate, or nil when any assigned work center
// has no rate
func EstimatedCost(assignments []model.WorkCenterAssignment, capacity []model.WorkCenterCapacity) *float64 {
	if len(assignments) == 0 {
		return nil
	}

	rates := make(map[string]*float64, len(capacity))
	for _, wc := range capacity {
		if _, exists := rates[wc.WorkCenterID]; !exists {
			rates[wc.WorkCenterID] = wc.HourlyRate
		}
	}

	total := 0.0
	for _, a := range assignments {
		rate := rates[a.WorkCenterID]
		if rate == nil {
			return nil
		}
		total += a.EstimatedHours * *rate
	}

	cost := math.Round(total*100) / 100
	return &cost
}
