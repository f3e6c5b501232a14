package allocator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/utils/dates"
)

var validate = validator.New()

// MaxPlanningHours bounds operation hours and the backward-planned lead time
// (ten years of continuous work), well inside time.Duration's range
const MaxPlanningHours = 10 * 365 * 24

// ValidateJob checks a scheduling request before any planning happens
func ValidateJob(job model.JobData, loc *time.Location) error {
	if err := validate.Struct(job); err != nil {
		return fmt.Errorf("%w: job %q: %v", ErrInvalidInput, job.JobNumber, err)
	}

	if _, err := dates.ParseLocalDateStrict(job.DueDate, loc); err != nil {
		return fmt.Errorf("%w: job %q: %v", ErrInvalidInput, job.JobNumber, err)
	}

	if job.TotalEstimatedHours > MaxPlanningHours {
		return fmt.Errorf("%w: job %q: total estimated hours %g exceed %d", ErrInvalidInput, job.JobNumber, job.TotalEstimatedHours, MaxPlanningHours)
	}

	seen := make(map[string]bool, len(job.Operations))
	for _, op := range job.Operations {
		if op.EstimatedHours > MaxPlanningHours {
			return fmt.Errorf("%w: job %q: operation %q: %g hours exceed %d", ErrInvalidInput, job.JobNumber, op.Name, op.EstimatedHours, MaxPlanningHours)
		}
		if dates.HoursToDuration(op.EstimatedHours) <= 0 {
			return fmt.Errorf("%w: job %q: operation %q: %g hours is shorter than one second", ErrInvalidInput, job.JobNumber, op.Name, op.EstimatedHours)
		}

		// Operations without an id are reported as temp-<number>, so those must be unique too
		id := op.EffectiveID()
		if seen[id] {
			return fmt.Errorf("%w: job %q: duplicate operation id %q", ErrInvalidInput, job.JobNumber, id)
		}
		seen[id] = true
	}

	return nil
}

// validateLeadTime rejects jobs whose backward-planned lead time, buffer
// included, exceeds MaxPlanningHours
func validateLeadTime(job model.JobData, bufferRatio float64) error {
	if lead := TotalHours(job) * (1 + bufferRatio); lead > MaxPlanningHours {
		return fmt.Errorf("%w: job %q: lead time of %g hours exceeds %d", ErrInvalidInput, job.JobNumber, lead, MaxPlanningHours)
	}
	return nil
}

// ValidateCapacity checks a work-center snapshot
func ValidateCapacity(capacity []model.WorkCenterCapacity) error {
	for i, wc := range capacity {
		if err := validate.Struct(wc); err != nil {
			return fmt.Errorf("%w: capacity[%d]: %v", ErrInvalidInput, i, err)
		}
		for j, slot := range wc.TimeSlots {
			if !slot.End.After(slot.Start) {
				return fmt.Errorf("%w: capacity[%d].timeSlots[%d]: end must be after start", ErrInvalidInput, i, j)
			}
		}
	}
	return nil
}
