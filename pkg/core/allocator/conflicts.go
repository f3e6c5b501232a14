package allocator

import (
	"fmt"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

// DefaultMinOperationGap is the smallest gap between consecutive operations
// that does not raise a timing warning
const DefaultMinOperationGap = 15 * time.Minute

// DetectConflicts runs the capacity and timing checks with the default gap
func DetectConflicts(assignments []model.WorkCenterAssignment, capacity []model.WorkCenterCapacity) []model.ConflictWarning {
	return detectConflicts(assignments, capacity, DefaultMinOperationGap)
}

func detectConflicts(assignments []model.WorkCenterAssignment, capacity []model.WorkCenterCapacity, minGap time.Duration) []model.ConflictWarning {
	conflicts := []model.ConflictWarning{}
	conflicts = append(conflicts, capacityConflicts(assignments, capacity)...)
	conflicts = append(conflicts, timingConflicts(assignments, minGap)...)
	return conflicts
}

// capacityConflicts flags each placement that takes a work center past its
// limit once this job's own earlier placements are counted
func capacityConflicts(assignments []model.WorkCenterAssignment, capacity []model.WorkCenterCapacity) []model.ConflictWarning {
	byID := make(map[string]model.WorkCenterCapacity, len(capacity))
	for _, wc := range capacity {
		if _, exists := byID[wc.WorkCenterID]; !exists {
			byID[wc.WorkCenterID] = wc
		}
	}

	var conflicts []model.ConflictWarning
	placed := make(map[string]int)

	for _, a := range assignments {
		wc, ok := byID[a.WorkCenterID]
		if !ok {
			continue
		}

		placed[a.WorkCenterID]++
		load := wc.CurrentLoad + placed[a.WorkCenterID]
		if load <= wc.MaxCapacity {
			continue
		}

		conflicts = append(conflicts, model.ConflictWarning{
			Type:                model.ConflictCapacity,
			Severity:            model.SeverityHigh,
			Message:             fmt.Sprintf("Work center %s would be over capacity (%d/%d)", displayName(wc), load, wc.MaxCapacity),
			AffectedOperations:  []string{a.OperationID},
			SuggestedResolution: "Split operations across other work centers or shift the timeline",
		})
	}

	return conflicts
}

// timingConflicts checks adjacent pairs only; assignments are chronological by construction
func timingConflicts(assignments []model.WorkCenterAssignment, minGap time.Duration) []model.ConflictWarning {
	var conflicts []model.ConflictWarning

	for i := 1; i < len(assignments); i++ {
		prev, next := assignments[i-1], assignments[i]
		gap := next.ScheduledStart.Sub(prev.ScheduledEnd)
		if gap >= minGap {
			continue
		}

		conflicts = append(conflicts, model.ConflictWarning{
			Type:                model.ConflictTiming,
			Severity:            model.SeverityMedium,
			Message:             fmt.Sprintf("Only %d minutes between %q and %q", int(gap.Minutes()), prev.OperationName, next.OperationName),
			AffectedOperations:  []string{prev.OperationID, next.OperationID},
			SuggestedResolution: fmt.Sprintf("Add at least %d minutes of buffer time between operations", int(minGap.Minutes())),
		})
	}

	return conflicts
}

// deadlineConflicts flags operations finishing after the deadline
func deadlineConflicts(assignments []model.WorkCenterAssignment, deadline time.Time) []model.ConflictWarning {
	var conflicts []model.ConflictWarning

	for _, a := range assignments {
		if !a.ScheduledEnd.After(deadline) {
			continue
		}
		conflicts = append(conflicts, model.ConflictWarning{
			Type:                model.ConflictTiming,
			Severity:            model.SeverityHigh,
			Message:             fmt.Sprintf("%q finishes %s after the due date", a.OperationName, a.ScheduledEnd.Sub(deadline).Round(time.Minute)),
			AffectedOperations:  []string{a.OperationID},
			SuggestedResolution: "Negotiate a later due date or free capacity on an earlier window",
		})
	}

	return conflicts
}

func displayName(wc model.WorkCenterCapacity) string {
	if wc.Name != "" {
		return wc.Name
	}
	return wc.WorkCenterID
}
