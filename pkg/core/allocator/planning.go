package allocator

import (
	"sort"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/utils/dates"
)

// DefaultBufferRatio is the safety margin added to the total duration when
// planning backward from the due date
const DefaultBufferRatio = 0.20

// OptimalStartDate plans backward from the due date:
// due - totalHours - bufferRatio*totalHours, clamped so it is never before now.
func OptimalStartDate(due time.Time, totalHours, bufferRatio float64, now time.Time) time.Time {
	lead := dates.HoursToDuration(totalHours * (1 + bufferRatio))
	start := due.Add(-lead)
	if start.Before(now) {
		return now
	}
	return start
}

// SortOperations returns the operations ordered by operation number.
// Ties keep their input order.
func SortOperations(ops []model.Operation) []model.Operation {
	sorted := make([]model.Operation, len(ops))
	copy(sorted, ops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OperationNumber < sorted[j].OperationNumber
	})
	return sorted
}

// TotalHours returns the job's declared duration, or the sum of its
// operations when none was declared
func TotalHours(job model.JobData) float64 {
	if job.TotalEstimatedHours > 0 {
		return job.TotalEstimatedHours
	}
	total := 0.0
	for _, op := range job.Operations {
		total += op.EstimatedHours
	}
	return total
}
