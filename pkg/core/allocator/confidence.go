package allocator

import (
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

const (
	maxConfidence = 100

	// PackedUtilization is the utilization above which a schedule has no slack
	PackedUtilization = 0.9

	packedPenalty = 10
)

var severityPenalty = map[model.Severity]int{
	model.SeverityHigh:   25,
	model.SeverityMedium: 15,
	model.SeverityLow:    5,
}

// ConfidenceScore rates a schedule from 0 to 100. The score is ordinal: it
// ranks schedules, it is not a probability.
//
// Every conflict costs 25/15/5 points by severity, and a schedule using more
// than 90% of the window between its first start and the deadline loses
// another 10.
func ConfidenceScore(conflicts []model.ConflictWarning, assignments []model.WorkCenterAssignment, deadline time.Time) int {
	score := maxConfidence

	for _, c := range conflicts {
		score -= severityPenalty[c.Severity]
	}

	if len(assignments) > 0 && Utilization(assignments, deadline) > PackedUtilization {
		score -= packedPenalty
	}

	return min(max(score, 0), maxConfidence)
}

// Utilization is total operation hours over the hours between the first
// scheduled start and the deadline. A window that is empty or already past
// counts as fully packed.
func Utilization(assignments []model.WorkCenterAssignment, deadline time.Time) float64 {
	if len(assignments) == 0 {
		return 0
	}

	totalHours := 0.0
	first := assignments[0].ScheduledStart
	for _, a := range assignments {
		totalHours += a.EstimatedHours
		if a.ScheduledStart.Before(first) {
			first = a.ScheduledStart
		}
	}

	span := deadline.Sub(first).Hours()
	if span <= 0 {
		return 1
	}

	return totalHours / span
}
