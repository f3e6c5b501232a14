package allocator

import (
	"fmt"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/utils/dates"
)

const (
	// HighPriorityLevel and above get an expedite note
	HighPriorityLevel = 4

	// TightDeadlineDays or fewer until due get a deadline note
	TightDeadlineDays = 7
)

// OptimizationNotes produces advisory notes for the operator. Each note stands
// alone; none of them change the schedule.
func OptimizationNotes(assignments []model.WorkCenterAssignment, conflicts []model.ConflictWarning, job model.JobData, now time.Time) []string {
	notes := []string{}

	if len(conflicts) == 0 {
		notes = append(notes, "No scheduling conflicts detected - schedule is ready to release")
	} else {
		notes = append(notes, fmt.Sprintf("%d scheduling issue(s) detected - review the conflict warnings before release", len(conflicts)))
	}

	if job.PriorityLevel >= HighPriorityLevel {
		notes = append(notes, fmt.Sprintf("High priority job (level %d) - consider expediting material staging and setup", job.PriorityLevel))
	}

	due := dates.ParseLocalDate(job.DueDate, now.Location(), now)
	if days := dates.DaysBetween(now, due); days <= TightDeadlineDays {
		notes = append(notes, fmt.Sprintf("Tight deadline: due in %d day(s) - monitor progress daily", days))
	}

	if len(assignments) > 2 && singleWorkCenter(assignments) {
		notes = append(notes, fmt.Sprintf("All operations are on %s - consider splitting work across work centers to run operations in parallel", assignments[0].WorkCenterName))
	}

	return notes
}

func singleWorkCenter(assignments []model.WorkCenterAssignment) bool {
	for _, a := range assignments[1:] {
		if a.WorkCenterID != assignments[0].WorkCenterID {
			return false
		}
	}
	return true
}
