package allocator

import (
	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

// Criterion is an additional veto on placing an operation at a work center.
// Built-in capacity and time-window checks always run first; criteria can only
// narrow the set of work centers, never widen it.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsWorkCenterValid returns false if placing the operation on the work center
	// would violate a hard constraint. If ANY criterion returns false the work
	// center is skipped for this placement.
	IsWorkCenterValid(placement Placement, workCenter model.WorkCenterCapacity) bool
}

// IsWorkCenterAvailable reports whether a work center can run the placement:
// its snapshot load is below capacity, one of its open slots fully contains
// [Start, End), and no criterion vetoes it.
func IsWorkCenterAvailable(placement Placement, workCenter model.WorkCenterCapacity, criteria []Criterion) bool {
	if !workCenter.HasSpareCapacity() {
		return false
	}

	if !hasOpenSlot(workCenter, placement) {
		return false
	}

	for _, criterion := range criteria {
		if !criterion.IsWorkCenterValid(placement, workCenter) {
			return false
		}
	}

	return true
}

func hasOpenSlot(workCenter model.WorkCenterCapacity, placement Placement) bool {
	for _, slot := range workCenter.TimeSlots {
		if slot.Available && slot.Contains(placement.Start, placement.End) {
			return true
		}
	}
	return false
}
