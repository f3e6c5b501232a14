package allocator

import (
	"sort"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/utils/dates"
)

// GreedyLeastLoaded walks operations forward in time and puts each on the
// preferred work center when it is free, otherwise on the free work center with
// the lowest current load. There is no lookahead or backtracking.
type GreedyLeastLoaded struct {
	criteria []Criterion
}

// NewGreedyLeastLoaded creates the greedy strategy with optional extra criteria
func NewGreedyLeastLoaded(criteria ...Criterion) *GreedyLeastLoaded {
	return &GreedyLeastLoaded{criteria: criteria}
}

func (g *GreedyLeastLoaded) Name() string {
	return "GreedyLeastLoaded"
}

// Assign places every operation back to back, failing on the first operation
// that cannot be placed. It never returns a partial schedule.
func (g *GreedyLeastLoaded) Assign(req AssignmentRequest) ([]model.WorkCenterAssignment, error) {
	assignments := make([]model.WorkCenterAssignment, 0, len(req.Operations))

	cursor := req.Start
	if cursor.Before(req.Earliest) {
		cursor = req.Earliest
	}

	for i, op := range req.Operations {
		duration := dates.HoursToDuration(op.EstimatedHours)

		// The first operation may move back as far as "now" when the planned start
		// falls in a closed period; later operations only ever move forward
		floor := cursor
		if i == 0 {
			floor = req.Earliest
		}

		start, workCenter, ok := g.place(op, cursor, floor, duration, req.Capacity)
		if !ok {
			return nil, &UnplaceableOperationError{
				OperationID:   op.EffectiveID(),
				OperationName: op.Name,
				Hours:         op.EstimatedHours,
				EarliestStart: cursor,
			}
		}

		end := start.Add(duration)
		assignments = append(assignments, model.WorkCenterAssignment{
			OperationID:    op.EffectiveID(),
			OperationName:  op.Name,
			WorkCenterID:   workCenter.WorkCenterID,
			WorkCenterName: workCenter.Name,
			ScheduledStart: start,
			ScheduledEnd:   end,
			EstimatedHours: op.EstimatedHours,
		})

		cursor = end
	}

	return assignments, nil
}

// place tries the cursor first, then earlier window openings back to floor
// (latest first), then later window openings (earliest first)
func (g *GreedyLeastLoaded) place(op model.Operation, cursor, floor time.Time, duration time.Duration, capacity []model.WorkCenterCapacity) (time.Time, *model.WorkCenterCapacity, bool) {
	if wc := g.selectWorkCenter(op, cursor, duration, capacity); wc != nil {
		return cursor, wc, true
	}

	for _, start := range candidateStarts(capacity, floor, cursor) {
		if wc := g.selectWorkCenter(op, start, duration, capacity); wc != nil {
			return start, wc, true
		}
	}

	return time.Time{}, nil, false
}

// selectWorkCenter applies the preferred-then-least-loaded rule at a fixed start time
func (g *GreedyLeastLoaded) selectWorkCenter(op model.Operation, start time.Time, duration time.Duration, capacity []model.WorkCenterCapacity) *model.WorkCenterCapacity {
	placement := Placement{Operation: op, Start: start, End: start.Add(duration)}

	if op.WorkCenterID != "" {
		for i := range capacity {
			if capacity[i].WorkCenterID == op.WorkCenterID && IsWorkCenterAvailable(placement, capacity[i], g.criteria) {
				return &capacity[i]
			}
		}
	}

	var best *model.WorkCenterCapacity
	for i := range capacity {
		if !IsWorkCenterAvailable(placement, capacity[i], g.criteria) {
			continue
		}
		// Strict less-than keeps the first work center on ties
		if best == nil || capacity[i].CurrentLoad < best.CurrentLoad {
			best = &capacity[i]
		}
	}

	return best
}

// candidateStarts returns the distinct times worth trying once the cursor fails.
// Open-slot starts in [floor, cursor) come first, latest first, with floor itself
// last among them; slot starts after the cursor follow, earliest first.
func candidateStarts(capacity []model.WorkCenterCapacity, floor, cursor time.Time) []time.Time {
	seen := map[int64]bool{cursor.UnixNano(): true}
	var before, after []time.Time

	for _, wc := range capacity {
		for _, slot := range wc.TimeSlots {
			if !slot.Available || seen[slot.Start.UnixNano()] || !slot.Start.After(floor) {
				continue
			}
			seen[slot.Start.UnixNano()] = true
			if slot.Start.Before(cursor) {
				before = append(before, slot.Start)
			} else {
				after = append(after, slot.Start)
			}
		}
	}

	sort.Slice(before, func(i, j int) bool {
		return before[i].After(before[j])
	})
	sort.Slice(after, func(i, j int) bool {
		return after[i].Before(after[j])
	})

	// floor covers windows already open when the search begins
	if floor.Before(cursor) {
		before = append(before, floor)
	}

	return append(before, after...)
}
