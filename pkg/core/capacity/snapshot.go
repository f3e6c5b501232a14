package capacity

import (
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/calendar"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/db"
)

// Build assembles a snapshot from stored work centers and their bookings.
//
// CurrentLoad counts the distinct jobs with an operation on the work center
// that has not finished by now. Open windows are expanded over
// [now, now+horizon) from the override rule when present, else the stored
// rule; work centers with neither are open around the clock.
func Build(now time.Time, horizon time.Duration, centers []db.WorkCenter, bookings []db.ScheduledOperation, overrides map[string]calendar.Rule) ([]model.WorkCenterCapacity, error) {
	byCenter := make(map[string][]calendar.Booking)
	jobsByCenter := make(map[string]map[string]bool)
	for _, b := range bookings {
		if !b.ScheduledEnd.After(now) {
			continue
		}
		byCenter[b.WorkCenterID] = append(byCenter[b.WorkCenterID], calendar.Booking{
			JobID: b.JobID,
			Start: b.ScheduledStart,
			End:   b.ScheduledEnd,
		})
		if jobsByCenter[b.WorkCenterID] == nil {
			jobsByCenter[b.WorkCenterID] = make(map[string]bool)
		}
		jobsByCenter[b.WorkCenterID][b.JobID] = true
	}

	until := now.Add(horizon)
	snapshot := make([]model.WorkCenterCapacity, 0, len(centers))
	for _, wc := range centers {
		slots, err := openWindows(wc, overrides, now, until, byCenter[wc.ID])
		if err != nil {
			return nil, fmt.Errorf("failed to expand calendar for work center %s: %w", wc.ID, err)
		}

		snapshot = append(snapshot, model.WorkCenterCapacity{
			WorkCenterID: wc.ID,
			Name:         wc.Name,
			MaxCapacity:  wc.MaxCapacity,
			CurrentLoad:  len(jobsByCenter[wc.ID]),
			HourlyRate:   wc.HourlyRate,
			Skills:       wc.Skills,
			TimeSlots:    slots,
		})
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].WorkCenterID < snapshot[j].WorkCenterID
	})

	return snapshot, nil
}

func openWindows(wc db.WorkCenter, overrides map[string]calendar.Rule, from, to time.Time, bookings []calendar.Booking) ([]model.TimeSlot, error) {
	if rule, ok := overrides[wc.ID]; ok {
		return calendar.Expand(wc.ID, rule, from, to, wc.Active, bookings)
	}
	if wc.RRule != "" {
		return calendar.Expand(wc.ID, calendar.Rule{RRule: wc.RRule, ShiftHours: wc.ShiftHours}, from, to, wc.Active, bookings)
	}
	return calendar.AlwaysOpen(wc.ID, from, to, wc.Active, bookings), nil
}

// ExcludeJob removes a job's own bookings from a snapshot so the job can be
// rescheduled without competing with itself
func ExcludeJob(snapshot []model.WorkCenterCapacity, jobID string, existing []db.ScheduledOperation, now time.Time) []model.WorkCenterCapacity {
	if jobID == "" || len(existing) == 0 {
		return snapshot
	}

	booked := make(map[string]bool)
	for _, op := range existing {
		if op.JobID == jobID && op.ScheduledEnd.After(now) {
			booked[op.WorkCenterID] = true
		}
	}

	out := Clone(snapshot)
	for i := range out {
		if !booked[out[i].WorkCenterID] {
			continue
		}
		if out[i].CurrentLoad > 0 {
			out[i].CurrentLoad--
		}
		for j := range out[i].TimeSlots {
			out[i].TimeSlots[j].JobIDs = removeString(out[i].TimeSlots[j].JobIDs, jobID)
		}
	}

	return out
}

func removeString(values []string, target string) []string {
	out := values[:0]
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
