// Package calendar expands work-center opening rules into concrete time slots.
//
// A work center's opening hours are stored as an RFC 5545 recurrence rule plus a
// shift length, e.g. "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR;BYHOUR=6" with 8 hours opens
// a 06:00-14:00 window every weekday.
package calendar

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/utils/dates"
)

// Booking is an already persisted use of a work center
type Booking struct {
	JobID string
	Start time.Time
	End   time.Time
}

// Rule describes when a work center is open
type Rule struct {
	RRule      string
	ShiftHours float64
}

// Validate checks the rule parses and the shift length is positive
func (r Rule) Validate() error {
	if r.ShiftHours <= 0 {
		return fmt.Errorf("shift hours must be positive, got %v", r.ShiftHours)
	}
	if _, err := rrule.StrToROption(r.RRule); err != nil {
		return fmt.Errorf("invalid rrule %q: %w", r.RRule, err)
	}
	return nil
}

// Expand returns the open windows of a work center intersecting [from, to).
//
// Windows that overlap or touch are merged so work can continue across
// contiguous shifts. A window already in progress at from is kept whole.
// JobIDs on each slot lists the bookings overlapping it.
func Expand(workCenterID string, rule Rule, from, to time.Time, available bool, bookings []Booking) ([]model.TimeSlot, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if !to.After(from) {
		return []model.TimeSlot{}, nil
	}

	opt, err := rrule.StrToROptionInLocation(rule.RRule, from.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", rule.RRule, err)
	}

	shift := dates.HoursToDuration(rule.ShiftHours)

	// Anchor unanchored rules at midnight so BYHOUR rules fire on the hour
	if opt.Dtstart.IsZero() {
		opt.Dtstart = dates.StartOfDay(from.Add(-shift))
	}

	recurrence, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build rrule: %w", err)
	}

	occurrences := recurrence.Between(from.Add(-shift), to, true)

	windows := make([]model.TimeSlot, 0, len(occurrences))
	for _, occ := range occurrences {
		end := occ.Add(shift)
		if !end.After(from) || !occ.Before(to) {
			continue
		}
		windows = append(windows, model.TimeSlot{
			WorkCenterID: workCenterID,
			Start:        occ,
			End:          end,
			Available:    available,
		})
	}

	merged := Merge(windows)
	for i := range merged {
		merged[i].JobIDs = overlappingJobs(merged[i], bookings)
	}

	return merged, nil
}

// AlwaysOpen returns a single window covering [from, to) for work centers
// without opening hours
func AlwaysOpen(workCenterID string, from, to time.Time, available bool, bookings []Booking) []model.TimeSlot {
	if !to.After(from) {
		return []model.TimeSlot{}
	}

	slot := model.TimeSlot{
		WorkCenterID: workCenterID,
		Start:        from,
		End:          to,
		Available:    available,
	}
	slot.JobIDs = overlappingJobs(slot, bookings)

	return []model.TimeSlot{slot}
}

// Merge combines overlapping or touching slots of the same availability.
// The input is not modified.
func Merge(slots []model.TimeSlot) []model.TimeSlot {
	if len(slots) == 0 {
		return []model.TimeSlot{}
	}

	sorted := slices.Clone(slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []model.TimeSlot{sorted[0]}
	for _, slot := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.Available == slot.Available && !slot.Start.After(last.End) {
			if slot.End.After(last.End) {
				last.End = slot.End
			}
			continue
		}
		merged = append(merged, slot)
	}

	return merged
}

func overlappingJobs(slot model.TimeSlot, bookings []Booking) []string {
	var jobIDs []string
	for _, b := range bookings {
		if b.Start.Before(slot.End) && b.End.After(slot.Start) && !slices.Contains(jobIDs, b.JobID) {
			jobIDs = append(jobIDs, b.JobID)
		}
	}
	sort.Strings(jobIDs)
	return jobIDs
}
