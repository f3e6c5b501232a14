package allocator

import (
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

// fixedNow is a Monday morning
var fixedNow = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func newTestEngine(criteria ...Criterion) *Engine {
	return NewEngine(EngineConfig{
		Clock:    fixedClock,
		Location: time.UTC,
		Criteria: criteria,
	})
}

func dueIn(days int) string {
	return fixedNow.AddDate(0, 0, days).Format("2006-01-02")
}

func workCenter(id string, maxCapacity, load int, slots ...model.TimeSlot) model.WorkCenterCapacity {
	for i := range slots {
		slots[i].WorkCenterID = id
	}
	return model.WorkCenterCapacity{
		WorkCenterID: id,
		Name:         "WC " + id,
		MaxCapacity:  maxCapacity,
		CurrentLoad:  load,
		TimeSlots:    slots,
	}
}

func openSlot(start time.Time, hours int) model.TimeSlot {
	return model.TimeSlot{Start: start, End: start.Add(time.Duration(hours) * time.Hour), Available: true}
}

// mockCriterion vetoes the work centers listed in reject
type mockCriterion struct {
	name   string
	reject map[string]bool
	calls  int
}

func (m *mockCriterion) Name() string {
	return m.name
}

func (m *mockCriterion) IsWorkCenterValid(placement Placement, workCenter model.WorkCenterCapacity) bool {
	m.calls++
	return !m.reject[workCenter.WorkCenterID]
}
