package e2e

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/allocator/criteria"
	"github.com/jakechorley/production-scheduler/pkg/core/calendar"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/core/operations"
)

// Monday 2025-03-03 07:00
var now = time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)

func weekdayCenter(t *testing.T, id string, maxCapacity, load int, skills ...string) model.WorkCenterCapacity {
	t.Helper()
	slots, err := calendar.Expand(id, calendar.Rule{RRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR;BYHOUR=6", ShiftHours: 10}, now, now.AddDate(0, 0, 21), true, nil)
	require.NoError(t, err)
	return model.WorkCenterCapacity{
		WorkCenterID: id,
		Name:         strings.ToUpper(id),
		MaxCapacity:  maxCapacity,
		CurrentLoad:  load,
		Skills:       skills,
		TimeSlots:    slots,
	}
}

func TestDerivedRoutingOnShiftCalendar(t *testing.T) {
	engine := allocator.NewEngine(allocator.EngineConfig{
		Clock:    func() time.Time { return now },
		Location: time.UTC,
	})

	ops := operations.Derive([]model.LineItem{
		{Description: "CNC machining of bracket"},
		{Description: "Manual assembly"},
	}, 10)

	job := model.JobData{
		JobNumber:     "Q-2001",
		DueDate:       "2025-03-14",
		Operations:    ops,
		PriorityLevel: 3,
		Quantity:      10,
	}
	capacity := []model.WorkCenterCapacity{
		weekdayCenter(t, "cnc", 2, 1),
		weekdayCenter(t, "bench", 3, 0),
	}

	suggestion, err := engine.GenerateSuggestion(job, capacity)
	require.NoError(t, err)
	require.Len(t, suggestion.Assignments, 3)

	// Every operation sits inside a single weekday shift
	for _, a := range suggestion.Assignments {
		day := a.ScheduledStart.Weekday()
		assert.NotEqual(t, time.Saturday, day)
		assert.NotEqual(t, time.Sunday, day)
		assert.GreaterOrEqual(t, a.ScheduledStart.Hour(), 6)
		assert.LessOrEqual(t, a.ScheduledEnd.Sub(time.Date(a.ScheduledStart.Year(), a.ScheduledStart.Month(), a.ScheduledStart.Day(), 6, 0, 0, 0, time.UTC)), 10*time.Hour)
	}

	// Backward planning lands on Thursday evening; the latest shift before that is Thursday morning
	assert.Equal(t, time.Date(2025, 3, 13, 6, 0, 0, 0, time.UTC), suggestion.SuggestedStartDate)
	assert.Equal(t, time.Date(2025, 3, 13, 10, 0, 0, 0, time.UTC), suggestion.SuggestedEndDate)

	// bench has the lower load so it takes everything
	for _, a := range suggestion.Assignments {
		assert.Equal(t, "bench", a.WorkCenterID)
	}
	assert.Equal(t, operations.QualityControlName, suggestion.Assignments[2].OperationName)
}

func TestRequiredSkillsEnforced(t *testing.T) {
	engine := allocator.NewEngine(allocator.EngineConfig{
		Clock:    func() time.Time { return now },
		Location: time.UTC,
		Criteria: []allocator.Criterion{criteria.NewRequiredSkillsCriterion()},
	})

	job := model.JobData{
		JobNumber:     "Q-2002",
		DueDate:       "2025-03-14",
		PriorityLevel: 3,
		Operations: []model.Operation{
			{ID: "op-1", Name: "Titanium milling", OperationNumber: 1, EstimatedHours: 3, RequiredSkills: []string{"titanium"}},
		},
	}
	capacity := []model.WorkCenterCapacity{
		weekdayCenter(t, "general", 5, 0),
		weekdayCenter(t, "ti-cell", 5, 4, "Titanium"),
	}

	suggestion, err := engine.GenerateSuggestion(job, capacity)
	require.NoError(t, err)
	assert.Equal(t, "ti-cell", suggestion.Assignments[0].WorkCenterID)

	// Without a capable work center the job cannot be placed
	_, err = engine.GenerateSuggestion(job, capacity[:1])
	assert.ErrorIs(t, err, allocator.ErrUnplaceableOperation)
}

func TestRequiredSkillsIgnoredByDefault(t *testing.T) {
	engine := allocator.NewEngine(allocator.EngineConfig{
		Clock:    func() time.Time { return now },
		Location: time.UTC,
	})

	job := model.JobData{
		JobNumber:     "Q-2003",
		DueDate:       "2025-03-14",
		PriorityLevel: 3,
		Operations: []model.Operation{
			{ID: "op-1", Name: "Titanium milling", OperationNumber: 1, EstimatedHours: 3, RequiredSkills: []string{"titanium"}},
		},
	}

	suggestion, err := engine.GenerateSuggestion(job, []model.WorkCenterCapacity{weekdayCenter(t, "general", 5, 0)})
	require.NoError(t, err)
	assert.Equal(t, "general", suggestion.Assignments[0].WorkCenterID)
}

func TestBlackoutPushesWorkToNextShift(t *testing.T) {
	// Maintenance blocks the whole of Tuesday's shift
	tuesday := time.Date(2025, 3, 4, 6, 0, 0, 0, time.UTC)
	engine := allocator.NewEngine(allocator.EngineConfig{
		Clock:    func() time.Time { return now },
		Location: time.UTC,
		Criteria: []allocator.Criterion{criteria.NewBlackoutCriterion([]criteria.Blackout{
			{WorkCenterID: "press", Start: tuesday, End: tuesday.Add(10 * time.Hour)},
		})},
	})

	job := model.JobData{
		JobNumber:     "Q-2004",
		DueDate:       "2025-03-05",
		PriorityLevel: 3,
		Operations: []model.Operation{
			{ID: "op-1", Name: "Press", OperationNumber: 1, EstimatedHours: 4},
		},
	}

	suggestion, err := engine.GenerateSuggestion(job, []model.WorkCenterCapacity{weekdayCenter(t, "press", 2, 0)})
	require.NoError(t, err)

	start := suggestion.Assignments[0].ScheduledStart
	assert.False(t, start.Before(tuesday.Add(10*time.Hour)) && !start.Add(4*time.Hour).Before(tuesday),
		"operation must not run during the blackout, got %s", start)
}
