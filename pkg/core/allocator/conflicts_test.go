package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

func assignment(id, wc string, start time.Time, hours float64) model.WorkCenterAssignment {
	return model.WorkCenterAssignment{
		OperationID:    id,
		OperationName:  "Op " + id,
		WorkCenterID:   wc,
		WorkCenterName: "WC " + wc,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Duration(hours * float64(time.Hour))),
		EstimatedHours: hours,
	}
}

func TestDetectConflicts_None(t *testing.T) {
	assignments := []model.WorkCenterAssignment{
		assignment("op-1", "a", fixedNow, 1),
		assignment("op-2", "a", fixedNow.Add(90*time.Minute), 1),
	}
	capacity := []model.WorkCenterCapacity{workCenter("a", 2, 0)}

	assert.Empty(t, DetectConflicts(assignments, capacity))
}

func TestDetectConflicts_BackToBackTiming(t *testing.T) {
	assignments := []model.WorkCenterAssignment{
		assignment("op-1", "a", fixedNow, 4),
		assignment("op-2", "a", fixedNow.Add(4*time.Hour), 4),
	}
	capacity := []model.WorkCenterCapacity{workCenter("a", 2, 0)}

	conflicts := DetectConflicts(assignments, capacity)
	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ConflictTiming, conflicts[0].Type)
	assert.Equal(t, model.SeverityMedium, conflicts[0].Severity)
	assert.Equal(t, []string{"op-1", "op-2"}, conflicts[0].AffectedOperations)
	assert.NotEmpty(t, conflicts[0].SuggestedResolution)
}

func TestDetectConflicts_GapExactlyMinimumIsFine(t *testing.T) {
	assignments := []model.WorkCenterAssignment{
		assignment("op-1", "a", fixedNow, 1),
		assignment("op-2", "a", fixedNow.Add(75*time.Minute), 1),
	}

	assert.Empty(t, DetectConflicts(assignments, []model.WorkCenterCapacity{workCenter("a", 5, 0)}))
}

func TestDetectConflicts_OnlyAdjacentPairs(t *testing.T) {
	assignments := []model.WorkCenterAssignment{
		assignment("op-1", "a", fixedNow, 1),
		assignment("op-2", "b", fixedNow.Add(time.Hour), 1),
		assignment("op-3", "c", fixedNow.Add(2*time.Hour), 1),
	}
	capacity := []model.WorkCenterCapacity{workCenter("a", 5, 0), workCenter("b", 5, 0), workCenter("c", 5, 0)}

	conflicts := DetectConflicts(assignments, capacity)
	require.Len(t, conflicts, 2)
	assert.Equal(t, []string{"op-1", "op-2"}, conflicts[0].AffectedOperations)
	assert.Equal(t, []string{"op-2", "op-3"}, conflicts[1].AffectedOperations)
}

func TestDetectConflicts_CapacityRunningCount(t *testing.T) {
	assignments := []model.WorkCenterAssignment{
		assignment("op-1", "a", fixedNow, 1),
		assignment("op-2", "a", fixedNow.Add(2*time.Hour), 1),
		assignment("op-3", "a", fixedNow.Add(4*time.Hour), 1),
	}
	capacity := []model.WorkCenterCapacity{workCenter("a", 2, 1)}

	conflicts := DetectConflicts(assignments, capacity)
	require.Len(t, conflicts, 2)
	for i, c := range conflicts {
		assert.Equal(t, model.ConflictCapacity, c.Type)
		assert.Equal(t, model.SeverityHigh, c.Severity)
		assert.Contains(t, c.Message, "WC a")
		assert.Equal(t, []string{assignments[i+1].OperationID}, c.AffectedOperations)
	}
	assert.Contains(t, conflicts[0].Message, "3/2")
	assert.Contains(t, conflicts[1].Message, "4/2")
}

func TestDetectConflicts_UnknownWorkCenterSkipped(t *testing.T) {
	assignments := []model.WorkCenterAssignment{assignment("op-1", "ghost", fixedNow, 1)}
	assert.Empty(t, DetectConflicts(assignments, nil))
}

func TestDetectConflicts_Empty(t *testing.T) {
	conflicts := DetectConflicts(nil, nil)
	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)
}

func TestDeadlineConflicts(t *testing.T) {
	deadline := fixedNow.Add(3 * time.Hour)
	assignments := []model.WorkCenterAssignment{
		assignment("op-1", "a", fixedNow, 2),
		assignment("op-2", "a", fixedNow.Add(2*time.Hour), 2),
	}

	conflicts := deadlineConflicts(assignments, deadline)
	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ConflictTiming, conflicts[0].Type)
	assert.Equal(t, model.SeverityHigh, conflicts[0].Severity)
	assert.Equal(t, []string{"op-2"}, conflicts[0].AffectedOperations)
}
