package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

func TestOptimalStartDate(t *testing.T) {
	due := fixedNow.AddDate(0, 0, 10)

	assert.Equal(t, due.Add(-12*time.Hour), OptimalStartDate(due, 10, 0.2, fixedNow))
	assert.Equal(t, due.Add(-10*time.Hour), OptimalStartDate(due, 10, 0, fixedNow))
}

func TestOptimalStartDate_ClampedToNow(t *testing.T) {
	due := fixedNow.Add(5 * time.Hour)
	assert.Equal(t, fixedNow, OptimalStartDate(due, 10, 0.2, fixedNow))
}

func TestSortOperations_Stable(t *testing.T) {
	ops := []model.Operation{
		{ID: "late", OperationNumber: 3},
		{ID: "tie-1", OperationNumber: 2},
		{ID: "early", OperationNumber: 1},
		{ID: "tie-2", OperationNumber: 2},
	}

	sorted := SortOperations(ops)

	var ids []string
	for _, op := range sorted {
		ids = append(ids, op.ID)
	}
	assert.Equal(t, []string{"early", "tie-1", "tie-2", "late"}, ids)
	assert.Equal(t, "late", ops[0].ID, "input must not be reordered")
}

func TestTotalHours_FallsBackToOperations(t *testing.T) {
	job := model.JobData{Operations: []model.Operation{{EstimatedHours: 1.5}, {EstimatedHours: 2}}}
	assert.Equal(t, 3.5, TotalHours(job))

	job.TotalEstimatedHours = 8
	assert.Equal(t, 8.0, TotalHours(job))
}
