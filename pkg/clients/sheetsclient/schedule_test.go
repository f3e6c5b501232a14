package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleValues_Layout(t *testing.T) {
	start := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)
	score := 85
	schedule := &PublishedSchedule{
		JobNumber:       "Q-1001",
		DueDate:         "2025-03-14",
		ConfidenceScore: &score,
		Rows: []PublishedScheduleRow{
			{Step: 1, Operation: "CNC Machining - bracket", WorkCenter: "CNC Mill", Start: start, End: start.Add(2 * time.Hour), Hours: 2},
			{Step: 2, Operation: "Quality Control & Inspection", WorkCenter: "QC Bench", Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour), Hours: 1},
		},
	}

	values := scheduleValues(schedule)
	require.Len(t, values, 5)

	assert.Equal(t, []interface{}{"Job", "Q-1001", "Due", "2025-03-14", "Confidence", 85}, values[0])
	assert.Empty(t, values[1])
	assert.Equal(t, "Work center", values[2][2])
	assert.Equal(t, []interface{}{1, "CNC Machining - bracket", "CNC Mill", "Tue Mar 04 2025 08:00", "Tue Mar 04 2025 10:00", 2.0}, values[3])
	assert.Equal(t, "QC Bench", values[4][2])
}

func TestScheduleValues_WithoutConfidence(t *testing.T) {
	values := scheduleValues(&PublishedSchedule{JobNumber: "Q-1", DueDate: "2025-01-01"})

	assert.Equal(t, []interface{}{"Job", "Q-1", "Due", "2025-01-01"}, values[0])
	assert.Len(t, values, 3)
}

func TestPublishedSchedule_TabTitle(t *testing.T) {
	assert.Equal(t, "Job Q-1001", (&PublishedSchedule{JobNumber: "Q-1001"}).TabTitle())
}
