package sheetsclient

import (
	"fmt"
	"time"
)

const sheetTimeLayout = "Mon Jan 02 2006 15:04"

// PublishedScheduleRow is one operation line on a published schedule tab
type PublishedScheduleRow struct {
	Step       int
	Operation  string
	WorkCenter string
	Start      time.Time
	End        time.Time
	Hours      float64
}

// PublishedSchedule is the complete schedule of one job as shown on the sheet
type PublishedSchedule struct {
	JobNumber       string
	DueDate         string // Format: "2006-01-02"
	ConfidenceScore *int   // Omitted when the schedule was loaded from storage
	Rows            []PublishedScheduleRow
}

// TabTitle is the sheet tab a job's schedule is written to
func (s *PublishedSchedule) TabTitle() string {
	return "Job " + s.JobNumber
}

// PublishSchedule writes a job schedule to its own tab, creating the tab on
// first publish and overwriting it afterwards
func (c *Client) PublishSchedule(spreadsheetID string, schedule *PublishedSchedule) error {
	tabTitle := schedule.TabTitle()

	exists, err := c.HasSheet(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}

	if exists {
		if err := c.ClearValues(spreadsheetID, fmt.Sprintf("'%s'!A1:ZZ", tabTitle)); err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.WriteValues(spreadsheetID, fmt.Sprintf("'%s'!A1", tabTitle), scheduleValues(schedule)); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	return nil
}

// scheduleValues lays out a schedule: a summary line, a blank row, then the
// operation table
func scheduleValues(schedule *PublishedSchedule) [][]interface{} {
	summary := []interface{}{"Job", schedule.JobNumber, "Due", schedule.DueDate}
	if schedule.ConfidenceScore != nil {
		summary = append(summary, "Confidence", *schedule.ConfidenceScore)
	}

	values := [][]interface{}{
		summary,
		{},
		{"Step", "Operation", "Work center", "Start", "End", "Hours"},
	}

	for _, row := range schedule.Rows {
		values = append(values, []interface{}{
			row.Step,
			row.Operation,
			row.WorkCenter,
			row.Start.Format(sheetTimeLayout),
			row.End.Format(sheetTimeLayout),
			row.Hours,
		})
	}

	return values
}
