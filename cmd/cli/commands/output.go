package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

const timeLayout = "Mon 2006-01-02 15:04"

// printSuggestion writes a human-readable schedule
func printSuggestion(w io.Writer, s *model.SchedulingSuggestion) {
	fmt.Fprintf(w, "\nSchedule for job %s\n", s.JobNumber)
	fmt.Fprintf(w, "Start:      %s\n", s.SuggestedStartDate.Format(timeLayout))
	fmt.Fprintf(w, "End:        %s\n", s.SuggestedEndDate.Format(timeLayout))
	fmt.Fprintf(w, "Confidence: %d%%\n", s.ConfidenceScore)
	if s.EstimatedCost != nil {
		fmt.Fprintf(w, "Est. cost:  %.2f\n", *s.EstimatedCost)
	}

	if len(s.Assignments) == 0 {
		fmt.Fprintln(w, "\nNo operations to schedule.")
	} else {
		fmt.Fprintln(w, "\nOperations:")
		for i, a := range s.Assignments {
			workCenter := a.WorkCenterName
			if workCenter == "" {
				workCenter = a.WorkCenterID
			}
			fmt.Fprintf(w, "  %2d. %-40s %-20s %s -> %s (%.2fh)\n",
				i+1,
				a.OperationName,
				workCenter,
				a.ScheduledStart.Format(timeLayout),
				a.ScheduledEnd.Format(timeLayout),
				a.EstimatedHours)
		}
	}

	if len(s.Conflicts) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(s.Conflicts))
		for _, c := range s.Conflicts {
			fmt.Fprintf(w, "  [%s/%s] %s\n", strings.ToUpper(string(c.Severity)), c.Type, c.Message)
			if c.SuggestedResolution != "" {
				fmt.Fprintf(w, "      -> %s\n", c.SuggestedResolution)
			}
		}
	}

	if len(s.OptimizationNotes) > 0 {
		fmt.Fprintln(w, "\nNotes:")
		for _, note := range s.OptimizationNotes {
			fmt.Fprintf(w, "  - %s\n", note)
		}
	}
	fmt.Fprintln(w)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// printWorkCenters writes one line per work center with its load and open hours
func printWorkCenters(w io.Writer, snapshot []model.WorkCenterCapacity) {
	fmt.Fprintf(w, "\nFound %d work centers:\n\n", len(snapshot))
	for _, wc := range snapshot {
		openHours := 0.0
		for _, slot := range wc.TimeSlots {
			if slot.Available {
				openHours += slot.Duration().Hours()
			}
		}
		status := "available"
		if !wc.HasSpareCapacity() {
			status = "full"
		}
		fmt.Fprintf(w, "- %s (%s) load %d/%d [%s], %d windows, %.1fh open\n",
			wc.Name,
			wc.WorkCenterID,
			wc.CurrentLoad,
			wc.MaxCapacity,
			status,
			len(wc.TimeSlots),
			openHours)
	}
	fmt.Fprintln(w)
}
