package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/production-scheduler/pkg/core/services"
)

// RemoveScheduleCmd creates the removeSchedule command
func RemoveScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeSchedule <job_id>",
		Short: "Remove a job's saved schedule, releasing its work centers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := services.RemoveSchedule(app.Ctx, app.Database, app.Provider, app.Logger, args[0])
			if err != nil {
				return err
			}

			if removed == 0 {
				fmt.Printf("\nJob %s had no saved schedule.\n\n", args[0])
				return nil
			}
			fmt.Printf("\n✓ Removed %d scheduled operations for job %s\n\n", removed, args[0])

			return nil
		},
	}
}
