package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/production-scheduler/pkg/core/services"
)

// ScheduleJobCmd creates the scheduleJob command
func ScheduleJobCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheduleJob <job_id>",
		Short: "Schedule a job against current capacity and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			result, err := services.ScheduleJob(app.Ctx, app.Database, app.Provider, app.Engine, app.Logger, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(os.Stdout, result.Suggestion)
			}

			if result.DerivedOperations {
				fmt.Printf("\nJob had no routing; operations were derived from its line items.\n")
			}
			printSuggestion(os.Stdout, result.Suggestion)
			fmt.Printf("✓ Schedule saved for job %s\n\n", result.JobID)

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the suggestion as JSON")

	return cmd
}
