package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/production-scheduler/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule <job_id>",
		Short: "Publish a job's saved schedule to the planning spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, gmail, err := app.GoogleClients()
			if err != nil {
				return err
			}

			result, err := services.PublishSchedule(app.Ctx, app.Database, sheets, gmail, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Published %d operations to tab %q\n", len(result.Schedule.Rows), result.Schedule.TabTitle())
			if result.Notified {
				fmt.Printf("✓ Notified %s\n", app.Cfg.Publish.NotifyEmail)
			} else if app.Cfg.Publish.NotifyEmail != "" {
				fmt.Printf("⚠️  Could not notify %s (see logs)\n", app.Cfg.Publish.NotifyEmail)
			}
			fmt.Println()

			return nil
		},
	}
}
