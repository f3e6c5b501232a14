package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/production-scheduler/pkg/core/services"
)

// ListWorkCentersCmd creates the listWorkCenters command
func ListWorkCentersCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listWorkCenters",
		Short: "List work centers with their current load and open windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			snapshot, err := services.ListWorkCenters(app.Ctx, app.Provider, app.Logger)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(os.Stdout, snapshot)
			}
			printWorkCenters(os.Stdout, snapshot)

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the snapshot as JSON")

	return cmd
}
