package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/production-scheduler/pkg/core/services"
)

// PreviewScheduleCmd creates the previewSchedule command
func PreviewScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "previewSchedule <request.json>",
		Short: "Preview a schedule for a job described in a JSON file without saving it",
		Long: `Preview a schedule for an ad-hoc job. The file holds {"job": {...}} plus
optional "lineItems" (used when the job has no operations) and "capacity"
(used instead of the live work-center snapshot).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			req, err := readPreviewRequest(args[0])
			if err != nil {
				return err
			}

			suggestion, err := services.PreviewSchedule(app.Ctx, app.Provider, app.Engine, app.Logger, *req)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(os.Stdout, suggestion)
			}
			printSuggestion(os.Stdout, suggestion)

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the suggestion as JSON")

	return cmd
}

func readPreviewRequest(path string) (*services.PreviewRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var req services.PreviewRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request file: %w", err)
	}

	return &req, nil
}
