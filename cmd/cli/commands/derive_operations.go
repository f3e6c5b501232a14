package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/core/operations"
)

// DeriveOperationsCmd creates the deriveOperations command
func DeriveOperationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deriveOperations <quantity> <description>...",
		Short: "Show the routing that would be derived from line item descriptions",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[0])
			if err != nil || quantity < 0 {
				return fmt.Errorf("quantity must be a non-negative number: %q", args[0])
			}

			items := make([]model.LineItem, 0, len(args)-1)
			for _, description := range args[1:] {
				items = append(items, model.LineItem{Description: description})
			}

			ops := operations.Derive(items, quantity)

			fmt.Fprintln(os.Stdout)
			for _, op := range ops {
				fmt.Fprintf(os.Stdout, "  %2d. %-50s %6.2fh\n", op.OperationNumber, op.Name, op.EstimatedHours)
			}
			fmt.Fprintf(os.Stdout, "\nTotal: %.2fh\n\n", operations.TotalHours(ops))

			return nil
		},
	}
}
