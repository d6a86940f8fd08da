package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/services"
)

// AutoSelectCmd creates the autoSelect command
func AutoSelectCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoSelect <job_id>",
		Short: "Replace a job's staff with the best fitting employees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			jobID := args[0]

			app.Logger.Debug("autoSelect command", zap.String("job_id", jobID), zap.Bool("dry_run", dryRun))

			result, err := services.AutoSelectStaff(app.Ctx, app.Database, app.Logger, app.Recorder, jobID, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\nJob %s\n", result.Job.ID)
			fmt.Printf("Previous: %s\n", formatIDs(result.Previous))
			fmt.Printf("Selected: %s\n", formatIDs(result.Selected))
			fmt.Printf("Status:   %s\n", result.Job.Status)
			if len(result.Selected) < result.Job.RequiredStaff() {
				fmt.Printf("%s⚠️  Only %d of %d staff could be found%s\n",
					colorYellow, len(result.Selected), result.Job.RequiredStaff(), colorReset)
			}
			if result.Saved {
				fmt.Printf("\n✓ Assignment saved\n")
			} else {
				fmt.Printf("\n🧪 DRY RUN (not saved)\n")
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show the selection without saving it")

	return cmd
}

func formatIDs(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
