package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <job_id> <employee_id>...",
		Short: "Set a job's staff explicitly",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, employeeIDs := args[0], args[1:]
			app.Logger.Debug("assign command", zap.String("job_id", jobID), zap.Strings("employee_ids", employeeIDs))

			job, err := services.AssignStaff(app.Ctx, app.Database, app.Logger, jobID, employeeIDs)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Job %s assigned to %s (%s)\n", job.ID, formatIDs(job.AssignedEmployeeIDs), job.Status)
			return nil
		},
	}
}
