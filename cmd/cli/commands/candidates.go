package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/services"
)

// CandidatesCmd creates the candidates command
func CandidatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <job_id>",
		Short: "Rank every employee for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]
			app.Logger.Debug("candidates command", zap.String("job_id", jobID))

			result, err := services.ListCandidates(app.Ctx, app.Database, app.Logger, app.Recorder, jobID)
			if err != nil {
				return err
			}

			fmt.Printf("\nCandidates for job %s (%s %s, %d needed)\n\n",
				result.Job.ID, result.Job.ScheduledDate, result.Job.StartTime, result.Job.RequiredStaff())
			if !result.Job.IsScheduled() {
				fmt.Printf("%sJob has no date or start time yet; every score is 0.%s\n\n", colorYellow, colorReset)
			}

			printCandidates(result.Candidates, dispatch.NewFitScorer().MaxScore(), result.Selected)
			fmt.Printf("\n* = would be selected by autoSelect\n")

			return nil
		},
	}
}
