package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/services"
)

// DispatchCmd creates the dispatch command
func DispatchCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispatch [job_id...]",
		Short: "Assign one employee to each Pending job",
		Long: `Batch dispatch scores every employee for each job with the simple scorer and
assigns the best one scoring above 40. Jobs are processed in the order given.

By default every job is scored against the state before the run, so the same
employee can be booked twice for one slot. Pass --track-commitments to make each
decision visible to later jobs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			allPending, _ := cmd.Flags().GetBool("all-pending")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			notify, _ := cmd.Flags().GetBool("notify")
			publish, _ := cmd.Flags().GetBool("publish")
			trackCommitments := app.Cfg.TrackBatchCommitments
			if cmd.Flags().Changed("track-commitments") {
				trackCommitments, _ = cmd.Flags().GetBool("track-commitments")
			}

			app.Logger.Debug("dispatch command",
				zap.Strings("job_ids", args),
				zap.Bool("all_pending", allPending),
				zap.Bool("dry_run", dryRun),
				zap.Bool("track_commitments", trackCommitments),
				zap.Bool("notify", notify),
				zap.Bool("publish", publish))

			if dryRun && notify {
				return fmt.Errorf("--notify cannot be combined with --dry-run")
			}

			result, err := services.BatchDispatch(app.Ctx, app.Database, app.Logger, app.Recorder, services.BatchRequest{
				JobIDs:           args,
				AllPending:       allPending,
				TrackCommitments: trackCommitments,
				DryRun:           dryRun,
			})
			if err != nil {
				return err
			}
			outcome := result.Outcome

			fmt.Printf("\n🎯 Batch Dispatch Results\n\n")
			if dryRun {
				fmt.Printf("Mode: 🧪 DRY RUN (not saved)\n\n")
			}

			if len(outcome.Decisions) > 0 {
				fmt.Printf("%sAssigned (%d):%s\n", colorBold, len(outcome.Decisions), colorReset)
				for _, d := range outcome.Decisions {
					name := d.EmployeeID
					if emp := result.Snapshot.Employee(d.EmployeeID); emp != nil {
						name = emp.DisplayName()
					}
					fmt.Printf("  %s✓%s %-20s → %-20s %5.1f\n", colorGreen, colorReset, d.JobID, name, d.Score)
				}
				fmt.Println()
			}
			if len(outcome.Unmatched) > 0 {
				fmt.Printf("%sUnmatched (%d):%s\n", colorBold, len(outcome.Unmatched), colorReset)
				for _, id := range outcome.Unmatched {
					fmt.Printf("  %s✗%s %s\n", colorRed, colorReset, id)
				}
				fmt.Println()
			}
			if len(outcome.Skipped) > 0 {
				fmt.Printf("%sSkipped, not Pending (%d):%s %s\n\n", colorDim, len(outcome.Skipped), colorReset, formatIDs(outcome.Skipped))
			}

			if notify && len(outcome.Decisions) > 0 {
				gmail, err := app.GmailClient()
				if err != nil {
					return err
				}
				notified, err := services.NotifyAssignments(app.Ctx, gmail, app.Logger, app.Recorder, result.Snapshot, outcome.Decisions)
				if notified != nil {
					fmt.Printf("Emails sent: %d, failed: %d, no address: %d\n", len(notified.Sent), len(notified.Failed), len(notified.Skipped))
					for _, fe := range notified.Failed {
						fmt.Printf("  ✗ %s (%s): %s\n", fe.EmployeeID, fe.Email, fe.Error)
					}
				}
				if err != nil {
					return err
				}
			}

			if publish {
				sheets, err := app.SheetsClient()
				if err != nil {
					return err
				}
				rows, err := services.PublishDispatchLog(app.Ctx, sheets, app.Cfg, app.Logger, result.Snapshot, outcome, time.Now())
				if err != nil {
					return err
				}
				fmt.Printf("Dispatch log: %d rows appended\n", rows)
			}

			return nil
		},
	}

	cmd.Flags().Bool("all-pending", false, "Dispatch every Pending job")
	cmd.Flags().Bool("dry-run", false, "Compute decisions without saving them")
	cmd.Flags().Bool("track-commitments", false, "Let each decision block the employee for later jobs in the run (overrides config)")
	cmd.Flags().Bool("notify", false, "Email each assigned employee")
	cmd.Flags().Bool("publish", false, "Append the decisions to the dispatch log sheet")

	return cmd
}
