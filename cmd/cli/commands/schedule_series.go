package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/services"
)

// ScheduleSeriesCmd creates the scheduleSeries command
func ScheduleSeriesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheduleSeries <client_id> <start_date> <recurrence>",
		Short: "Create Pending jobs for a client from a recurrence",
		Long: `Create Pending jobs for a client starting on start_date (YYYY-MM-DD).

recurrence is one of One-time, Daily, Weekly, Bi-weekly, Monthly, "Multiple Manual"
or the name of a rule from the recurrences section of the config. Repeating
recurrences need --until. Multiple Manual takes its extra dates from --date.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			until, _ := cmd.Flags().GetString("until")
			dates, _ := cmd.Flags().GetStringSlice("date")
			serviceType, _ := cmd.Flags().GetString("service")
			startTime, _ := cmd.Flags().GetString("start-time")
			hours, _ := cmd.Flags().GetFloat64("hours")
			staff, _ := cmd.Flags().GetInt("staff")

			req := services.SeriesRequest{
				ClientID:       args[0],
				StartDate:      args[1],
				Recurrence:     args[2],
				Until:          until,
				ManualDates:    dates,
				ServiceType:    serviceType,
				StartTime:      startTime,
				EstimatedHours: hours,
				StaffNeeded:    staff,
			}
			app.Logger.Debug("scheduleSeries command", zap.Any("request", req))

			result, err := services.ScheduleSeries(app.Ctx, app.Database, app.Cfg, app.Logger, req)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Series created successfully!\n\n")
			fmt.Printf("Series ID: %s\n", result.SeriesID)
			fmt.Printf("Jobs:      %d\n\n", len(result.Jobs))
			for i, job := range result.Jobs {
				fmt.Printf("  %2d. %s %s  %s\n", i+1, job.ScheduledDate, job.StartTime, job.ID)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("until", "", "Last date an occurrence may fall on (YYYY-MM-DD)")
	cmd.Flags().StringSlice("date", nil, "Extra date for a Multiple Manual series (repeatable)")
	cmd.Flags().String("service", "", "Service type")
	cmd.Flags().String("start-time", "", "Start time (HH:MM), defaults to the client's recommendation")
	cmd.Flags().Float64("hours", 0, "Estimated hours, defaults to the client's recommendation")
	cmd.Flags().Int("staff", 0, "Staff needed, defaults to the client's recommendation")

	return cmd
}
