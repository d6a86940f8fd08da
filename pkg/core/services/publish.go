package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
)

// SheetAppender appends rows to a spreadsheet range
type SheetAppender interface {
	AppendRows(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
}

// PublishDispatchLog appends one row per decision and per unmatched job to the dispatch log tab.
// Columns: run time, job id, date, start, client, employee id, employee, score, outcome.
func PublishDispatchLog(
	ctx context.Context,
	sheet SheetAppender,
	cfg *config.Config,
	logger *zap.Logger,
	snap *dispatch.Snapshot,
	outcome *dispatch.BatchOutcome,
	now time.Time,
) (int, error) {
	if cfg.DispatchLog == nil {
		return 0, fmt.Errorf("dispatch log is not configured")
	}

	rows := dispatchLogRows(snap, outcome, now)
	if len(rows) == 0 {
		logger.Info("Nothing to publish")
		return 0, nil
	}

	logger.Debug("Appending dispatch log rows",
		zap.String("spreadsheet_id", cfg.DispatchLog.SpreadsheetID),
		zap.String("tab", cfg.DispatchLog.Tab),
		zap.Int("rows", len(rows)))

	if err := sheet.AppendRows(ctx, cfg.DispatchLog.SpreadsheetID, cfg.DispatchLog.Tab, rows); err != nil {
		return 0, fmt.Errorf("failed to publish dispatch log: %w", err)
	}

	logger.Info("Dispatch log published", zap.Int("rows", len(rows)))
	return len(rows), nil
}

// dispatchLogRows renders decisions, then unmatched jobs, as sheet rows
func dispatchLogRows(snap *dispatch.Snapshot, outcome *dispatch.BatchOutcome, now time.Time) [][]interface{} {
	runAt := now.UTC().Format(time.RFC3339)

	rows := make([][]interface{}, 0, len(outcome.Decisions)+len(outcome.Unmatched))
	for _, d := range outcome.Decisions {
		date, start, client := jobColumns(snap, d.JobID)
		employee := d.EmployeeID
		if emp := snap.Employee(d.EmployeeID); emp != nil {
			employee = emp.DisplayName()
		}
		rows = append(rows, []interface{}{
			runAt, d.JobID, date, start, client, d.EmployeeID, employee,
			strconv.FormatFloat(d.Score, 'f', 1, 64), "assigned",
		})
	}
	for _, id := range outcome.Unmatched {
		date, start, client := jobColumns(snap, id)
		rows = append(rows, []interface{}{runAt, id, date, start, client, "", "", "", "unmatched"})
	}

	return rows
}

func jobColumns(snap *dispatch.Snapshot, jobID string) (string, string, string) {
	job := snap.Job(jobID)
	if job == nil {
		return "", "", ""
	}
	client := job.ClientID
	if c := snap.Client(job.ClientID); c != nil && c.Name != "" {
		client = c.Name
	}
	return job.ScheduledDate, job.StartTime, client
}
