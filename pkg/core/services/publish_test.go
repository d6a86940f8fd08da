package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
)

func publishConfig() *config.Config {
	return &config.Config{
		DispatchLog: &config.DispatchLogConfig{SpreadsheetID: "log_sheet", Tab: "Dispatch log"},
	}
}

func TestPublishDispatchLog_Rows(t *testing.T) {
	sheet := &mockSheet{}
	outcome := &dispatch.BatchOutcome{
		Decisions: []dispatch.Decision{{JobID: "job_1", EmployeeID: "emp_1", Score: 72.5}},
		Unmatched: []string{"job_2"},
		Skipped:   []string{"job_3"},
	}
	now := time.Date(2024, 1, 2, 18, 30, 0, 0, time.FixedZone("CET", 3600))

	n, err := PublishDispatchLog(context.Background(), sheet, publishConfig(), zap.NewNop(), notifySnapshot(), outcome, now)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, "log_sheet", sheet.spreadsheetID)
	assert.Equal(t, "Dispatch log", sheet.sheetRange)
	assert.Equal(t, [][]interface{}{
		{"2024-01-02T17:30:00Z", "job_1", "2024-01-03", "09:00", "Harbour View Ltd", "emp_1", "Ana Test", "72.5", "assigned"},
		{"2024-01-02T17:30:00Z", "job_2", "2024-01-03", "09:00", "Harbour View Ltd", "", "", "", "unmatched"},
	}, sheet.rows)
}

func TestPublishDispatchLog_NothingToPublish(t *testing.T) {
	sheet := &mockSheet{}

	n, err := PublishDispatchLog(context.Background(), sheet, publishConfig(), zap.NewNop(), notifySnapshot(), &dispatch.BatchOutcome{}, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, sheet.rows)
}

func TestPublishDispatchLog_Errors(t *testing.T) {
	outcome := &dispatch.BatchOutcome{Unmatched: []string{"job_1"}}

	_, err := PublishDispatchLog(context.Background(), &mockSheet{}, &config.Config{}, zap.NewNop(), notifySnapshot(), outcome, time.Now())
	assert.EqualError(t, err, "dispatch log is not configured")

	sheet := &mockSheet{appendErr: errors.New("permission denied")}
	_, err = PublishDispatchLog(context.Background(), sheet, publishConfig(), zap.NewNop(), notifySnapshot(), outcome, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish dispatch log")
}
