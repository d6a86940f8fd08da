package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/db"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/metrics"
)

// BatchRequest selects the jobs of one batch run and how it behaves
type BatchRequest struct {
	// JobIDs are dispatched in the order given. Ignored when AllPending is set.
	JobIDs []string

	// AllPending dispatches every Pending job in snapshot order
	AllPending bool

	TrackCommitments bool
	DryRun           bool
}

// BatchResult is the outcome of a batch run and the snapshot it was computed from
type BatchResult struct {
	Outcome  *dispatch.BatchOutcome
	Snapshot *dispatch.Snapshot
	Saved    bool
}

// BatchDispatch assigns one employee to each requested Pending job.
// If DryRun is true, decisions are computed but not saved.
// It errors when no job ids are given and AllPending is off.
func BatchDispatch(
	ctx context.Context,
	store db.JobStore,
	logger *zap.Logger,
	recorder metrics.Recorder,
	req BatchRequest,
) (*BatchResult, error) {
	logger.Debug("Starting batchDispatch",
		zap.Int("job_ids", len(req.JobIDs)),
		zap.Bool("all_pending", req.AllPending),
		zap.Bool("track_commitments", req.TrackCommitments),
		zap.Bool("dry_run", req.DryRun))

	if !req.AllPending && len(req.JobIDs) == 0 {
		return nil, fmt.Errorf("no jobs selected: pass job ids or request all pending jobs")
	}

	// Step 1: Load snapshot
	snap, err := LoadSnapshot(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	// Step 2: Resolve jobs
	jobIDs := req.JobIDs
	if req.AllPending {
		jobIDs = pendingJobIDs(snap.Jobs)
	}
	logger.Debug("Resolved batch jobs", zap.Int("count", len(jobIDs)))

	// Step 3: Dispatch
	outcome := dispatch.BatchDispatch(snap, jobIDs, dispatch.BatchOptions{TrackCommitments: req.TrackCommitments})
	recorder.RecordBatch(len(outcome.Decisions), len(outcome.Unmatched), len(outcome.Skipped))

	for _, d := range outcome.Decisions {
		logger.Debug("Dispatch decision",
			zap.String("job_id", d.JobID),
			zap.String("employee_id", d.EmployeeID),
			zap.Float64("score", d.Score))
	}

	result := &BatchResult{Outcome: outcome, Snapshot: snap}

	if req.DryRun {
		logger.Info("Dry run, decisions not saved", zap.Int("decisions", len(outcome.Decisions)))
		return result, nil
	}

	// Step 4: Save decisions
	if err := store.UpdateJobAssignments(ctx, decisionAssignments(outcome.Decisions)); err != nil {
		return nil, fmt.Errorf("failed to save decisions: %w", err)
	}
	result.Saved = true

	logger.Info("Batch dispatch complete",
		zap.Int("assigned", len(outcome.Decisions)),
		zap.Int("unmatched", len(outcome.Unmatched)),
		zap.Int("skipped", len(outcome.Skipped)))

	return result, nil
}

// pendingJobIDs returns the ids of Pending jobs in history order
func pendingJobIDs(jobs []model.Job) []string {
	var ids []string
	for _, j := range jobs {
		if j.Status == model.JobStatusPending {
			ids = append(ids, j.ID)
		}
	}
	return ids
}

// decisionAssignments converts decisions into single-employee assignment lists
func decisionAssignments(decisions []dispatch.Decision) []db.JobAssignment {
	assignments := make([]db.JobAssignment, 0, len(decisions))
	for _, d := range decisions {
		assignments = append(assignments, db.JobAssignment{
			JobID:       d.JobID,
			EmployeeIDs: []string{d.EmployeeID},
		})
	}
	return assignments
}
