package services

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/db"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/metrics"
)

// CandidatesResult is the ranked fit list for one job
type CandidatesResult struct {
	Job        model.Job
	Candidates []dispatch.Candidate

	// Selected is what AutoSelectStaff would assign
	Selected []string
}

// AutoSelectResult describes the assignment proposed (and unless dry run, saved) for one job
type AutoSelectResult struct {
	Job      model.Job
	Previous []string
	Selected []string
	Saved    bool
}

// ListCandidates ranks every employee for the job with the fit scorer
func ListCandidates(
	ctx context.Context,
	store db.SnapshotReader,
	logger *zap.Logger,
	recorder metrics.Recorder,
	jobID string,
) (*CandidatesResult, error) {
	logger.Debug("Listing candidates", zap.String("job_id", jobID))

	snap, err := LoadSnapshot(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	job := snap.Job(jobID)
	if job == nil {
		return nil, fmt.Errorf("failed to list candidates for %s: %w", jobID, ErrJobNotFound)
	}

	scorer := dispatch.NewFitScorer()
	candidates := dispatch.ComputeCandidates(snap, job, scorer)
	recordCandidates(recorder, scorer, candidates)

	return &CandidatesResult{
		Job:        *job,
		Candidates: candidates,
		Selected:   dispatch.SelectTopN(snap, job, scorer),
	}, nil
}

// AutoSelectStaff replaces the job's assignment list with the best fit employees.
// If dryRun is true, the selection is computed but not saved.
func AutoSelectStaff(
	ctx context.Context,
	store db.JobStore,
	logger *zap.Logger,
	recorder metrics.Recorder,
	jobID string,
	dryRun bool,
) (*AutoSelectResult, error) {
	logger.Debug("Starting autoSelectStaff", zap.String("job_id", jobID), zap.Bool("dry_run", dryRun))

	// Step 1: Load snapshot
	snap, err := LoadSnapshot(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	job := snap.Job(jobID)
	if job == nil {
		return nil, fmt.Errorf("failed to auto-select staff for %s: %w", jobID, ErrJobNotFound)
	}

	// Step 2: Score and select
	scorer := dispatch.NewFitScorer()
	candidates := dispatch.ComputeCandidates(snap, job, scorer)
	recordCandidates(recorder, scorer, candidates)

	selected := dispatch.SelectTopN(snap, job, scorer)
	logger.Debug("Selected staff",
		zap.Strings("selected", selected),
		zap.Int("required", job.RequiredStaff()),
		zap.Int("candidates", len(candidates)))

	result := &AutoSelectResult{
		Job:      job.WithAssignments(selected),
		Previous: slices.Clone(job.AssignedEmployeeIDs),
		Selected: selected,
	}

	if dryRun {
		logger.Info("Dry run, assignment not saved", zap.String("job_id", jobID))
		return result, nil
	}

	// Step 3: Save the full replacement list
	if err := store.UpdateJobAssignments(ctx, []db.JobAssignment{{JobID: jobID, EmployeeIDs: selected}}); err != nil {
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}
	result.Saved = true

	logger.Info("Staff auto-selected",
		zap.String("job_id", jobID),
		zap.Int("assigned", len(selected)),
		zap.String("status", string(result.Job.Status)))

	return result, nil
}

// AssignStaff replaces the job's assignment list with the given employees.
// Every employee must exist and must not be disqualified for the job.
func AssignStaff(
	ctx context.Context,
	store db.JobStore,
	logger *zap.Logger,
	jobID string,
	employeeIDs []string,
) (*model.Job, error) {
	logger.Debug("Assigning staff", zap.String("job_id", jobID), zap.Strings("employee_ids", employeeIDs))

	snap, err := LoadSnapshot(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	job := snap.Job(jobID)
	if job == nil {
		return nil, fmt.Errorf("failed to assign staff to %s: %w", jobID, ErrJobNotFound)
	}

	scorer := dispatch.NewFitScorer()
	for _, id := range employeeIDs {
		emp := snap.Employee(id)
		if emp == nil {
			return nil, fmt.Errorf("failed to assign %s: %w", id, ErrEmployeeNotFound)
		}
		if result := scorer.Score(snap, emp, job); result.Disqualified {
			return nil, fmt.Errorf("failed to assign %s (%s): %w", id, result.Reason, ErrEmployeeDisqualified)
		}
	}

	updated := job.WithAssignments(employeeIDs)
	if err := store.UpdateJobAssignments(ctx, []db.JobAssignment{{JobID: jobID, EmployeeIDs: updated.AssignedEmployeeIDs}}); err != nil {
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	logger.Info("Staff assigned",
		zap.String("job_id", jobID),
		zap.Strings("employee_ids", updated.AssignedEmployeeIDs),
		zap.String("status", string(updated.Status)))

	return &updated, nil
}

func recordCandidates(recorder metrics.Recorder, scorer dispatch.Scorer, candidates []dispatch.Candidate) {
	disqualified := 0
	for _, c := range candidates {
		if c.Result.Disqualified {
			disqualified++
		}
	}
	recorder.RecordCandidates(scorer.Name(), len(candidates), disqualified)
}
