package dispatch

import (
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

// BatchThreshold is the score a candidate must exceed to be dispatched in batch mode
const BatchThreshold = 40.0

// BatchOptions controls how a batch run treats its own decisions
type BatchOptions struct {
	// TrackCommitments feeds each decision into the checks for later jobs in the
	// same run: the job is treated as Assigned to the chosen employee, and its
	// estimated hours count against that employee's remaining capacity.
	//
	// Off by default, in which case every job is scored against the pre-batch
	// snapshot and one employee can be booked twice for the same slot.
	TrackCommitments bool
}

// Decision assigns one employee to one job
type Decision struct {
	JobID      string  `json:"jobId"`
	EmployeeID string  `json:"employeeId"`
	Score      float64 `json:"score"`
}

// BatchOutcome is the result of one batch run
type BatchOutcome struct {
	// Decisions in job processing order
	Decisions []Decision `json:"decisions"`

	// Unmatched holds Pending jobs for which no candidate scored above the threshold
	Unmatched []string `json:"unmatched"`

	// Skipped holds jobs that were not Pending and were left alone
	Skipped []string `json:"skipped"`
}

// Dispatch assigns the single best candidate to each Pending job, in input order.
//
// Each job independently scores all employees with SimpleScorer, keeps those scoring
// above BatchThreshold and takes the top one. A partial result, where some jobs stay
// unmatched, is valid output.
//
// Neither the snapshot nor the jobs are modified.
func Dispatch(snap *Snapshot, jobs []model.Job, opts BatchOptions) *BatchOutcome {
	scorer := NewSimpleScorer()
	outcome := &BatchOutcome{
		Decisions: []Decision{},
		Unmatched: []string{},
		Skipped:   []string{},
	}

	current := snap
	for i := range jobs {
		job := &jobs[i]
		if job.Status != model.JobStatusPending {
			outcome.Skipped = append(outcome.Skipped, job.ID)
			continue
		}

		best, ok := bestCandidate(current, job, scorer)
		if !ok {
			outcome.Unmatched = append(outcome.Unmatched, job.ID)
			continue
		}

		outcome.Decisions = append(outcome.Decisions, Decision{
			JobID:      job.ID,
			EmployeeID: best.EmployeeID,
			Score:      best.Score,
		})

		if opts.TrackCommitments {
			current = commit(current, job, best.EmployeeID)
		}
	}

	return outcome
}

// BatchDispatch resolves job ids against the snapshot's job history and dispatches them.
// Ids are processed in the order given; unknown and repeated ids are ignored.
func BatchDispatch(snap *Snapshot, jobIDs []string, opts BatchOptions) *BatchOutcome {
	seen := make(map[string]bool, len(jobIDs))
	jobs := make([]model.Job, 0, len(jobIDs))
	for _, id := range jobIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if job := snap.Job(id); job != nil {
			jobs = append(jobs, *job)
		}
	}

	return Dispatch(snap, jobs, opts)
}

// bestCandidate returns the top ranked employee scoring above the threshold
func bestCandidate(snap *Snapshot, job *model.Job, scorer Scorer) (Candidate, bool) {
	candidates := ComputeCandidates(snap, job, scorer)
	if len(candidates) == 0 || candidates[0].Score <= BatchThreshold {
		return Candidate{}, false
	}
	return candidates[0], true
}

// commit returns a snapshot in which the job is assigned to the employee and
// the employee's worked hours include the job's estimate
func commit(snap *Snapshot, job *model.Job, employeeID string) *Snapshot {
	assigned := job.WithAssignments([]string{employeeID})

	jobs := make([]model.Job, 0, len(snap.Jobs)+1)
	replaced := false
	for _, existing := range snap.Jobs {
		if existing.ID == assigned.ID {
			jobs = append(jobs, assigned)
			replaced = true
			continue
		}
		jobs = append(jobs, existing)
	}
	if !replaced {
		jobs = append(jobs, assigned)
	}

	employees := make([]model.Employee, len(snap.Employees))
	copy(employees, snap.Employees)
	for i := range employees {
		if employees[i].ID == employeeID {
			employees[i].HoursWorkedThisWeek += job.EstimatedHours
		}
	}

	next := snap.withEmployees(employees)
	next.Jobs = jobs
	return next
}
