package dispatch

import (
	"sort"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

// Candidate is one employee's standing for a job
type Candidate struct {
	EmployeeID string
	Name       string

	// Score is the sentinel score: -1 when disqualified
	Score  float64
	Result Result
}

// ComputeCandidates scores every employee in the snapshot for the job and
// returns them ranked by score, highest first.
//
// Equal scores keep the snapshot's employee order. Disqualified employees
// are included at -1 so callers can render them as unavailable.
func ComputeCandidates(snap *Snapshot, job *model.Job, scorer Scorer) []Candidate {
	candidates := make([]Candidate, 0, len(snap.Employees))
	for i := range snap.Employees {
		emp := &snap.Employees[i]
		result := scorer.Score(snap, emp, job)
		candidates = append(candidates, Candidate{
			EmployeeID: emp.ID,
			Name:       emp.DisplayName(),
			Score:      result.Sentinel(),
			Result:     result,
		})
	}

	rankCandidates(candidates)
	return candidates
}

// SelectTopN returns the ids of the best employees for the job, at most
// job.RequiredStaff() of them.
//
// Only employees with a score strictly above 0 are proposed. When fewer qualify
// the list is shorter; it is never padded. The caller replaces the job's whole
// assignment list with the result.
func SelectTopN(snap *Snapshot, job *model.Job, scorer Scorer) []string {
	candidates := ComputeCandidates(snap, job, scorer)

	selected := make([]string, 0, job.RequiredStaff())
	for _, candidate := range candidates {
		if len(selected) == job.RequiredStaff() {
			break
		}
		if candidate.Score <= 0 {
			// Ranked descending, nothing further can qualify
			break
		}
		selected = append(selected, candidate.EmployeeID)
	}

	return selected
}

// rankCandidates sorts by score descending. Must stay stable: ties have no secondary key.
func rankCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}
