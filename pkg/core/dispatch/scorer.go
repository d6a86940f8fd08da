package dispatch

import "github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"

// DisqualifiedScore is the value reported for an employee who cannot take a job
const DisqualifiedScore = -1.0

// Scorer is a named scoring strategy for an (employee, job) pair.
//
// Two strategies exist and each call site picks one explicitly:
//   - FitScorer for single job selection (bounded by the sum of its factor maxima)
//   - SimpleScorer for batch dispatch (bounded by 100)
type Scorer interface {
	// Name returns the name of the strategy
	Name() string

	// MaxScore returns the upper bound of a non-disqualified score
	MaxScore() float64

	// Score evaluates the employee for the job against the snapshot.
	// Must be a pure function of its inputs.
	Score(snap *Snapshot, emp *model.Employee, job *model.Job) Result
}

// Result is the outcome of scoring one employee for one job
type Result struct {
	// Value is the clamped score. Always 0 when Disqualified is set.
	Value float64

	Disqualified bool
	Reason       Reason

	// Breakdown holds the clamped contribution of each factor by name.
	// Empty when the employee was disqualified or the job is not yet scheduled.
	Breakdown map[string]float64
}

// Sentinel returns the score with disqualification folded in as -1
func (r Result) Sentinel() float64 {
	if r.Disqualified {
		return DisqualifiedScore
	}
	return r.Value
}

func disqualified(reason Reason) Result {
	return Result{Disqualified: true, Reason: reason}
}

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
