package dispatch

import "github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"

// Factor is one weighted component of the fit score.
// Each factor reports its own maximum so the overall cap follows any reweighting.
type Factor interface {
	// Name returns the name of the factor, used as the breakdown key
	Name() string

	// Max returns the largest contribution this factor can make
	Max() float64

	// Evaluate returns the factor's raw contribution. The scorer clamps it to [0, Max].
	// client is nil when the job references an unknown client.
	Evaluate(snap *Snapshot, emp *model.Employee, job *model.Job, client *model.Client) float64
}

// DefaultFactors returns the factor set used for single job selection:
// day preference 20, hour preference 20, utilization 30, client frequency 40, proximity 30
func DefaultFactors() []Factor {
	return []Factor{
		NewDayPreferenceFactor(20),
		NewHourPreferenceFactor(20),
		NewUtilizationFactor(30),
		NewClientFrequencyFactor(4, 40),
		NewProximityFactor(30, 15),
	}
}

// FitScorer is the single job scoring strategy.
//
// Disqualified if:
//   - The employee is on leave on the job date
//   - The employee is already assigned to another job at the same date and start time
//   - The client has rejected the employee
//
// Otherwise returns the sum of all factor contributions, each clamped to its
// own maximum, with the total clamped to [0, MaxScore].
//
// A job without a date or start time scores 0 for everyone and is never disqualifying.
type FitScorer struct {
	factors []Factor
	policy  EligibilityPolicy
}

// NewFitScorer creates a FitScorer with the default factor set
func NewFitScorer() *FitScorer {
	return NewFitScorerWithFactors(DefaultFactors()...)
}

// NewFitScorerWithFactors creates a FitScorer with a custom factor set
func NewFitScorerWithFactors(factors ...Factor) *FitScorer {
	return &FitScorer{
		factors: factors,
		policy:  ClientVetoPolicy{},
	}
}

func (s *FitScorer) Name() string {
	return "Fit"
}

// MaxScore returns the sum of the factor maxima (140 for the default set)
func (s *FitScorer) MaxScore() float64 {
	total := 0.0
	for _, factor := range s.factors {
		total += factor.Max()
	}
	return total
}

// Factors returns the factors in evaluation order
func (s *FitScorer) Factors() []Factor {
	return s.factors
}

func (s *FitScorer) Score(snap *Snapshot, emp *model.Employee, job *model.Job) Result {
	if !job.IsScheduled() {
		return Result{}
	}

	// Step 1: Hard disqualifiers short circuit everything else
	if blocked, reason := IsBlocked(snap, emp, job); blocked {
		return disqualified(reason)
	}

	client := snap.Client(job.ClientID)
	if eligible, reason := s.policy.IsEligible(emp, job, client); !eligible {
		return disqualified(reason)
	}

	// Step 2: Sum the factors, each bounded by its own maximum
	breakdown := make(map[string]float64, len(s.factors))
	total := 0.0
	for _, factor := range s.factors {
		value := clamp(factor.Evaluate(snap, emp, job, client), 0, factor.Max())
		breakdown[factor.Name()] = value
		total += value
	}

	// Step 3: Clamp the total to the overall cap
	return Result{
		Value:     clamp(total, 0, s.MaxScore()),
		Breakdown: breakdown,
	}
}
