package dispatch

import (
	"strings"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

const (
	simpleBase          = 50.0
	simpleLocationBonus = 30.0
	simpleUtilization   = 20.0
	simplePreferred     = 25.0
	simpleRejected      = 100.0
	simpleMax           = 100.0
)

// SimpleScorer is the batch dispatch scoring strategy.
//
// Disqualified if:
//   - The employee is on leave on the job date
//   - The employee is already assigned to another job at the same date and start time
//   - The employee's remaining weekly hours are below the job's estimate
//   - The client has rejected the employee
//
// Otherwise starts at 50 and adds:
//   - 30 if the job address contains the employee's location (case insensitive)
//   - (1 - utilization) * 20
//   - 25 if the client prefers the employee
//
// then subtracts 100 if the client rejects the employee (never reached while
// the veto applies) and clamps to [0, 100].
type SimpleScorer struct {
	policy EligibilityPolicy
}

// NewSimpleScorer creates a SimpleScorer gated by CapacityGatedPolicy
func NewSimpleScorer() *SimpleScorer {
	return &SimpleScorer{policy: CapacityGatedPolicy{}}
}

func (s *SimpleScorer) Name() string {
	return "Simple"
}

func (s *SimpleScorer) MaxScore() float64 {
	return simpleMax
}

func (s *SimpleScorer) Score(snap *Snapshot, emp *model.Employee, job *model.Job) Result {
	if !job.IsScheduled() {
		return Result{}
	}

	if blocked, reason := IsBlocked(snap, emp, job); blocked {
		return disqualified(reason)
	}

	client := snap.Client(job.ClientID)
	if eligible, reason := s.policy.IsEligible(emp, job, client); !eligible {
		return disqualified(reason)
	}

	breakdown := map[string]float64{"Base": simpleBase}
	total := simpleBase

	if strings.Contains(strings.ToLower(job.Address), strings.ToLower(emp.Location)) {
		breakdown["Location"] = simpleLocationBonus
		total += simpleLocationBonus
	}

	// Utilization is not clamped here; the capacity gate keeps it at or below 1
	utilization := (1 - emp.Utilization()) * simpleUtilization
	breakdown["Utilization"] = utilization
	total += utilization

	if client != nil && client.IsPreferred(emp.ID) {
		breakdown["Preferred"] = simplePreferred
		total += simplePreferred
	}
	if client != nil && client.IsRejected(emp.ID) {
		breakdown["Rejected"] = -simpleRejected
		total -= simpleRejected
	}

	return Result{
		Value:     clamp(total, 0, simpleMax),
		Breakdown: breakdown,
	}
}
