package dispatch

import "github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"

// EligibilityPolicy decides whether an employee may be scored for a job at all.
// Returns the disqualification reason when the employee is excluded.
//
// The single-job and batch paths use different policies on purpose:
// capacity only lowers the single-job score, but excludes outright in batch mode.
type EligibilityPolicy interface {
	Name() string
	IsEligible(emp *model.Employee, job *model.Job, client *model.Client) (bool, Reason)
}

// IsClientRejected returns true if the client refuses the employee.
// A missing client never rejects anyone.
func IsClientRejected(client *model.Client, employeeID string) bool {
	return client != nil && client.IsRejected(employeeID)
}

// HasRemainingCapacity returns true if the employee's unworked weekly hours cover the job's estimate
func HasRemainingCapacity(emp *model.Employee, job *model.Job) bool {
	return emp.RemainingHours() >= job.EstimatedHours
}

// ClientVetoPolicy excludes employees the client has rejected and nothing else
type ClientVetoPolicy struct{}

func (ClientVetoPolicy) Name() string {
	return "ClientVeto"
}

func (ClientVetoPolicy) IsEligible(emp *model.Employee, job *model.Job, client *model.Client) (bool, Reason) {
	if IsClientRejected(client, emp.ID) {
		return false, ReasonClientRejected
	}
	return true, ReasonNone
}

// CapacityGatedPolicy applies the client veto and also excludes employees
// whose remaining weekly hours are below the job's estimated hours
type CapacityGatedPolicy struct{}

func (CapacityGatedPolicy) Name() string {
	return "CapacityGated"
}

func (CapacityGatedPolicy) IsEligible(emp *model.Employee, job *model.Job, client *model.Client) (bool, Reason) {
	if !HasRemainingCapacity(emp, job) {
		return false, ReasonInsufficientCapacity
	}
	if IsClientRejected(client, emp.ID) {
		return false, ReasonClientRejected
	}
	return true, ReasonNone
}
