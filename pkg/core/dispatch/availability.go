package dispatch

import "github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"

// Reason identifies why an employee was disqualified from a job
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonOnLeave              Reason = "on_leave"
	ReasonTimeConflict         Reason = "time_conflict"
	ReasonClientRejected       Reason = "client_rejected"
	ReasonInsufficientCapacity Reason = "insufficient_capacity"
)

// IsOnLeave returns true if any absence of the employee covers the date.
// The absence status is not consulted: pending and approved leave both block.
func IsOnLeave(absences []model.Absence, employeeID, date string) bool {
	for i := range absences {
		if absences[i].EmployeeID == employeeID && absences[i].Covers(date) {
			return true
		}
	}
	return false
}

// HasTimeConflict returns true if the employee is already assigned to another
// non-cancelled job with the same date and the same start time.
//
// Only exact start time equality counts. Two jobs on the same day whose
// durations overlap but whose start times differ are not a conflict.
func HasTimeConflict(jobs []model.Job, employeeID string, job *model.Job) bool {
	for i := range jobs {
		existing := &jobs[i]
		if existing.ID == job.ID {
			continue
		}
		if existing.Status == model.JobStatusCancelled {
			continue
		}
		if existing.ScheduledDate != job.ScheduledDate || existing.StartTime != job.StartTime {
			continue
		}
		if existing.HasEmployee(employeeID) {
			return true
		}
	}
	return false
}

// IsBlocked reports whether the employee cannot work the job at all because of
// leave or a clashing commitment, and which of the two applies
func IsBlocked(snap *Snapshot, emp *model.Employee, job *model.Job) (bool, Reason) {
	if IsOnLeave(snap.Absences, emp.ID, job.ScheduledDate) {
		return true, ReasonOnLeave
	}
	if HasTimeConflict(snap.Jobs, emp.ID, job) {
		return true, ReasonTimeConflict
	}
	return false, ReasonNone
}
