package dispatch

import "github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"

// Snapshot is the read-only view of the records the engine scores against.
// Every scoring call receives a snapshot explicitly; nothing is read from shared state.
type Snapshot struct {
	Employees []model.Employee
	Clients   []model.Client
	Absences  []model.Absence

	// Jobs is the job history used for time conflicts, visit frequency and prior location
	Jobs []model.Job

	clientIndex map[string]*model.Client
}

// NewSnapshot builds a snapshot and indexes clients by id.
// The slices are not copied; callers must not modify them while the snapshot is in use.
func NewSnapshot(employees []model.Employee, clients []model.Client, absences []model.Absence, jobs []model.Job) *Snapshot {
	s := &Snapshot{
		Employees: employees,
		Clients:   clients,
		Absences:  absences,
		Jobs:      jobs,
	}
	s.clientIndex = make(map[string]*model.Client, len(clients))
	for i := range clients {
		s.clientIndex[clients[i].ID] = &clients[i]
	}
	return s
}

// Client returns the client with the given id, or nil if it is not in the snapshot
func (s *Snapshot) Client(id string) *model.Client {
	if s.clientIndex != nil {
		return s.clientIndex[id]
	}
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return &s.Clients[i]
		}
	}
	return nil
}

// Job returns the job with the given id from the history, or nil
func (s *Snapshot) Job(id string) *model.Job {
	for i := range s.Jobs {
		if s.Jobs[i].ID == id {
			return &s.Jobs[i]
		}
	}
	return nil
}

// Employee returns the employee with the given id, or nil
func (s *Snapshot) Employee(id string) *model.Employee {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return &s.Employees[i]
		}
	}
	return nil
}

// WithJobs returns a new snapshot whose job history has extra jobs appended.
// The receiver is left untouched.
func (s *Snapshot) WithJobs(extra ...model.Job) *Snapshot {
	jobs := make([]model.Job, 0, len(s.Jobs)+len(extra))
	jobs = append(jobs, s.Jobs...)
	jobs = append(jobs, extra...)

	return &Snapshot{
		Employees:   s.Employees,
		Clients:     s.Clients,
		Absences:    s.Absences,
		Jobs:        jobs,
		clientIndex: s.clientIndex,
	}
}

// withEmployees returns a new snapshot with a replaced employee list
func (s *Snapshot) withEmployees(employees []model.Employee) *Snapshot {
	return &Snapshot{
		Employees:   employees,
		Clients:     s.Clients,
		Absences:    s.Absences,
		Jobs:        s.Jobs,
		clientIndex: s.clientIndex,
	}
}
