package db

import (
	"errors"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

// ErrRecordNotFound is returned when an update targets a record that does not exist
var ErrRecordNotFound = errors.New("record not found")

// JobAssignment replaces the full assignment list of one job.
// The job's status is derived from the list as model.Job.WithAssignments does.
type JobAssignment struct {
	JobID       string
	EmployeeIDs []string
}

// Dataset is the on-disk layout of a FileDB
type Dataset struct {
	Employees []model.Employee `yaml:"employees" validate:"dive"`
	Clients   []model.Client   `yaml:"clients" validate:"dive"`
	Absences  []model.Absence  `yaml:"absences" validate:"dive"`
	Jobs      []model.Job      `yaml:"jobs" validate:"dive"`
}
