package db

import (
	"context"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

// SnapshotReader defines the reads needed to build a dispatch snapshot
type SnapshotReader interface {
	GetEmployees(ctx context.Context) ([]model.Employee, error)
	GetClients(ctx context.Context) ([]model.Client, error)
	GetAbsences(ctx context.Context) ([]model.Absence, error)
	// GetJobs orders by scheduled date (unscheduled last), then start time, then id
	GetJobs(ctx context.Context) ([]model.Job, error)
}

// JobStore defines the interface for job database operations
type JobStore interface {
	SnapshotReader
	InsertJobs(ctx context.Context, jobs []model.Job) error
	UpdateJobAssignments(ctx context.Context, assignments []JobAssignment) error
}

// RosterStore defines the interface for employee and client upserts
type RosterStore interface {
	UpsertEmployees(ctx context.Context, employees []model.Employee) error
	UpsertClients(ctx context.Context, clients []model.Client) error
}

// Database defines the interface for all database operations.
// Both the YAML-backed db.FileDB and postgres.DB implement this interface.
type Database interface {
	JobStore
	RosterStore
}
