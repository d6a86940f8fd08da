package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/db"
)

// LoadSnapshot reads employees, clients, absences and jobs concurrently and
// builds the engine's view of them. Archived employees, clients and jobs are left out.
func LoadSnapshot(ctx context.Context, store db.SnapshotReader, logger *zap.Logger) (*dispatch.Snapshot, error) {
	var (
		employees []model.Employee
		clients   []model.Client
		absences  []model.Absence
		jobs      []model.Job
	)

	logger.Debug("Loading snapshot")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if employees, err = store.GetEmployees(gctx); err != nil {
			return fmt.Errorf("failed to fetch employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if clients, err = store.GetClients(gctx); err != nil {
			return fmt.Errorf("failed to fetch clients: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if absences, err = store.GetAbsences(gctx); err != nil {
			return fmt.Errorf("failed to fetch absences: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if jobs, err = store.GetJobs(gctx); err != nil {
			return fmt.Errorf("failed to fetch jobs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	employees = filterArchived(employees, func(e model.Employee) bool { return e.IsArchived })
	clients = filterArchived(clients, func(c model.Client) bool { return c.IsArchived })
	jobs = filterArchived(jobs, func(j model.Job) bool { return j.IsArchived })

	logger.Debug("Snapshot loaded",
		zap.Int("employees", len(employees)),
		zap.Int("clients", len(clients)),
		zap.Int("absences", len(absences)),
		zap.Int("jobs", len(jobs)))

	return dispatch.NewSnapshot(employees, clients, absences, jobs), nil
}

// filterArchived returns the records for which archived is false, keeping order
func filterArchived[T any](records []T, archived func(T) bool) []T {
	kept := make([]T, 0, len(records))
	for _, r := range records {
		if !archived(r) {
			kept = append(kept, r)
		}
	}
	return kept
}
