package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/db"
)

// RosterClient reads employee and client records from the roster spreadsheet
type RosterClient interface {
	ListEmployees(ctx context.Context, cfg *config.RosterConfig) ([]model.Employee, error)
	ListClients(ctx context.Context, cfg *config.RosterConfig) ([]model.Client, error)
}

// ImportResult counts the records written by ImportRoster
type ImportResult struct {
	Employees int
	Clients   int
}

// ImportRoster copies employees and clients from the roster spreadsheet into the store.
// Every record is validated before anything is written.
func ImportRoster(
	ctx context.Context,
	store db.RosterStore,
	roster RosterClient,
	cfg *config.Config,
	logger *zap.Logger,
) (*ImportResult, error) {
	if cfg.Roster == nil {
		return nil, fmt.Errorf("roster is not configured")
	}

	// Step 1: Sheets query - Fetch employees and clients
	logger.Debug("Fetching roster employees", zap.String("tab", cfg.Roster.EmployeesTab))
	employees, err := roster.ListEmployees(ctx, cfg.Roster)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	logger.Debug("Fetching roster clients", zap.String("tab", cfg.Roster.ClientsTab))
	clients, err := roster.ListClients(ctx, cfg.Roster)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}

	// Step 2: Validate
	if err := validateRecords(employees, func(e model.Employee) string { return e.ID }); err != nil {
		return nil, fmt.Errorf("invalid employee: %w", err)
	}
	if err := validateRecords(clients, func(c model.Client) string { return c.ID }); err != nil {
		return nil, fmt.Errorf("invalid client: %w", err)
	}
	logger.Debug("Roster validated", zap.Int("employees", len(employees)), zap.Int("clients", len(clients)))

	// Step 3: Upsert
	if err := store.UpsertEmployees(ctx, employees); err != nil {
		return nil, fmt.Errorf("failed to save employees: %w", err)
	}
	if err := store.UpsertClients(ctx, clients); err != nil {
		return nil, fmt.Errorf("failed to save clients: %w", err)
	}

	logger.Info("Roster imported", zap.Int("employees", len(employees)), zap.Int("clients", len(clients)))

	return &ImportResult{Employees: len(employees), Clients: len(clients)}, nil
}

// validateRecords runs struct validation on each record and rejects duplicate ids
func validateRecords[T any](records []T, id func(T) string) error {
	seen := make(map[string]bool, len(records))
	for i := range records {
		key := id(records[i])
		if seen[key] {
			return fmt.Errorf("duplicate id %s", key)
		}
		seen[key] = true

		if err := validate.Struct(&records[i]); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
