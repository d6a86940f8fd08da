package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

func rosterConfig() *config.Config {
	return &config.Config{
		Roster: &config.RosterConfig{SpreadsheetID: "sheet_1", EmployeesTab: "Staff", ClientsTab: "Clients"},
	}
}

func TestImportRoster_Success(t *testing.T) {
	store := &mockStore{}
	roster := &mockRoster{
		employees: []model.Employee{newEmployee("emp_1", "Ana"), newEmployee("emp_2", "Ben")},
		clients:   []model.Client{newClient("client_1")},
	}

	result, err := ImportRoster(context.Background(), store, roster, rosterConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, &ImportResult{Employees: 2, Clients: 1}, result)
	assert.Equal(t, roster.employees, store.upsertedEmployees)
	assert.Equal(t, roster.clients, store.upsertedClients)
}

func TestImportRoster_NothingWrittenOnInvalidRecord(t *testing.T) {
	bad := newEmployee("emp_2", "Ben")
	bad.PreferredWorkingDays = []string{"Funday"}

	tests := []struct {
		name      string
		employees []model.Employee
		clients   []model.Client
		errMsg    string
	}{
		{
			name:      "invalid working day",
			employees: []model.Employee{newEmployee("emp_1", "Ana"), bad},
			clients:   []model.Client{newClient("client_1")},
			errMsg:    "invalid employee: emp_2",
		},
		{
			name:      "duplicate client",
			employees: []model.Employee{newEmployee("emp_1", "Ana")},
			clients:   []model.Client{newClient("client_1"), newClient("client_1")},
			errMsg:    "duplicate id client_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			roster := &mockRoster{employees: tt.employees, clients: tt.clients}

			_, err := ImportRoster(context.Background(), store, roster, rosterConfig(), zap.NewNop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, store.upsertedEmployees)
			assert.Empty(t, store.upsertedClients)
		})
	}
}

func TestImportRoster_NotConfigured(t *testing.T) {
	_, err := ImportRoster(context.Background(), &mockStore{}, &mockRoster{}, &config.Config{}, zap.NewNop())
	assert.EqualError(t, err, "roster is not configured")
}

func TestImportRoster_FetchError(t *testing.T) {
	roster := &mockRoster{listErr: errors.New("quota exceeded")}

	_, err := ImportRoster(context.Background(), &mockStore{}, roster, rosterConfig(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch employees")
}
