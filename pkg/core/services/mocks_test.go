package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/db"
)

const (
	testDate = "2024-01-03" // Wednesday
	testTime = "09:00"
)

// mockStore implements db.Database for testing
type mockStore struct {
	employees []model.Employee
	clients   []model.Client
	absences  []model.Absence
	jobs      []model.Job

	insertedJobs      []model.Job
	assignments       []db.JobAssignment
	upsertedEmployees []model.Employee
	upsertedClients   []model.Client

	getEmployeesErr error
	getJobsErr      error
	insertJobsErr   error
	updateErr       error
	upsertErr       error
}

func (m *mockStore) GetEmployees(ctx context.Context) ([]model.Employee, error) {
	if m.getEmployeesErr != nil {
		return nil, m.getEmployeesErr
	}
	return m.employees, nil
}

func (m *mockStore) GetClients(ctx context.Context) ([]model.Client, error) {
	return m.clients, nil
}

func (m *mockStore) GetAbsences(ctx context.Context) ([]model.Absence, error) {
	return m.absences, nil
}

func (m *mockStore) GetJobs(ctx context.Context) ([]model.Job, error) {
	if m.getJobsErr != nil {
		return nil, m.getJobsErr
	}
	return m.jobs, nil
}

func (m *mockStore) InsertJobs(ctx context.Context, jobs []model.Job) error {
	if m.insertJobsErr != nil {
		return m.insertJobsErr
	}
	m.insertedJobs = append(m.insertedJobs, jobs...)
	return nil
}

func (m *mockStore) UpdateJobAssignments(ctx context.Context, assignments []db.JobAssignment) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.assignments = append(m.assignments, assignments...)
	return nil
}

func (m *mockStore) UpsertEmployees(ctx context.Context, employees []model.Employee) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertedEmployees = append(m.upsertedEmployees, employees...)
	return nil
}

func (m *mockStore) UpsertClients(ctx context.Context, clients []model.Client) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertedClients = append(m.upsertedClients, clients...)
	return nil
}

// mockRoster implements RosterClient for testing
type mockRoster struct {
	employees []model.Employee
	clients   []model.Client
	listErr   error
}

func (m *mockRoster) ListEmployees(ctx context.Context, cfg *config.RosterConfig) ([]model.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.employees, nil
}

func (m *mockRoster) ListClients(ctx context.Context, cfg *config.RosterConfig) ([]model.Client, error) {
	return m.clients, nil
}

// mockMailer implements Mailer for testing. Addresses in failFor are rejected.
type mockMailer struct {
	sent    []string
	failFor map[string]bool
}

func (m *mockMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.failFor[to] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, fmt.Sprintf("%s|%s", to, subject))
	return nil
}

// mockSheet implements SheetAppender for testing
type mockSheet struct {
	spreadsheetID string
	sheetRange    string
	rows          [][]interface{}
	appendErr     error
}

func (m *mockSheet) AppendRows(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.spreadsheetID = spreadsheetID
	m.sheetRange = sheetRange
	m.rows = append(m.rows, values...)
	return nil
}

func newEmployee(id, firstName string) model.Employee {
	return model.Employee{
		ID:                         id,
		FirstName:                  firstName,
		LastName:                   "Test",
		Email:                      id + "@example.com",
		Street:                     "12 Oak Road",
		City:                       "Leeds",
		Location:                   "Leeds",
		Role:                       model.RoleCleaner,
		WeeklyHours:                40,
		PreferredWorkingDays:       []string{"Monday", "Wednesday"},
		PreferredWorkingHoursStart: "08:00",
		PreferredWorkingHoursEnd:   "17:00",
		IsActive:                   true,
	}
}

func newClient(id string) model.Client {
	return model.Client{
		ID:      id,
		Name:    "Harbour View Ltd",
		Street:  "Flat 3, Harbour View",
		ZipCity: "BN1 Brighton",
	}
}

func newJob(id string) model.Job {
	return model.Job{
		ID:             id,
		ClientID:       "client_1",
		ScheduledDate:  testDate,
		StartTime:      testTime,
		EstimatedHours: 3,
		StaffNeeded:    1,
		Status:         model.JobStatusPending,
		Address:        "Flat 3, Harbour View, Brighton",
	}
}

// newStore returns a store with two employees, one client and the given jobs
func newStore(jobs ...model.Job) *mockStore {
	return &mockStore{
		employees: []model.Employee{newEmployee("emp_1", "Ana"), newEmployee("emp_2", "Ben")},
		clients:   []model.Client{newClient("client_1")},
		jobs:      jobs,
	}
}
