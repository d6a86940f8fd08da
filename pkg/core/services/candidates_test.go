package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/metrics"
)

func TestListCandidates_RanksEmployees(t *testing.T) {
	store := newStore(newJob("job_1"))
	store.absences = []model.Absence{{ID: "abs_1", EmployeeID: "emp_1", StartDate: testDate, EndDate: testDate}}

	result, err := ListCandidates(context.Background(), store, zap.NewNop(), metrics.NewNop(), "job_1")
	require.NoError(t, err)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "emp_2", result.Candidates[0].EmployeeID)
	assert.Equal(t, 70.0, result.Candidates[0].Score)
	assert.Equal(t, "emp_1", result.Candidates[1].EmployeeID)
	assert.Equal(t, dispatch.DisqualifiedScore, result.Candidates[1].Score)
	assert.Equal(t, dispatch.ReasonOnLeave, result.Candidates[1].Result.Reason)
	assert.Equal(t, []string{"emp_2"}, result.Selected)
}

func TestListCandidates_UnknownJob(t *testing.T) {
	_, err := ListCandidates(context.Background(), newStore(), zap.NewNop(), metrics.NewNop(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestAutoSelectStaff_SavesReplacementList(t *testing.T) {
	job := newJob("job_1")
	job.StaffNeeded = 2
	job.AssignedEmployeeIDs = []string{"emp_9"}
	job.Status = model.JobStatusAssigned
	store := newStore(job)

	result, err := AutoSelectStaff(context.Background(), store, zap.NewNop(), metrics.NewNop(), "job_1", false)
	require.NoError(t, err)

	assert.True(t, result.Saved)
	assert.Equal(t, []string{"emp_9"}, result.Previous)
	assert.Equal(t, []string{"emp_1", "emp_2"}, result.Selected)
	assert.Equal(t, model.JobStatusAssigned, result.Job.Status)

	require.Len(t, store.assignments, 1)
	assert.Equal(t, "job_1", store.assignments[0].JobID)
	assert.Equal(t, []string{"emp_1", "emp_2"}, store.assignments[0].EmployeeIDs)
}

func TestAutoSelectStaff_DryRun(t *testing.T) {
	store := newStore(newJob("job_1"))

	result, err := AutoSelectStaff(context.Background(), store, zap.NewNop(), metrics.NewNop(), "job_1", true)
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Equal(t, []string{"emp_1"}, result.Selected)
	assert.Empty(t, store.assignments)
}

func TestAutoSelectStaff_NoQualifiedStaffRevertsToPending(t *testing.T) {
	job := newJob("job_1")
	job.AssignedEmployeeIDs = []string{"emp_1"}
	job.Status = model.JobStatusAssigned
	store := newStore(job)
	store.clients[0].RejectedEmployeeIDs = []string{"emp_1", "emp_2"}

	result, err := AutoSelectStaff(context.Background(), store, zap.NewNop(), metrics.NewNop(), "job_1", false)
	require.NoError(t, err)

	assert.Empty(t, result.Selected)
	assert.Equal(t, model.JobStatusPending, result.Job.Status)
	require.Len(t, store.assignments, 1)
	assert.Empty(t, store.assignments[0].EmployeeIDs)
}

func TestAssignStaff(t *testing.T) {
	tests := []struct {
		name        string
		employeeIDs []string
		wantErr     error
	}{
		{"assigns known employees", []string{"emp_2", "emp_1", "emp_2"}, nil},
		{"unknown employee", []string{"emp_1", "emp_9"}, ErrEmployeeNotFound},
		{"employee on leave", []string{"emp_1"}, ErrEmployeeDisqualified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(newJob("job_1"))
			if tt.wantErr == ErrEmployeeDisqualified {
				store.absences = []model.Absence{{ID: "abs_1", EmployeeID: "emp_1", StartDate: "2024-01-01", EndDate: "2024-01-05"}}
			}

			job, err := AssignStaff(context.Background(), store, zap.NewNop(), "job_1", tt.employeeIDs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.assignments)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{"emp_2", "emp_1"}, job.AssignedEmployeeIDs)
			assert.Equal(t, model.JobStatusAssigned, job.Status)
			require.Len(t, store.assignments, 1)
			assert.Equal(t, []string{"emp_2", "emp_1"}, store.assignments[0].EmployeeIDs)
		})
	}
}

func TestAssignStaff_UnknownJob(t *testing.T) {
	_, err := AssignStaff(context.Background(), newStore(), zap.NewNop(), "missing", []string{"emp_1"})
	assert.ErrorIs(t, err, ErrJobNotFound)
}
