package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

func TestComputeCandidates_RanksDescendingWithDisqualifiedLast(t *testing.T) {
	onLeave := newEmployee("emp_leave")
	busy := newEmployee("emp_busy")
	busy.HoursWorkedThisWeek = 20
	idle := newEmployee("emp_idle")

	absences := []model.Absence{{EmployeeID: "emp_leave", StartDate: testDate, EndDate: testDate}}
	snap := NewSnapshot([]model.Employee{onLeave, busy, idle}, []model.Client{newClient()}, absences, nil)
	job := newJob("job_1")

	candidates := ComputeCandidates(snap, &job, NewFitScorer())

	require.Len(t, candidates, 3)
	assert.Equal(t, "emp_idle", candidates[0].EmployeeID)
	assert.Equal(t, 70.0, candidates[0].Score)
	assert.Equal(t, "emp_busy", candidates[1].EmployeeID)
	assert.Equal(t, 55.0, candidates[1].Score) // 20 + 20 + 15
	assert.Equal(t, "emp_leave", candidates[2].EmployeeID)
	assert.Equal(t, -1.0, candidates[2].Score)
	assert.True(t, candidates[2].Result.Disqualified)
	assert.Equal(t, "Emp emp_idle", candidates[0].Name)
}

func TestComputeCandidates_EmptyEmployees(t *testing.T) {
	job := newJob("job_1")
	candidates := ComputeCandidates(&Snapshot{}, &job, NewFitScorer())
	assert.Empty(t, candidates)
}

func TestSelectTopN_TakesStaffNeeded(t *testing.T) {
	first := newEmployee("emp_a")
	second := newEmployee("emp_b")
	second.HoursWorkedThisWeek = 10
	third := newEmployee("emp_c")
	third.HoursWorkedThisWeek = 20

	snap := NewSnapshot([]model.Employee{third, first, second}, []model.Client{newClient()}, nil, nil)
	job := newJob("job_1")
	job.StaffNeeded = 2

	selected := SelectTopN(snap, &job, NewFitScorer())
	assert.Equal(t, []string{"emp_a", "emp_b"}, selected)
}

func TestSelectTopN_ShortListIsNotPadded(t *testing.T) {
	good := newEmployee("emp_good")
	zero := newPlainEmployee("emp_zero")
	onLeave := newEmployee("emp_leave")

	absences := []model.Absence{{EmployeeID: "emp_leave", StartDate: "2024-01-01", EndDate: "2024-01-05"}}
	snap := NewSnapshot([]model.Employee{zero, onLeave, good}, []model.Client{newClient()}, absences, nil)
	job := newJob("job_1")
	job.StaffNeeded = 2

	// Sanity check: the plain employee earns nothing
	assert.Equal(t, 0.0, NewFitScorer().Score(snap, &zero, &job).Value)

	selected := SelectTopN(snap, &job, NewFitScorer())
	assert.Equal(t, []string{"emp_good"}, selected)
}

func TestSelectTopN_TiesKeepInputOrder(t *testing.T) {
	employees := []model.Employee{
		newEmployee("emp_3"),
		newEmployee("emp_1"),
		newEmployee("emp_2"),
	}
	snap := NewSnapshot(employees, []model.Client{newClient()}, nil, nil)
	job := newJob("job_1")
	job.StaffNeeded = 3

	// Run repeatedly, an unstable sort would eventually reorder
	for range 20 {
		selected := SelectTopN(snap, &job, NewFitScorer())
		assert.Equal(t, []string{"emp_3", "emp_1", "emp_2"}, selected)
	}
}

func TestSelectTopN_NoStaffNeededMeansOne(t *testing.T) {
	snap := NewSnapshot([]model.Employee{newEmployee("emp_1"), newEmployee("emp_2")}, []model.Client{newClient()}, nil, nil)
	job := newJob("job_1")
	job.StaffNeeded = 0

	assert.Equal(t, []string{"emp_1"}, SelectTopN(snap, &job, NewFitScorer()))
}

func TestSelectTopN_UnscheduledJobSelectsNobody(t *testing.T) {
	snap := NewSnapshot([]model.Employee{newEmployee("emp_1")}, []model.Client{newClient()}, nil, nil)
	job := newJob("job_1")
	job.StartTime = ""

	assert.Empty(t, SelectTopN(snap, &job, NewFitScorer()))
}
