package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

func TestSimpleScorer_NameAndMax(t *testing.T) {
	scorer := NewSimpleScorer()
	assert.Equal(t, "Simple", scorer.Name())
	assert.Equal(t, 100.0, scorer.MaxScore())
}

func TestSimpleScorer_Score(t *testing.T) {
	tests := []struct {
		name      string
		worked    float64
		location  string
		preferred bool
		expected  float64
	}{
		// 50 base + (1 - 0) * 20
		{"idle, elsewhere", 0, "Leeds", false, 70},
		// 50 + (1 - 0.25) * 20
		{"quarter utilized", 10, "Leeds", false, 65},
		// 50 + 30 + 20
		{"address contains location", 0, "brighton", false, 100},
		// 50 + 30 + 15 = 95
		{"local and partly utilized", 10, "Brighton", false, 95},
		// 50 + 15 + 25 = 90
		{"preferred", 10, "Leeds", true, 90},
		// 50 + 30 + 15 + 25 = 120, clamped
		{"everything clamps to 100", 10, "Brighton", true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := newEmployee("emp_1")
			emp.HoursWorkedThisWeek = tt.worked
			emp.Location = tt.location

			client := newClient()
			if tt.preferred {
				client.PreferredEmployeeIDs = []string{"emp_1"}
			}
			job := newJob("job_1")
			snap := NewSnapshot([]model.Employee{emp}, []model.Client{client}, nil, nil)

			result := NewSimpleScorer().Score(snap, &emp, &job)
			assert.False(t, result.Disqualified)
			assert.InDelta(t, tt.expected, result.Value, 1e-9)
		})
	}
}

func TestSimpleScorer_Disqualifiers(t *testing.T) {
	job := newJob("job_1") // 3 estimated hours

	t.Run("insufficient capacity", func(t *testing.T) {
		emp := newEmployee("emp_1")
		emp.HoursWorkedThisWeek = 38
		snap := NewSnapshot([]model.Employee{emp}, []model.Client{newClient()}, nil, nil)

		result := NewSimpleScorer().Score(snap, &emp, &job)
		assert.True(t, result.Disqualified)
		assert.Equal(t, ReasonInsufficientCapacity, result.Reason)
	})

	t.Run("on leave", func(t *testing.T) {
		emp := newEmployee("emp_1")
		absences := []model.Absence{{EmployeeID: "emp_1", StartDate: "2024-01-01", EndDate: "2024-01-05"}}
		snap := NewSnapshot([]model.Employee{emp}, []model.Client{newClient()}, absences, nil)

		result := NewSimpleScorer().Score(snap, &emp, &job)
		assert.Equal(t, -1.0, result.Sentinel())
		assert.Equal(t, ReasonOnLeave, result.Reason)
	})

	t.Run("rejected even when preferred", func(t *testing.T) {
		emp := newEmployee("emp_1")
		client := newClient()
		client.PreferredEmployeeIDs = []string{"emp_1"}
		client.RejectedEmployeeIDs = []string{"emp_1"}
		snap := NewSnapshot([]model.Employee{emp}, []model.Client{client}, nil, nil)

		result := NewSimpleScorer().Score(snap, &emp, &job)
		assert.Equal(t, -1.0, result.Sentinel())
		assert.Equal(t, ReasonClientRejected, result.Reason)
	})
}

func TestSimpleScorer_CapacityFlipsEligibility(t *testing.T) {
	job := newJob("job_1")
	job.EstimatedHours = 4

	// weeklyHours - estimatedHours = 36 is the last eligible value
	for _, tt := range []struct {
		worked       float64
		disqualified bool
	}{
		{35, false},
		{36, false},
		{36.5, true},
		{40, true},
	} {
		emp := newEmployee("emp_1")
		emp.HoursWorkedThisWeek = tt.worked
		snap := NewSnapshot([]model.Employee{emp}, nil, nil, nil)

		result := NewSimpleScorer().Score(snap, &emp, &job)
		assert.Equal(t, tt.disqualified, result.Disqualified, "worked %.1f", tt.worked)
	}
}

func TestSimpleScorer_UnscheduledJobScoresZero(t *testing.T) {
	emp := newEmployee("emp_1")
	job := newJob("job_1")
	job.ScheduledDate = ""
	snap := NewSnapshot([]model.Employee{emp}, nil, nil, nil)

	result := NewSimpleScorer().Score(snap, &emp, &job)
	assert.False(t, result.Disqualified)
	assert.Equal(t, 0.0, result.Value)
}

func TestSimpleScorer_Bounds(t *testing.T) {
	scorer := NewSimpleScorer()
	for _, worked := range []float64{0, 12, 30, 37, 50} {
		for _, location := range []string{"Leeds", "brighton", ""} {
			for _, preferred := range []bool{false, true} {
				emp := newEmployee("emp_1")
				emp.HoursWorkedThisWeek = worked
				emp.Location = location
				client := newClient()
				if preferred {
					client.PreferredEmployeeIDs = []string{"emp_1"}
				}
				job := newJob("job_1")
				snap := NewSnapshot([]model.Employee{emp}, []model.Client{client}, nil, nil)

				score := scorer.Score(snap, &emp, &job).Sentinel()
				assert.True(t, score == -1 || (score >= 0 && score <= 100), "score %v out of bounds", score)
			}
		}
	}
}
