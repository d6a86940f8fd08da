package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientVetoPolicy(t *testing.T) {
	policy := ClientVetoPolicy{}
	assert.Equal(t, "ClientVeto", policy.Name())

	emp := newEmployee("emp_1")
	job := newJob("job_1")

	t.Run("rejected employee is ineligible", func(t *testing.T) {
		client := newClient()
		client.RejectedEmployeeIDs = []string{"emp_1"}

		eligible, reason := policy.IsEligible(&emp, &job, &client)
		assert.False(t, eligible)
		assert.Equal(t, ReasonClientRejected, reason)
	})

	t.Run("missing client never vetoes", func(t *testing.T) {
		eligible, _ := policy.IsEligible(&emp, &job, nil)
		assert.True(t, eligible)
	})

	t.Run("no capacity check", func(t *testing.T) {
		overworked := newEmployee("emp_2")
		overworked.HoursWorkedThisWeek = 45
		client := newClient()

		eligible, _ := policy.IsEligible(&overworked, &job, &client)
		assert.True(t, eligible, "capacity only lowers the single job score")
	})
}

func TestCapacityGatedPolicy(t *testing.T) {
	policy := CapacityGatedPolicy{}
	assert.Equal(t, "CapacityGated", policy.Name())

	job := newJob("job_1") // 3 estimated hours
	client := newClient()

	tests := []struct {
		name     string
		worked   float64
		expected bool
	}{
		{"plenty of hours", 0, true},
		{"exactly enough hours", 37, true},
		{"one hour short", 38, false},
		{"over contract", 41, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := newEmployee("emp_1")
			emp.HoursWorkedThisWeek = tt.worked

			eligible, reason := policy.IsEligible(&emp, &job, &client)
			assert.Equal(t, tt.expected, eligible)
			if !tt.expected {
				assert.Equal(t, ReasonInsufficientCapacity, reason)
			}
		})
	}

	t.Run("client veto still applies", func(t *testing.T) {
		emp := newEmployee("emp_1")
		rejecting := newClient()
		rejecting.RejectedEmployeeIDs = []string{"emp_1"}

		eligible, reason := policy.IsEligible(&emp, &job, &rejecting)
		assert.False(t, eligible)
		assert.Equal(t, ReasonClientRejected, reason)
	})
}
