package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

func TestProximityTier(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected Tier
	}{
		{"same street different case", "12 Oak Road, Leeds", "12 oak road, LS1 Leeds", TierNear},
		{"leading segment of target inside source", "Unit 4, 12 Oak Road, Leeds", "12 Oak Road", TierNear},
		{"shared first token only", "Harbour View, Brighton", "Harbour Street, Hove", TierPartial},
		{"unrelated", "12 Oak Road, Leeds", "Flat 3, Harbour View, Brighton", TierNone},
		{"empty target matches anything", "12 Oak Road, Leeds", "", TierNear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProximityTier(tt.from, tt.to))
		})
	}
}

func TestPriorLocation(t *testing.T) {
	emp := newEmployee("emp_1")
	job := newJob("job_target")
	job.StartTime = "14:00"

	morning := newJob("job_morning")
	morning.StartTime = "08:00"
	morning.Address = "1 Morning Street, Leeds"
	morning.AssignedEmployeeIDs = []string{"emp_1"}

	midday := newJob("job_midday")
	midday.StartTime = "11:00"
	midday.Address = "2 Midday Street, Leeds"
	midday.AssignedEmployeeIDs = []string{"emp_1"}

	t.Run("no earlier jobs falls back to home", func(t *testing.T) {
		assert.Equal(t, "12 Oak Road, Leeds", PriorLocation(nil, &emp, &job))
	})

	t.Run("latest earlier job wins regardless of history order", func(t *testing.T) {
		jobs := []model.Job{midday, morning}
		assert.Equal(t, "2 Midday Street, Leeds", PriorLocation(jobs, &emp, &job))
	})

	t.Run("jobs at or after the start time are ignored", func(t *testing.T) {
		later := midday
		later.ID = "job_later"
		later.StartTime = "14:00"
		later.Address = "3 Evening Street, Leeds"

		jobs := []model.Job{morning, later}
		assert.Equal(t, "1 Morning Street, Leeds", PriorLocation(jobs, &emp, &job))
	})

	t.Run("other employees and other days are ignored", func(t *testing.T) {
		other := midday
		other.AssignedEmployeeIDs = []string{"emp_2"}
		otherDay := morning
		otherDay.ScheduledDate = "2024-01-04"

		jobs := []model.Job{other, otherDay}
		assert.Equal(t, emp.HomeAddress(), PriorLocation(jobs, &emp, &job))
	})

	t.Run("equal start times prefer the later history entry", func(t *testing.T) {
		twin := midday
		twin.ID = "job_twin"
		twin.Address = "9 Twin Street, Leeds"

		jobs := []model.Job{midday, twin}
		assert.Equal(t, "9 Twin Street, Leeds", PriorLocation(jobs, &emp, &job))
	})

	t.Run("status is not consulted", func(t *testing.T) {
		cancelled := morning
		cancelled.Status = model.JobStatusCancelled

		assert.Equal(t, "1 Morning Street, Leeds", PriorLocation([]model.Job{cancelled}, &emp, &job))
	})
}
