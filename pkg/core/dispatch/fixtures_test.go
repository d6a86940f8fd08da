package dispatch

import "github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"

// 2024-01-03 is a Wednesday
const (
	testDate  = "2024-01-03"
	testTime  = "09:00"
	clientID  = "client_1"
	farAwayAt = "Flat 3, Harbour View, Brighton"
)

// newEmployee returns an idle full time employee who prefers Wednesday mornings
// and lives nowhere near farAwayAt
func newEmployee(id string) model.Employee {
	return model.Employee{
		ID:                         id,
		FirstName:                  "Emp",
		LastName:                   id,
		Street:                     "12 Oak Road",
		City:                       "Leeds",
		Location:                   "Leeds",
		Role:                       model.RoleCleaner,
		WeeklyHours:                40,
		HoursWorkedThisWeek:        0,
		PreferredWorkingDays:       []string{"Monday", "Wednesday"},
		PreferredWorkingHoursStart: "08:00",
		PreferredWorkingHoursEnd:   "17:00",
		IsActive:                   true,
	}
}

// newPlainEmployee returns an employee with no preferences and no remaining capacity,
// whose fit score for a farAwayAt job is exactly 0
func newPlainEmployee(id string) model.Employee {
	return model.Employee{
		ID:          id,
		FirstName:   "Plain",
		LastName:    id,
		Street:      "7 Mill Lane",
		City:        "York",
		Location:    "York",
		WeeklyHours: 0,
		IsActive:    true,
	}
}

func newClient() model.Client {
	return model.Client{
		ID:      clientID,
		Name:    "Harbour View Ltd",
		Street:  "Flat 3, Harbour View",
		ZipCity: "BN1 Brighton",
	}
}

func newJob(id string) model.Job {
	return model.Job{
		ID:             id,
		ClientID:       clientID,
		ScheduledDate:  testDate,
		StartTime:      testTime,
		EstimatedHours: 3,
		StaffNeeded:    1,
		Status:         model.JobStatusPending,
		Address:        farAwayAt,
	}
}

func completedVisit(id, employeeID, date string) model.Job {
	job := newJob(id)
	job.ScheduledDate = date
	job.Status = model.JobStatusCompleted
	job.AssignedEmployeeIDs = []string{employeeID}
	return job
}
