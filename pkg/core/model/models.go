package model

import (
	"slices"
	"time"
)

// DateLayout is the layout of ScheduledDate, StartDate and EndDate values
const DateLayout = "2006-01-02"

// TimeLayout is the layout of StartTime and preferred working hour values
const TimeLayout = "15:04"

type Role string

const (
	RoleCleaner    Role = "Cleaner"
	RoleSupervisor Role = "Supervisor"
	RoleSpecialist Role = "Specialist"
)

func (r Role) IsValid() bool {
	return r == RoleCleaner || r == RoleSupervisor || r == RoleSpecialist
}

type JobStatus string

const (
	JobStatusPending    JobStatus = "Pending"
	JobStatusAssigned   JobStatus = "Assigned"
	JobStatusInProgress JobStatus = "In Progress"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusCancelled  JobStatus = "Cancelled"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusAssigned, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

type RecurrenceType string

const (
	RecurrenceOneTime        RecurrenceType = "One-time"
	RecurrenceDaily          RecurrenceType = "Daily"
	RecurrenceWeekly         RecurrenceType = "Weekly"
	RecurrenceBiWeekly       RecurrenceType = "Bi-weekly"
	RecurrenceMonthly        RecurrenceType = "Monthly"
	RecurrenceMultipleManual RecurrenceType = "Multiple Manual"
)

type CustomerType string

const (
	CustomerCompany    CustomerType = "Company"
	CustomerIndividual CustomerType = "Individual"
)

// DefaultServiceType returns the service type new jobs get for this kind of customer
func (t CustomerType) DefaultServiceType() string {
	if t == CustomerCompany {
		return "Commercial"
	}
	return "Regular"
}

// Employee represents a member of cleaning staff
type Employee struct {
	ID                         string   `yaml:"id" json:"id" validate:"required"`
	FirstName                  string   `yaml:"firstName" json:"firstName" validate:"required"`
	LastName                   string   `yaml:"lastName" json:"lastName"`
	Email                      string   `yaml:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Street                     string   `yaml:"street" json:"street"`
	PostalCode                 string   `yaml:"postalCode,omitempty" json:"postalCode,omitempty"`
	City                       string   `yaml:"city" json:"city"`
	Location                   string   `yaml:"location" json:"location"`
	Role                       Role     `yaml:"role" json:"role" validate:"omitempty,oneof=Cleaner Supervisor Specialist"`
	WeeklyHours                float64  `yaml:"weeklyHours" json:"weeklyHours" validate:"gte=0"`
	HoursWorkedThisWeek        float64  `yaml:"hoursWorkedThisWeek" json:"hoursWorkedThisWeek" validate:"gte=0"`
	PreferredWorkingDays       []string `yaml:"preferredWorkingDays,omitempty" json:"preferredWorkingDays,omitempty" validate:"dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	PreferredWorkingHoursStart string   `yaml:"preferredWorkingHoursStart,omitempty" json:"preferredWorkingHoursStart,omitempty" validate:"omitempty,datetime=15:04"`
	PreferredWorkingHoursEnd   string   `yaml:"preferredWorkingHoursEnd,omitempty" json:"preferredWorkingHoursEnd,omitempty" validate:"omitempty,datetime=15:04"`
	IsActive                   bool     `yaml:"isActive" json:"isActive"`
	IsArchived                 bool     `yaml:"isArchived,omitempty" json:"isArchived,omitempty"`
}

// HomeAddress returns the address used as the employee's starting point for the day
func (e *Employee) HomeAddress() string {
	return e.Street + ", " + e.City
}

// DisplayName returns the employee's full name
func (e *Employee) DisplayName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Utilization returns the fraction of contracted weekly hours already worked.
// An employee without contracted hours is treated as fully utilized.
func (e *Employee) Utilization() float64 {
	if e.WeeklyHours <= 0 {
		return 1
	}
	return e.HoursWorkedThisWeek / e.WeeklyHours
}

// RemainingHours returns the contracted hours not yet worked this week (may be negative)
func (e *Employee) RemainingHours() float64 {
	return e.WeeklyHours - e.HoursWorkedThisWeek
}

// PrefersDay returns true if the weekday is one of the employee's preferred working days
func (e *Employee) PrefersDay(day time.Weekday) bool {
	return slices.Contains(e.PreferredWorkingDays, day.String())
}

// Client represents a customer whose premises are cleaned
type Client struct {
	ID                   string       `yaml:"id" json:"id" validate:"required"`
	ShortName            string       `yaml:"shortName,omitempty" json:"shortName,omitempty"`
	Name                 string       `yaml:"name" json:"name"`
	Street               string       `yaml:"street" json:"street"`
	ZipCity              string       `yaml:"zipCity" json:"zipCity"`
	AddressSuffix        string       `yaml:"addressSuffix,omitempty" json:"addressSuffix,omitempty"`
	CustomerType         CustomerType `yaml:"customerType,omitempty" json:"customerType,omitempty" validate:"omitempty,oneof=Company Individual"`
	Email                string       `yaml:"email,omitempty" json:"email,omitempty"`
	PreferredEmployeeIDs []string     `yaml:"preferredEmployeeIds,omitempty" json:"preferredEmployeeIds,omitempty"`
	RejectedEmployeeIDs  []string     `yaml:"rejectedEmployeeIds,omitempty" json:"rejectedEmployeeIds,omitempty"`
	RecommendedStartTime string       `yaml:"recommendedStartTime,omitempty" json:"recommendedStartTime,omitempty" validate:"omitempty,datetime=15:04"`
	RecommendedHours     float64      `yaml:"recommendedHours,omitempty" json:"recommendedHours,omitempty" validate:"gte=0"`
	StaffNeeded          int          `yaml:"staffNeeded,omitempty" json:"staffNeeded,omitempty" validate:"gte=0"`
	IsArchived           bool         `yaml:"isArchived,omitempty" json:"isArchived,omitempty"`
}

// IsPreferred returns true if the client asked for this employee
func (c *Client) IsPreferred(employeeID string) bool {
	return slices.Contains(c.PreferredEmployeeIDs, employeeID)
}

// IsRejected returns true if the client refuses this employee
func (c *Client) IsRejected(employeeID string) bool {
	return slices.Contains(c.RejectedEmployeeIDs, employeeID)
}

// Address returns the client's site address as written onto new jobs,
// e.g. "Flat 3, Harbour View, BN1 Brighton (rear entrance)"
func (c *Client) Address() string {
	address := c.Street + ", " + c.ZipCity
	if c.AddressSuffix != "" {
		address += " (" + c.AddressSuffix + ")"
	}
	return address
}

// Absence represents a leave period for an employee (dates inclusive)
type Absence struct {
	ID         string `yaml:"id" json:"id"`
	EmployeeID string `yaml:"employeeId" json:"employeeId" validate:"required"`
	StartDate  string `yaml:"startDate" json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `yaml:"endDate" json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason     string `yaml:"reason,omitempty" json:"reason,omitempty" validate:"omitempty,oneof=Vacation Sick Personal"`
	Status     string `yaml:"status,omitempty" json:"status,omitempty" validate:"omitempty,oneof=Pending Approved Rejected"`
}

// Covers returns true if the date falls within the absence.
// Dates are ISO formatted so string order is calendar order.
func (a *Absence) Covers(date string) bool {
	return a.StartDate <= date && date <= a.EndDate
}

// Job represents a work order at a client site
type Job struct {
	ID                  string         `yaml:"id" json:"id"`
	ClientID            string         `yaml:"clientId" json:"clientId"`
	ServiceType         string         `yaml:"serviceType,omitempty" json:"serviceType,omitempty"`
	Recurrence          RecurrenceType `yaml:"recurrence,omitempty" json:"recurrence,omitempty"`
	ScheduledDate       string         `yaml:"scheduledDate" json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`
	StartTime           string         `yaml:"startTime" json:"startTime" validate:"omitempty,datetime=15:04"`
	EstimatedHours      float64        `yaml:"estimatedHours" json:"estimatedHours" validate:"gte=0"`
	StaffNeeded         int            `yaml:"staffNeeded" json:"staffNeeded" validate:"gte=0"`
	Status              JobStatus      `yaml:"status" json:"status" validate:"omitempty,oneof=Pending Assigned 'In Progress' Completed Cancelled"`
	AssignedEmployeeIDs []string       `yaml:"assignedEmployeeIds,omitempty" json:"assignedEmployeeIds,omitempty" validate:"unique"`
	Address             string         `yaml:"address" json:"address"`
	SeriesID            string         `yaml:"seriesId,omitempty" json:"seriesId,omitempty"`
	IsArchived          bool           `yaml:"isArchived,omitempty" json:"isArchived,omitempty"`
}

// IsScheduled returns true once both the date and the start time are known
func (j *Job) IsScheduled() bool {
	return j.ScheduledDate != "" && j.StartTime != ""
}

// Weekday returns the day of the week of the scheduled date
func (j *Job) Weekday() (time.Weekday, bool) {
	date, err := time.Parse(DateLayout, j.ScheduledDate)
	if err != nil {
		return 0, false
	}
	return date.Weekday(), true
}

// HasEmployee returns true if the employee is assigned to this job
func (j *Job) HasEmployee(employeeID string) bool {
	return slices.Contains(j.AssignedEmployeeIDs, employeeID)
}

// RequiredStaff returns the number of workers to select, never less than one
func (j *Job) RequiredStaff() int {
	return max(j.StaffNeeded, 1)
}

// WithAssignments returns a copy of the job with its assignment list replaced.
// Duplicate ids are dropped keeping first occurrence. Status follows the list:
// a non-empty list means Assigned, and an Assigned job whose list is emptied
// goes back to Pending. The receiver is not modified.
func (j *Job) WithAssignments(employeeIDs []string) Job {
	updated := *j
	updated.AssignedEmployeeIDs = UniqueIDs(employeeIDs)

	if len(updated.AssignedEmployeeIDs) > 0 {
		updated.Status = JobStatusAssigned
	} else if updated.Status == JobStatusAssigned || updated.Status == "" {
		updated.Status = JobStatusPending
	}

	return updated
}

// UniqueIDs drops repeated ids keeping first occurrence. Never returns nil.
func UniqueIDs(ids []string) []string {
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}
	return unique
}
