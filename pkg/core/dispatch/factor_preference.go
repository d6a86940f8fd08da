package dispatch

import "github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"

// DayPreferenceFactor rewards jobs that fall on one of the employee's preferred working days.
// The weekday comes from the job's scheduled date read as a calendar date.
type DayPreferenceFactor struct {
	weight float64
}

// NewDayPreferenceFactor creates a DayPreferenceFactor awarding weight on a match
func NewDayPreferenceFactor(weight float64) *DayPreferenceFactor {
	return &DayPreferenceFactor{weight: weight}
}

func (f *DayPreferenceFactor) Name() string {
	return "DayPreference"
}

func (f *DayPreferenceFactor) Max() float64 {
	return f.weight
}

func (f *DayPreferenceFactor) Evaluate(snap *Snapshot, emp *model.Employee, job *model.Job, client *model.Client) float64 {
	day, ok := job.Weekday()
	if !ok {
		return 0
	}
	if emp.PrefersDay(day) {
		return f.weight
	}
	return 0
}

// HourPreferenceFactor rewards jobs starting inside the employee's preferred working window.
//
// Only applies when both window bounds are set. Times are compared as HH:MM
// strings, bounds inclusive, so a window that wraps midnight never matches.
type HourPreferenceFactor struct {
	weight float64
}

// NewHourPreferenceFactor creates an HourPreferenceFactor awarding weight on a match
func NewHourPreferenceFactor(weight float64) *HourPreferenceFactor {
	return &HourPreferenceFactor{weight: weight}
}

func (f *HourPreferenceFactor) Name() string {
	return "HourPreference"
}

func (f *HourPreferenceFactor) Max() float64 {
	return f.weight
}

func (f *HourPreferenceFactor) Evaluate(snap *Snapshot, emp *model.Employee, job *model.Job, client *model.Client) float64 {
	start, end := emp.PreferredWorkingHoursStart, emp.PreferredWorkingHoursEnd
	if start == "" || end == "" {
		return 0
	}
	if job.StartTime >= start && job.StartTime <= end {
		return f.weight
	}
	return 0
}

// UtilizationFactor favours employees with the most unworked contracted hours.
//
// Contribution is (1 - min(u, 1)) * weight where u is the weekly utilization.
// An employee at or over capacity contributes 0, and one without contracted
// hours counts as fully utilized.
type UtilizationFactor struct {
	weight float64
}

// NewUtilizationFactor creates a UtilizationFactor with the given weight
func NewUtilizationFactor(weight float64) *UtilizationFactor {
	return &UtilizationFactor{weight: weight}
}

func (f *UtilizationFactor) Name() string {
	return "Utilization"
}

func (f *UtilizationFactor) Max() float64 {
	return f.weight
}

func (f *UtilizationFactor) Evaluate(snap *Snapshot, emp *model.Employee, job *model.Job, client *model.Client) float64 {
	return (1 - min(emp.Utilization(), 1)) * f.weight
}
