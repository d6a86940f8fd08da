package recurrence

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

// MaxOccurrences caps how many jobs one series may produce
const MaxOccurrences = 366

// builtinRules maps each repeating recurrence type to its RRULE
var builtinRules = map[model.RecurrenceType]string{
	model.RecurrenceDaily:    "FREQ=DAILY",
	model.RecurrenceWeekly:   "FREQ=WEEKLY",
	model.RecurrenceBiWeekly: "FREQ=WEEKLY;INTERVAL=2",
	model.RecurrenceMonthly:  "FREQ=MONTHLY",
}

// Series describes a run of jobs generated from one template
type Series struct {
	// Template supplies every field of the generated jobs except id, date, status and assignments
	Template model.Job

	Recurrence model.RecurrenceType

	// RuleName selects a named custom rule instead of the built in rule for Recurrence
	RuleName string

	// StartDate is the first occurrence (YYYY-MM-DD)
	StartDate string

	// Until is the last date an occurrence may fall on (inclusive). Required for repeating series.
	Until string

	// ManualDates lists the dates of a Multiple Manual series. The start date is always included.
	ManualDates []string
}

// Expander turns series into dated jobs
type Expander struct {
	rules map[string]string
	newID func() string
}

// NewExpander creates an Expander that also knows the given named RRULEs
func NewExpander(customRules map[string]string) *Expander {
	rules := make(map[string]string, len(customRules))
	for name, rule := range customRules {
		rules[name] = rule
	}
	return &Expander{
		rules: rules,
		newID: func() string { return uuid.New().String() },
	}
}

// Expand generates one Pending, unassigned job per occurrence of the series, in date order.
// All jobs share a freshly generated SeriesID. At most MaxOccurrences jobs are returned.
func (e *Expander) Expand(series Series) ([]model.Job, error) {
	start, err := time.Parse(model.DateLayout, series.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", series.StartDate, err)
	}

	dates, err := e.occurrences(series, start)
	if err != nil {
		return nil, err
	}
	if len(dates) > MaxOccurrences {
		dates = dates[:MaxOccurrences]
	}

	seriesID := e.newID()
	jobs := make([]model.Job, 0, len(dates))
	for _, date := range dates {
		job := series.Template
		job.ID = e.newID()
		job.SeriesID = seriesID
		job.Recurrence = series.Recurrence
		job.ScheduledDate = date
		job.Status = model.JobStatusPending
		job.AssignedEmployeeIDs = nil
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// occurrences returns the sorted occurrence dates of the series
func (e *Expander) occurrences(series Series, start time.Time) ([]string, error) {
	if series.RuleName == "" {
		switch series.Recurrence {
		case model.RecurrenceOneTime, "":
			return []string{series.StartDate}, nil
		case model.RecurrenceMultipleManual:
			return manualDates(series)
		}
	}

	ruleStr, err := e.ruleFor(series)
	if err != nil {
		return nil, err
	}

	if series.Until == "" {
		return nil, fmt.Errorf("repeating series requires an until date")
	}
	until, err := time.Parse(model.DateLayout, series.Until)
	if err != nil {
		return nil, fmt.Errorf("invalid until date %q: %w", series.Until, err)
	}
	if until.Before(start) {
		return nil, fmt.Errorf("until date %s is before start date %s", series.Until, series.StartDate)
	}

	opt, err := rrule.StrToROption(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule %q: %w", ruleStr, err)
	}
	opt.Dtstart = start
	if opt.Count == 0 || opt.Count > MaxOccurrences {
		opt.Count = MaxOccurrences
	}

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build rrule %q: %w", ruleStr, err)
	}

	times := rule.Between(start, until, true)
	dates := make([]string, 0, len(times))
	for _, t := range times {
		dates = append(dates, t.Format(model.DateLayout))
	}
	return dates, nil
}

func (e *Expander) ruleFor(series Series) (string, error) {
	if series.RuleName != "" {
		rule, ok := e.rules[series.RuleName]
		if !ok {
			return "", fmt.Errorf("unknown recurrence rule %q", series.RuleName)
		}
		return rule, nil
	}

	rule, ok := builtinRules[series.Recurrence]
	if !ok {
		return "", fmt.Errorf("unsupported recurrence type %q", series.Recurrence)
	}
	return rule, nil
}

// manualDates validates, dedupes and sorts the explicit dates of a Multiple Manual series
func manualDates(series Series) ([]string, error) {
	dates := []string{series.StartDate}
	for _, date := range series.ManualDates {
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid manual date %q: %w", date, err)
		}
		if !slices.Contains(dates, date) {
			dates = append(dates, date)
		}
	}
	slices.Sort(dates)
	return dates, nil
}

// ValidateRule reports whether the string is a parseable RRULE
func ValidateRule(rule string) error {
	if _, err := rrule.StrToRRule(rule); err != nil {
		return fmt.Errorf("invalid rrule %q: %w", rule, err)
	}
	return nil
}
