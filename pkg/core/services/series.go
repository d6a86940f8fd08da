package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/recurrence"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/db"
)

const (
	fallbackStartTime = "08:00"
	fallbackHours     = 2.0
)

// SeriesRequest describes a run of jobs to create for one client.
// Zero values for StartTime, EstimatedHours and StaffNeeded take the client's recommendation.
type SeriesRequest struct {
	ClientID  string `validate:"required"`
	StartDate string `validate:"required,datetime=2006-01-02"`

	// Recurrence is a recurrence type (One-time, Daily, Weekly, ...) or the name of a configured rule
	Recurrence  string
	Until       string   `validate:"omitempty,datetime=2006-01-02"`
	ManualDates []string `validate:"dive,datetime=2006-01-02"`

	ServiceType    string
	StartTime      string  `validate:"omitempty,datetime=15:04"`
	EstimatedHours float64 `validate:"gte=0"`
	StaffNeeded    int     `validate:"gte=0"`
}

// SeriesResult lists the jobs created for a series
type SeriesResult struct {
	SeriesID string
	Jobs     []model.Job
}

// ScheduleSeries expands a request into Pending jobs and inserts them
func ScheduleSeries(
	ctx context.Context,
	store db.JobStore,
	cfg *config.Config,
	logger *zap.Logger,
	req SeriesRequest,
) (*SeriesResult, error) {
	logger.Debug("Scheduling series",
		zap.String("client_id", req.ClientID),
		zap.String("start", req.StartDate),
		zap.String("recurrence", req.Recurrence))

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid series request: %w", err)
	}

	// Step 1: Find the client
	clients, err := store.GetClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	client := findClient(clients, req.ClientID)
	if client == nil {
		return nil, fmt.Errorf("client %s not found", req.ClientID)
	}

	// Step 2: Build the template and expand it
	series := recurrence.Series{
		Template:    seriesTemplate(client, cfg, req),
		StartDate:   req.StartDate,
		Until:       req.Until,
		ManualDates: req.ManualDates,
	}
	rules := cfg.RecurrenceRules()
	if _, ok := rules[req.Recurrence]; ok {
		series.RuleName = req.Recurrence
	}
	series.Recurrence = model.RecurrenceType(req.Recurrence)

	jobs, err := recurrence.NewExpander(rules).Expand(series)
	if err != nil {
		return nil, fmt.Errorf("failed to expand series: %w", err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("series produced no jobs between %s and %s", req.StartDate, req.Until)
	}
	logger.Debug("Series expanded",
		zap.Int("jobs", len(jobs)),
		zap.String("first", jobs[0].ScheduledDate),
		zap.String("last", jobs[len(jobs)-1].ScheduledDate))

	// Step 3: Insert
	if err := store.InsertJobs(ctx, jobs); err != nil {
		return nil, fmt.Errorf("failed to insert jobs: %w", err)
	}

	logger.Info("Series scheduled",
		zap.String("series_id", jobs[0].SeriesID),
		zap.String("client", client.Name),
		zap.Int("jobs", len(jobs)))

	return &SeriesResult{SeriesID: jobs[0].SeriesID, Jobs: jobs}, nil
}

// seriesTemplate fills the job fields shared by every occurrence, preferring the
// request, then the client's recommendation, then configured and built in defaults
func seriesTemplate(client *model.Client, cfg *config.Config, req SeriesRequest) model.Job {
	startTime := firstNonEmpty(req.StartTime, client.RecommendedStartTime, cfg.DefaultStartTime, fallbackStartTime)

	hours := req.EstimatedHours
	if hours == 0 {
		hours = client.RecommendedHours
	}
	if hours == 0 {
		hours = cfg.DefaultHours
	}
	if hours == 0 {
		hours = fallbackHours
	}

	staff := req.StaffNeeded
	if staff == 0 {
		staff = client.StaffNeeded
	}

	job := model.Job{
		ClientID:       client.ID,
		ServiceType:    firstNonEmpty(req.ServiceType, client.CustomerType.DefaultServiceType()),
		StartTime:      startTime,
		EstimatedHours: hours,
		StaffNeeded:    staff,
		Address:        client.Address(),
	}
	job.StaffNeeded = job.RequiredStaff()
	return job
}

func findClient(clients []model.Client, id string) *model.Client {
	for i := range clients {
		if clients[i].ID == id && !clients[i].IsArchived {
			return &clients[i]
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
