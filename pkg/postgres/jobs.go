package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/db"
)

// GetJobs retrieves all job records
func (d *DB) GetJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, client_id, service_type, recurrence, scheduled_date, start_time, estimated_hours,
		       staff_needed, status, assigned_employee_ids, address, series_id, is_archived
		FROM jobs
		ORDER BY scheduled_date NULLS LAST, start_time, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		var recurrence, status string
		var scheduledDate *time.Time
		if err := rows.Scan(&j.ID, &j.ClientID, &j.ServiceType, &recurrence, &scheduledDate, &j.StartTime,
			&j.EstimatedHours, &j.StaffNeeded, &status, &j.AssignedEmployeeIDs, &j.Address, &j.SeriesID,
			&j.IsArchived); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		j.Recurrence = model.RecurrenceType(recurrence)
		j.Status = model.JobStatus(status)
		j.ScheduledDate = formatDate(scheduledDate)
		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}

// InsertJobs inserts job records into the database
func (d *DB) InsertJobs(ctx context.Context, jobs []model.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, j := range jobs {
		scheduledDate, err := parseDate(j.ScheduledDate)
		if err != nil {
			return fmt.Errorf("failed to insert job %s: %w", j.ID, err)
		}

		status := j.Status
		if status == "" {
			status = model.JobStatusPending
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO jobs (id, client_id, service_type, recurrence, scheduled_date, start_time,
			                  estimated_hours, staff_needed, status, assigned_employee_ids, address,
			                  series_id, is_archived)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, j.ID, j.ClientID, j.ServiceType, string(j.Recurrence), scheduledDate, j.StartTime,
			j.EstimatedHours, j.StaffNeeded, string(status), nonNil(j.AssignedEmployeeIDs), j.Address,
			j.SeriesID, j.IsArchived)
		if err != nil {
			return fmt.Errorf("failed to insert job %s: %w", j.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateJobAssignments replaces the assignment lists of existing jobs in one transaction.
// Status follows the same rules as model.Job.WithAssignments.
func (d *DB) UpdateJobAssignments(ctx context.Context, assignments []db.JobAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		// Dedupe the same way the in-memory path does
		ids := model.UniqueIDs(a.EmployeeIDs)

		tag, err := tx.Exec(ctx, `
			UPDATE jobs
			SET assigned_employee_ids = $2,
			    status = CASE
			        WHEN cardinality($2::text[]) > 0 THEN 'Assigned'
			        WHEN status IN ('Assigned', '') THEN 'Pending'
			        ELSE status
			    END
			WHERE id = $1
		`, a.JobID, ids)
		if err != nil {
			return fmt.Errorf("failed to update job %s: %w", a.JobID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("failed to update job %s: %w", a.JobID, db.ErrRecordNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
