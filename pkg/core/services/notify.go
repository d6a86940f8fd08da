package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/metrics"
)

// Mailer sends plain text email
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// NotificationSent records an assignment email that went out
type NotificationSent struct {
	JobID      string
	EmployeeID string
	Email      string
}

// FailedEmail records an assignment email that could not be sent
type FailedEmail struct {
	JobID      string
	EmployeeID string
	Email      string
	Error      string
}

// NotifyResult summarises one notification run
type NotifyResult struct {
	Sent   []NotificationSent
	Failed []FailedEmail

	// Skipped holds employees with no email address on file
	Skipped []string
}

// NotifyAssignments emails each assigned employee the details of their job.
// Individual failures are collected; an error is returned only when every send fails.
func NotifyAssignments(
	ctx context.Context,
	mailer Mailer,
	logger *zap.Logger,
	recorder metrics.Recorder,
	snap *dispatch.Snapshot,
	decisions []dispatch.Decision,
) (*NotifyResult, error) {
	logger.Debug("Starting notifyAssignments", zap.Int("decisions", len(decisions)))

	result := &NotifyResult{
		Sent:    []NotificationSent{},
		Failed:  []FailedEmail{},
		Skipped: []string{},
	}

	attempted := 0
	for _, d := range decisions {
		emp := snap.Employee(d.EmployeeID)
		job := snap.Job(d.JobID)
		if emp == nil || job == nil {
			logger.Warn("Decision references unknown record",
				zap.String("job_id", d.JobID),
				zap.String("employee_id", d.EmployeeID))
			continue
		}
		if emp.Email == "" {
			logger.Debug("Employee has no email, skipping", zap.String("employee_id", emp.ID))
			result.Skipped = append(result.Skipped, emp.ID)
			continue
		}

		subject, body := assignmentEmail(emp, job, snap.Client(job.ClientID))
		attempted++

		logger.Info("Sending assignment email",
			zap.String("employee_id", emp.ID),
			zap.String("job_id", job.ID),
			zap.String("email", emp.Email))

		if err := mailer.SendEmail(ctx, emp.Email, subject, body); err != nil {
			logger.Warn("Failed to send assignment email",
				zap.String("employee_id", emp.ID),
				zap.String("email", emp.Email),
				zap.Error(err))
			recorder.RecordNotification("failed")

			result.Failed = append(result.Failed, FailedEmail{
				JobID:      job.ID,
				EmployeeID: emp.ID,
				Email:      emp.Email,
				Error:      err.Error(),
			})
			continue
		}
		recorder.RecordNotification("sent")

		result.Sent = append(result.Sent, NotificationSent{
			JobID:      job.ID,
			EmployeeID: emp.ID,
			Email:      emp.Email,
		})
	}

	// If all emails failed, return error
	if attempted > 0 && len(result.Failed) == attempted {
		return result, fmt.Errorf("all %d assignment email send attempts failed", attempted)
	}

	logger.Debug("Notify assignments completed",
		zap.Int("sent", len(result.Sent)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// assignmentEmail builds the subject and body telling an employee about a job
func assignmentEmail(emp *model.Employee, job *model.Job, client *model.Client) (string, string) {
	clientName := job.ClientID
	if client != nil && client.Name != "" {
		clientName = client.Name
	}

	subject := fmt.Sprintf("New job: %s on %s at %s", clientName, job.ScheduledDate, job.StartTime)
	body := fmt.Sprintf("Hi %s\n\nYou have been assigned a job.\n\nClient: %s\nDate: %s\nStart: %s\nEstimated hours: %g\nAddress: %s\n\nThanks\nThe dispatch team\n",
		emp.FirstName, clientName, job.ScheduledDate, job.StartTime, job.EstimatedHours, job.Address)

	return subject, body
}
