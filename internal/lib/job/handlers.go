package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/email"
	"github.com/rs/zerolog"
)

// Mailer sends the transactional emails. *email.Client implements it.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string, expiresIn time.Duration) error
	SendServiceRequestConfirmation(ctx context.Context, to, name, serviceType, vehicle, preferredDate, reference string) error
	SendSellSubmissionConfirmation(ctx context.Context, to, name, vehicle, reference string) error
	SendStaffNotification(ctx context.Context, to, subject string, fields []email.Field) error
}

// InitHandlers builds the email client the task handlers send through.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) error {
	client, err := email.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create email client: %w", err)
	}
	j.mailer = client
	return nil
}

func decode[T any](t *asynq.Task) (T, error) {
	var p T
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return p, nil
}

// run logs around send and returns its error so Asynq retries failures.
func (j *JobService) run(taskType, to string, send func() error) error {
	j.logger.Info().
		Str("type", taskType).
		Str("to", to).
		Msg("Processing email task")

	if err := send(); err != nil {
		j.logger.Error().
			Str("type", taskType).
			Str("to", to).
			Err(err).
			Msg("Failed to send email")
		return err
	}

	j.logger.Info().
		Str("type", taskType).
		Str("to", to).
		Msg("Successfully sent email")

	return nil
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	p, err := decode[WelcomeEmailPayload](t)
	if err != nil {
		return err
	}
	return j.run(TaskWelcome, p.To, func() error {
		return j.mailer.SendWelcomeEmail(ctx, p.To, p.Name)
	})
}

func (j *JobService) handlePasswordResetEmailTask(ctx context.Context, t *asynq.Task) error {
	p, err := decode[PasswordResetEmailPayload](t)
	if err != nil {
		return err
	}
	return j.run(TaskPasswordReset, p.To, func() error {
		return j.mailer.SendPasswordResetEmail(ctx, p.To, p.Name, p.Token, p.ExpiresIn)
	})
}

func (j *JobService) handleServiceRequestEmailTask(ctx context.Context, t *asynq.Task) error {
	p, err := decode[ServiceRequestEmailPayload](t)
	if err != nil {
		return err
	}
	return j.run(TaskServiceRequest, p.To, func() error {
		return j.mailer.SendServiceRequestConfirmation(ctx, p.To, p.Name, p.ServiceType, p.Vehicle, p.PreferredDate, p.Reference)
	})
}

func (j *JobService) handleSellSubmissionEmailTask(ctx context.Context, t *asynq.Task) error {
	p, err := decode[SellSubmissionEmailPayload](t)
	if err != nil {
		return err
	}
	return j.run(TaskSellSubmission, p.To, func() error {
		return j.mailer.SendSellSubmissionConfirmation(ctx, p.To, p.Name, p.Vehicle, p.Reference)
	})
}

func (j *JobService) handleStaffNotificationTask(ctx context.Context, t *asynq.Task) error {
	p, err := decode[StaffNotificationPayload](t)
	if err != nil {
		return err
	}
	to := j.cfg.Integration.StaffEmail
	return j.run(TaskStaffNotification, to, func() error {
		return j.mailer.SendStaffNotification(ctx, to, p.Subject, p.Fields)
	})
}
