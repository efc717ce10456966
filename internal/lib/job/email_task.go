package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/email"
)

const (
	TaskWelcome           = "email:welcome"
	TaskPasswordReset     = "email:password_reset"
	TaskServiceRequest    = "email:service_request"
	TaskSellSubmission    = "email:sell_submission"
	TaskStaffNotification = "email:staff_notification"
)

type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

type PasswordResetEmailPayload struct {
	To        string        `json:"to"`
	Name      string        `json:"name"`
	Token     string        `json:"token"`
	ExpiresIn time.Duration `json:"expires_in"`
}

type ServiceRequestEmailPayload struct {
	To            string `json:"to"`
	Name          string `json:"name"`
	ServiceType   string `json:"service_type"`
	Vehicle       string `json:"vehicle"`
	PreferredDate string `json:"preferred_date,omitempty"`
	Reference     string `json:"reference"`
}

type SellSubmissionEmailPayload struct {
	To        string `json:"to"`
	Name      string `json:"name"`
	Vehicle   string `json:"vehicle"`
	Reference string `json:"reference"`
}

// StaffNotificationPayload is sent to the configured staff address.
type StaffNotificationPayload struct {
	Subject string        `json:"subject"`
	Fields  []email.Field `json:"fields"`
}

func newEmailTask(taskType string, payload any, queue string) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		taskType,
		raw,
		asynq.MaxRetry(3),
		asynq.Queue(queue),
		asynq.Timeout(30*time.Second),
	), nil
}

func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	return newEmailTask(TaskWelcome, WelcomeEmailPayload{To: to, Name: name}, "default")
}

// NewPasswordResetEmailTask goes to the critical queue since the link
// expires.
func NewPasswordResetEmailTask(to, name, token string, expiresIn time.Duration) (*asynq.Task, error) {
	return newEmailTask(TaskPasswordReset, PasswordResetEmailPayload{
		To:        to,
		Name:      name,
		Token:     token,
		ExpiresIn: expiresIn,
	}, "critical")
}

func NewServiceRequestEmailTask(p ServiceRequestEmailPayload) (*asynq.Task, error) {
	return newEmailTask(TaskServiceRequest, p, "default")
}

func NewSellSubmissionEmailTask(p SellSubmissionEmailPayload) (*asynq.Task, error) {
	return newEmailTask(TaskSellSubmission, p, "default")
}

func NewStaffNotificationTask(subject string, fields []email.Field) (*asynq.Task, error) {
	return newEmailTask(TaskStaffNotification, StaffNotificationPayload{Subject: subject, Fields: fields}, "low")
}
