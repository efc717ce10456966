package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/email"
	"github.com/rs/zerolog"
)

type sentEmail struct {
	kind string
	to   string
	args []string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (f *fakeMailer) record(kind, to string, args ...string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{kind: kind, to: to, args: args})
	return nil
}

func (f *fakeMailer) SendWelcomeEmail(_ context.Context, to, name string) error {
	return f.record("welcome", to, name)
}

func (f *fakeMailer) SendPasswordResetEmail(_ context.Context, to, name, token string, expiresIn time.Duration) error {
	return f.record("reset", to, name, token, expiresIn.String())
}

func (f *fakeMailer) SendServiceRequestConfirmation(_ context.Context, to, name, serviceType, vehicle, preferredDate, reference string) error {
	return f.record("service", to, name, serviceType, vehicle, preferredDate, reference)
}

func (f *fakeMailer) SendSellSubmissionConfirmation(_ context.Context, to, name, vehicle, reference string) error {
	return f.record("sell", to, name, vehicle, reference)
}

func (f *fakeMailer) SendStaffNotification(_ context.Context, to, subject string, fields []email.Field) error {
	args := []string{subject}
	for _, field := range fields {
		args = append(args, field.Label+"="+field.Value)
	}
	return f.record("staff", to, args...)
}

func newTestJobService(m Mailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{
		logger: &logger,
		mailer: m,
		cfg: &config.Config{
			Integration: config.IntegrationConfig{StaffEmail: "staff@enthusiastauto.example"},
		},
	}
}

func TestTasksRouteToMailer(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer)
	ctx := context.Background()

	welcome, _ := NewWelcomeEmailTask("a@example.com", "Ada")
	reset, _ := NewPasswordResetEmailTask("b@example.com", "Bo", "tok", time.Hour)
	service, _ := NewServiceRequestEmailTask(ServiceRequestEmailPayload{To: "c@example.com", Name: "Cy", ServiceType: "repair", Vehicle: "1999 BMW Z3", Reference: "SR-1"})
	sell, _ := NewSellSubmissionEmailTask(SellSubmissionEmailPayload{To: "d@example.com", Name: "Di", Vehicle: "2001 Audi TT", Reference: "SS-1"})
	staff, _ := NewStaffNotificationTask("New service request", []email.Field{{Label: "Name", Value: "Cy"}})

	mux := j.Mux()
	for _, task := range []*asynq.Task{welcome, reset, service, sell, staff} {
		if err := mux.ProcessTask(ctx, task); err != nil {
			t.Fatalf("process %s: %v", task.Type(), err)
		}
	}

	want := []struct{ kind, to string }{
		{"welcome", "a@example.com"},
		{"reset", "b@example.com"},
		{"service", "c@example.com"},
		{"sell", "d@example.com"},
		{"staff", "staff@enthusiastauto.example"},
	}
	if len(mailer.sent) != len(want) {
		t.Fatalf("sent %d emails, want %d", len(mailer.sent), len(want))
	}
	for i, w := range want {
		if mailer.sent[i].kind != w.kind || mailer.sent[i].to != w.to {
			t.Fatalf("email %d = %+v, want %+v", i, mailer.sent[i], w)
		}
	}
	if mailer.sent[1].args[1] != "tok" || mailer.sent[1].args[2] != "1h0m0s" {
		t.Fatalf("reset args = %v", mailer.sent[1].args)
	}
}

func TestSendFailureIsReturnedForRetry(t *testing.T) {
	boom := errors.New("provider down")
	j := newTestJobService(&fakeMailer{err: boom})

	task, _ := NewWelcomeEmailTask("a@example.com", "Ada")
	if err := j.Mux().ProcessTask(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	j := newTestJobService(&fakeMailer{})

	err := j.Mux().ProcessTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("err = %v, want SkipRetry", err)
	}
}
