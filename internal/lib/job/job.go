// Package job runs background work on Asynq. Handlers enqueue tasks with
// the Client and the worker server processes them from Redis.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/rs/zerolog"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
	mailer Mailer
	cfg    *config.Config
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	}
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	client := asynq.NewClient(redisOpt(cfg))

	server := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
		cfg:    cfg,
	}
}

// Mux routes every task type to its handler.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskPasswordReset, j.handlePasswordResetEmailTask)
	mux.HandleFunc(TaskServiceRequest, j.handleServiceRequestEmailTask)
	mux.HandleFunc(TaskSellSubmission, j.handleSellSubmissionEmailTask)
	mux.HandleFunc(TaskStaffNotification, j.handleStaffNotificationTask)
	return mux
}

// Start launches the worker pool; it returns once the workers are running.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")
	return j.server.Start(j.Mux())
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

// Dispatch builds and enqueues a task. Email is a side effect of the request
// that triggered it, so failures are logged and not returned.
func Dispatch(ctx context.Context, q Enqueuer, logger *zerolog.Logger, build func() (*asynq.Task, error)) {
	task, err := build()
	if err != nil {
		logger.Error().Err(err).Msg("failed to build task")
		return
	}

	info, err := q.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error().Err(err).Str("type", task.Type()).Msg("failed to enqueue task")
		return
	}

	logger.Debug().Str("type", task.Type()).Str("task_id", info.ID).Str("queue", info.Queue).Msg("task enqueued")
}
