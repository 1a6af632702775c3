package jobs

import (
	"context"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultRelaySchedule  = "*/10 * * * * *"
	DefaultRelayBatchSize = 100
)

type RelayNotificationsHandler interface {
	Handle(ctx context.Context, cmd commands.RelayNotificationsCommand) (int, error)
}

// NotificationRelayJob periodically broadcasts notifications that were stored
// but never reached live viewers.
type NotificationRelayJob struct {
	handler   RelayNotificationsHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewNotificationRelayJob creates the job. schedule is a six-field cron
// expression (with seconds).
func NewNotificationRelayJob(
	handler RelayNotificationsHandler,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) *NotificationRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = DefaultRelayBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With(zap.String("component", "notification_relay_job")),
	}
}

func (j *NotificationRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Notification relay job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Notification relay job stopped")
}

func (j *NotificationRelayJob) run() {
	ctx := context.Background()
	cmd, err := commands.NewRelayNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.Error("Notification relay job misconfigured", zap.Error(err))
		return
	}

	relayed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("Notification relay job failed", zap.Int("relayed", relayed), zap.Error(err))
		return
	}
	if relayed > 0 {
		j.logger.Info("Notifications relayed", zap.Int("relayed", relayed))
	}
}
