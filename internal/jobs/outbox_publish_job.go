package jobs

import (
	"context"
	"log/slog"

	"laundry/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

type outboxPublisher interface {
	Handle(ctx context.Context) (int, error)
}

// OutboxPublishJob forwards stored domain events to Kafka every second.
type OutboxPublishJob struct {
	handler outboxPublisher
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOutboxPublishJob(handler outboxPublisher, logger *slog.Logger) *OutboxPublishJob {
	return &OutboxPublishJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "outbox_publish_job"),
	}
}

func (j *OutboxPublishJob) Start() error {
	if _, err := j.cron.AddFunc("* * * * * *", j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox publish job started (running every second)")
	return nil
}

func (j *OutboxPublishJob) run() {
	ctx := context.Background()

	published, err := j.handler.Handle(ctx)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("publish_outbox").Inc()
		j.logger.ErrorContext(ctx, "Outbox publish job failed", "error", err)
		return
	}
	if published > 0 {
		metrics.OutboxPublishedTotal.Add(float64(published))
		j.logger.DebugContext(ctx, "Published outbox messages", "count", published)
	}
}

// Stop waits for a running publication to finish.
func (j *OutboxPublishJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox publish job stopped")
}
