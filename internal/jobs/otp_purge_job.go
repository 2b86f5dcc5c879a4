package jobs

import (
	"context"
	"log/slog"

	"laundry/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

type otpPurger interface {
	Handle(ctx context.Context) (int64, error)
}

// OtpPurgeJob deletes stale OTP challenges at the top of every hour.
type OtpPurgeJob struct {
	handler otpPurger
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOtpPurgeJob(handler otpPurger, logger *slog.Logger) *OtpPurgeJob {
	return &OtpPurgeJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "otp_purge_job"),
	}
}

func (j *OtpPurgeJob) Start() error {
	if _, err := j.cron.AddFunc("@hourly", j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "OTP purge job started (running hourly)")
	return nil
}

func (j *OtpPurgeJob) run() {
	ctx := context.Background()

	deleted, err := j.handler.Handle(ctx)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("purge_otp_challenges").Inc()
		j.logger.ErrorContext(ctx, "OTP purge job failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Purged stale OTP challenges", "count", deleted)
}

func (j *OtpPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "OTP purge job stopped")
}
