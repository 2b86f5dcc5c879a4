package jobs

import (
	"fmt"
	"log/slog"
	"slices"
)

// scheduledJob is a cron-backed background task.
type scheduledJob interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  scheduledJob
}

// JobManager starts the background jobs of the service in order and stops
// them in reverse order.
type JobManager struct {
	jobs []namedJob
}

// NewJobManager wires the outbox relay and the OTP purge to their handlers.
func NewJobManager(
	publishOutboxHandler outboxPublisher,
	purgeOtpHandler otpPurger,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{name: "outbox publish", job: NewOutboxPublishJob(publishOutboxHandler, logger)},
			{name: "otp purge", job: NewOtpPurgeJob(purgeOtpHandler, logger)},
		},
	}
}

// StartAll starts every job. When one fails, the jobs already running are
// stopped and the error returned.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			stopAll(jm.jobs[:i])
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops every job and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	stopAll(jm.jobs)
}

func stopAll(jobs []namedJob) {
	for _, j := range slices.Backward(jobs) {
		j.job.Stop()
	}
}
