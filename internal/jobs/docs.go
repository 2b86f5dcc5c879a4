// Package jobs provides scheduled background tasks of the laundry service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxPublishJob - Runs every second and forwards committed domain events to Kafka
// 2. OtpPurgeJob - Runs hourly and deletes OTP challenges past their retention
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(&publishOutboxHandler, &purgeOtpHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The outbox job skips a tick while the previous run is still publishing,
// so batches never overlap within one process. Several processes may run it
// at once: the outbox rows are locked with SKIP LOCKED.
//
// # Error Handling
//
// Failures are logged and counted in laundry_operation_errors_total. The
// next tick retries; unpublished messages stay in the outbox.
package jobs
