// Package kafka consumes events from other services.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultDisbursementsTopic = "payments.disbursements"
	DefaultConsumerGroup      = "laundry-payouts"

	retryDelay = 5 * time.Second
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type markPayoutPaidHandler interface {
	Handle(ctx context.Context, cmd commands.MarkPayoutPaidCommand) error
}

// Disbursement is published by the payments service once money reached an agent.
type Disbursement struct {
	PayoutID string `json:"payout_id"`
}

// DisbursementConsumer marks payout entries paid as disbursements arrive.
// Offsets are committed after the entry is stored, so delivery is at least
// once; marking an entry paid twice is a no-op.
type DisbursementConsumer struct {
	reader  messageReader
	handler markPayoutPaidHandler
	logger  *slog.Logger
}

func NewDisbursementConsumer(
	brokers []string,
	topic, groupID string,
	handler markPayoutPaidHandler,
	logger *slog.Logger,
) *DisbursementConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: 0,
		MaxWait:        3 * time.Second,
	})
	return newDisbursementConsumer(reader, handler, logger)
}

func newDisbursementConsumer(reader messageReader, handler markPayoutPaidHandler, logger *slog.Logger) *DisbursementConsumer {
	return &DisbursementConsumer{
		reader:  reader,
		handler: handler,
		logger:  logger.With("component", "disbursement_consumer"),
	}
}

// Run reads until ctx is cancelled and closes the reader on return.
func (c *DisbursementConsumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Error("Failed to close kafka reader", "error", err)
		}
	}()

	c.logger.InfoContext(ctx, "Disbursement consumer started")
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Disbursement consumer stopped")
				return nil
			}
			c.logger.ErrorContext(ctx, "Failed to read disbursement", "error", err)
			if !sleep(ctx, retryDelay) {
				return nil
			}
			continue
		}

		for {
			err = c.process(ctx, m)
			if err == nil {
				break
			}
			metrics.OperationErrorsTotal.WithLabelValues("mark_payout_paid").Inc()
			c.logger.ErrorContext(ctx, "Failed to mark payout paid, retrying",
				"offset", m.Offset, "error", err)
			if !sleep(ctx, retryDelay) {
				return nil
			}
		}

		if err = c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			c.logger.ErrorContext(ctx, "Failed to commit disbursement offset", "offset", m.Offset, "error", err)
		}
	}
}

// process returns an error only for failures worth retrying. Malformed
// messages and unknown payouts are logged and skipped.
func (c *DisbursementConsumer) process(ctx context.Context, m kafka.Message) error {
	var d Disbursement
	if err := json.Unmarshal(m.Value, &d); err != nil {
		c.logger.WarnContext(ctx, "Skipping malformed disbursement", "offset", m.Offset, "error", err)
		return nil
	}

	entryID, err := kernel.UUIDFromString(d.PayoutID)
	if err != nil {
		c.logger.WarnContext(ctx, "Skipping disbursement with invalid payout id", "payout_id", d.PayoutID)
		return nil
	}

	cmd, err := commands.NewMarkPayoutPaidCommand(entryID)
	if err != nil {
		return err
	}

	err = c.handler.Handle(ctx, cmd)
	if errors.Is(err, errs.ErrObjectNotFound) {
		c.logger.WarnContext(ctx, "Skipping disbursement of unknown payout", "payout_id", d.PayoutID)
		return nil
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
