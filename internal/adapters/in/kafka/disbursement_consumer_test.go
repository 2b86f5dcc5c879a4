package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReader struct{ mock.Mock }

func (m *MockReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	msg, _ := args.Get(0).(kafka.Message)
	return msg, args.Error(1)
}

func (m *MockReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockReader) Close() error {
	return m.Called().Error(0)
}

type MockHandler struct{ mock.Mock }

func (m *MockHandler) Handle(ctx context.Context, cmd commands.MarkPayoutPaidCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func disbursementOf(id string) kafka.Message {
	return kafka.Message{Offset: 7, Value: []byte(`{"payout_id":"` + id + `"}`)}
}

func TestDisbursementConsumer_Process(t *testing.T) {
	entryID := kernel.NewUUID()

	tests := []struct {
		name      string
		message   kafka.Message
		handleErr error
		wantCall  bool
		wantErr   bool
	}{
		{name: "marks the entry paid", message: disbursementOf(entryID.String()), wantCall: true},
		{name: "unknown payout is skipped", message: disbursementOf(entryID.String()),
			handleErr: errs.NewObjectNotFoundError("payout entry", entryID), wantCall: true},
		{name: "storage failure is retried", message: disbursementOf(entryID.String()),
			handleErr: errors.New("connection reset"), wantCall: true, wantErr: true},
		{name: "malformed json is skipped", message: kafka.Message{Value: []byte("{")}},
		{name: "invalid id is skipped", message: disbursementOf("not-a-uuid")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			handler := &MockHandler{}
			handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MarkPayoutPaidCommand) bool {
				return cmd.EntryID().IsEqual(entryID)
			})).Return(tt.handleErr)
			consumer := newDisbursementConsumer(&MockReader{}, handler, discardLogger())

			// When
			err := consumer.process(t.Context(), tt.message)

			// Then
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantCall {
				handler.AssertNumberOfCalls(t, "Handle", 1)
			} else {
				handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDisbursementConsumer_Run_CommitsAndStops(t *testing.T) {
	// Given one disbursement followed by cancellation
	ctx, cancel := context.WithCancel(t.Context())
	entryID := kernel.NewUUID()
	message := disbursementOf(entryID.String())

	reader := &MockReader{}
	reader.On("FetchMessage", mock.Anything).Return(message, nil).Once()
	reader.On("FetchMessage", mock.Anything).Return(kafka.Message{}, context.Canceled).
		Run(func(mock.Arguments) { cancel() })
	reader.On("CommitMessages", mock.Anything, []kafka.Message{message}).Return(nil).Once()
	reader.On("Close").Return(nil).Once()

	handler := &MockHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()

	consumer := newDisbursementConsumer(reader, handler, discardLogger())

	// When
	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	// Then
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}
	reader.AssertExpectations(t)
	handler.AssertExpectations(t)
}
