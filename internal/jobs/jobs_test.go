package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxPublisher struct{ mock.Mock }

func (m *MockOutboxPublisher) Handle(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockOtpPurger struct{ mock.Mock }

func (m *MockOtpPurger) Handle(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutboxPublishJob_Run(t *testing.T) {
	t.Run("publishes a batch", func(t *testing.T) {
		handler := &MockOutboxPublisher{}
		handler.On("Handle", mock.Anything).Return(3, nil).Once()

		NewOutboxPublishJob(handler, discardLogger()).run()

		handler.AssertExpectations(t)
	})

	t.Run("failure is swallowed for the next tick", func(t *testing.T) {
		handler := &MockOutboxPublisher{}
		handler.On("Handle", mock.Anything).Return(0, errors.New("broker down")).Once()

		assert.NotPanics(t, NewOutboxPublishJob(handler, discardLogger()).run)
		handler.AssertExpectations(t)
	})
}

func TestOtpPurgeJob_Run(t *testing.T) {
	handler := &MockOtpPurger{}
	handler.On("Handle", mock.Anything).Return(int64(2), nil).Once()

	NewOtpPurgeJob(handler, discardLogger()).run()

	handler.AssertExpectations(t)
}

func TestJobManager_StartAndStop(t *testing.T) {
	publisher := &MockOutboxPublisher{}
	publisher.On("Handle", mock.Anything).Return(0, nil).Maybe()
	purger := &MockOtpPurger{}
	purger.On("Handle", mock.Anything).Return(int64(0), nil).Maybe()
	manager := NewJobManager(publisher, purger, discardLogger())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

type fakeJob struct {
	startErr error
	log      *[]string
	name     string
}

func (f fakeJob) Start() error {
	*f.log = append(*f.log, "start "+f.name)
	return f.startErr
}

func (f fakeJob) Stop() {
	*f.log = append(*f.log, "stop "+f.name)
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	// Given
	var calls []string
	manager := &JobManager{jobs: []namedJob{
		{name: "first", job: fakeJob{name: "first", log: &calls}},
		{name: "second", job: fakeJob{name: "second", log: &calls}},
		{name: "third", job: fakeJob{name: "third", log: &calls, startErr: errors.New("invalid cron expression")}},
	}}

	// When
	err := manager.StartAll()

	// Then
	require.ErrorContains(t, err, "failed to start third job")
	assert.Equal(t, []string{"start first", "start second", "start third", "stop second", "stop first"}, calls)
}
