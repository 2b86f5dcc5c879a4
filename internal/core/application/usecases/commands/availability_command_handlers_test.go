package commands_test

import (
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	mondayDate    = availability.DateOf(baseNow)
	tuesdayDate   = mondayDate.AddDate(0, 0, 1)
	wednesdayDate = mondayDate.AddDate(0, 0, 2)
)

func dispatcher() services.DeliveryDispatcher {
	return services.NewDeliveryDispatcher(time.UTC)
}

func TestSaveAvailabilityCommandHandler_Handle_CreatesWindows(t *testing.T) {
	// Given
	ctx := t.Context()
	agent := mustActor(t, kernel.DeliveryAgent)
	cmd, err := commands.NewSaveAvailabilityCommand(agent, []commands.AvailabilityEntry{
		{Date: mondayDate, Start: 9 * time.Hour, End: 13 * time.Hour},
		{Date: mondayDate, Start: 14 * time.Hour, End: 18 * time.Hour},
		{Date: wednesdayDate, IsHoliday: true},
	})
	require.NoError(t, err)

	uow, factory := committingUoW(ctx)
	uow.availability.On("LockAgentDays", ctx, agent.ID(), []time.Time{mondayDate, tuesdayDate, wednesdayDate}).
		Return(nil).Once()
	uow.availability.On("ListByAgent", ctx, agent.ID(), mondayDate, wednesdayDate).
		Return([]*availability.Window{}, nil).Once()
	uow.availability.On("Add", ctx, mock.AnythingOfType("*availability.Window")).Return(nil).Times(3)

	// When
	h := commands.NewSaveAvailabilityCommandHandler(factory, fixedClock{baseNow}, dispatcher(), time.UTC)
	ids, err := h.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	uow.assertAll(t)
}

func TestSaveAvailabilityCommandHandler_Handle_OverlapWithStored(t *testing.T) {
	ctx := t.Context()
	agent := mustActor(t, kernel.DeliveryAgent)
	stored := mustAvailability(t, agent.ID(), mondayDate, 9*time.Hour, 13*time.Hour)
	cmd, err := commands.NewSaveAvailabilityCommand(agent, []commands.AvailabilityEntry{
		{Date: mondayDate, Start: 12 * time.Hour, End: 15 * time.Hour},
	})
	require.NoError(t, err)

	uow, factory := abortedUoW(ctx)
	uow.availability.On("LockAgentDays", ctx, agent.ID(), mock.Anything).Return(nil).Once()
	uow.availability.On("ListByAgent", ctx, agent.ID(), mondayDate, mondayDate).
		Return([]*availability.Window{stored}, nil).Once()

	h := commands.NewSaveAvailabilityCommandHandler(factory, fixedClock{baseNow}, dispatcher(), time.UTC)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.assertAll(t)
}

func TestSaveAvailabilityCommandHandler_Handle_OutsideHorizon(t *testing.T) {
	ctx := t.Context()
	agent := mustActor(t, kernel.DeliveryAgent)
	cmd, err := commands.NewSaveAvailabilityCommand(agent, []commands.AvailabilityEntry{
		{Date: mondayDate.AddDate(0, 0, 14), Start: 9 * time.Hour, End: 13 * time.Hour},
	})
	require.NoError(t, err)
	factory := new(MockUoWFactory)

	h := commands.NewSaveAvailabilityCommandHandler(factory, fixedClock{baseNow}, dispatcher(), time.UTC)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	factory.AssertNotCalled(t, "Create")
}

func TestSaveAvailabilityCommandHandler_Handle_OnlyAgents(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSaveAvailabilityCommand(mustActor(t, kernel.Customer), []commands.AvailabilityEntry{
		{Date: mondayDate, Start: 9 * time.Hour, End: 13 * time.Hour},
	})
	require.NoError(t, err)

	h := commands.NewSaveAvailabilityCommandHandler(new(MockUoWFactory), fixedClock{baseNow}, dispatcher(), time.UTC)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrActorNotAuthorized)
}

func TestEditAvailabilityCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Duration
		wantErr    error
	}{
		{name: "still covers the accepted delivery", start: 8 * time.Hour, end: 12 * time.Hour},
		{name: "would strand the accepted delivery", start: 14 * time.Hour, end: 18 * time.Hour, wantErr: errs.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given an accepted Wednesday 10:00-12:00 delivery covered by a 09:00-13:00 window
			ctx := t.Context()
			p := newParties(t)
			accepted := orderIn(t, p, order.AcceptedByAgent)
			window := mustAvailability(t, p.agent.ID(), wednesdayDate, 9*time.Hour, 13*time.Hour)
			cmd, err := commands.NewEditAvailabilityCommand(window.ID(), p.agent, wednesdayDate, false, tt.start, tt.end)
			require.NoError(t, err)

			var uow *MockUoW
			var factory *MockUoWFactory
			if tt.wantErr == nil {
				uow, factory = committingUoW(ctx)
				uow.availability.On("Update", ctx, window).Return(nil).Once()
			} else {
				uow, factory = abortedUoW(ctx)
			}
			uow.availability.On("Get", ctx, window.ID()).Return(window, nil).Once()
			uow.availability.On("LockAgentDays", ctx, p.agent.ID(), []time.Time{wednesdayDate}).Return(nil).Once()
			uow.availability.On("ListByAgent", ctx, p.agent.ID(), wednesdayDate, wednesdayDate).
				Return([]*availability.Window{window}, nil).Once()
			uow.orders.On("GetAgentDeliveries", ctx, p.agent.ID(), []order.Status{order.AcceptedByAgent}).
				Return([]*order.Order{accepted}, nil).Once()

			// When
			h := commands.NewEditAvailabilityCommandHandler(factory, fixedClock{baseNow}, dispatcher(), time.UTC)
			err = h.Handle(ctx, cmd)

			// Then
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 9*time.Hour, window.Start())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.start, window.Start())
			}
			uow.assertAll(t)
		})
	}
}

func TestEditAvailabilityCommandHandler_Handle_LocksEveryListedDay(t *testing.T) {
	// Given a Monday window moved to Wednesday, with another window stored on Tuesday
	ctx := t.Context()
	agent := mustActor(t, kernel.DeliveryAgent)
	window := mustAvailability(t, agent.ID(), mondayDate, 9*time.Hour, 13*time.Hour)
	tuesday := mustAvailability(t, agent.ID(), tuesdayDate, 9*time.Hour, 13*time.Hour)
	cmd, err := commands.NewEditAvailabilityCommand(window.ID(), agent, wednesdayDate, false, 9*time.Hour, 13*time.Hour)
	require.NoError(t, err)

	uow, factory := committingUoW(ctx)
	uow.availability.On("Get", ctx, window.ID()).Return(window, nil).Once()
	uow.availability.On("LockAgentDays", ctx, agent.ID(), []time.Time{mondayDate, tuesdayDate, wednesdayDate}).
		Return(nil).Once()
	uow.availability.On("ListByAgent", ctx, agent.ID(), mondayDate, wednesdayDate).
		Return([]*availability.Window{window, tuesday}, nil).Once()
	uow.orders.On("GetAgentDeliveries", ctx, agent.ID(), mock.Anything).Return(nil, nil).Once()
	uow.availability.On("Update", ctx, window).Return(nil).Once()

	// When
	h := commands.NewEditAvailabilityCommandHandler(factory, fixedClock{baseNow}, dispatcher(), time.UTC)
	err = h.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.True(t, window.Date().Equal(wednesdayDate))
	uow.assertAll(t)
}

func TestEditAvailabilityCommandHandler_Handle_OtherAgentsWindow(t *testing.T) {
	ctx := t.Context()
	owner := mustActor(t, kernel.DeliveryAgent)
	window := mustAvailability(t, owner.ID(), mondayDate, 9*time.Hour, 13*time.Hour)
	cmd, err := commands.NewEditAvailabilityCommand(window.ID(), mustActor(t, kernel.DeliveryAgent),
		mondayDate, false, 10*time.Hour, 12*time.Hour)
	require.NoError(t, err)

	uow, factory := abortedUoW(ctx)
	uow.availability.On("Get", ctx, window.ID()).Return(window, nil).Once()

	h := commands.NewEditAvailabilityCommandHandler(factory, fixedClock{baseNow}, dispatcher(), time.UTC)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrActorNotAuthorized)
	uow.assertAll(t)
}

func TestDeleteAvailabilityCommandHandler_Handle(t *testing.T) {
	t.Run("window without deliveries is deleted", func(t *testing.T) {
		ctx := t.Context()
		agent := mustActor(t, kernel.DeliveryAgent)
		window := mustAvailability(t, agent.ID(), mondayDate, 9*time.Hour, 13*time.Hour)
		cmd, err := commands.NewDeleteAvailabilityCommand(window.ID(), agent)
		require.NoError(t, err)

		uow, factory := committingUoW(ctx)
		uow.availability.On("Get", ctx, window.ID()).Return(window, nil).Once()
		uow.availability.On("LockAgentDays", ctx, agent.ID(), []time.Time{mondayDate}).Return(nil).Once()
		uow.availability.On("ListByAgent", ctx, agent.ID(), mondayDate, mondayDate).
			Return([]*availability.Window{window}, nil).Once()
		uow.orders.On("GetAgentDeliveries", ctx, agent.ID(), mock.Anything).Return(nil, nil).Once()
		uow.availability.On("Delete", ctx, window.ID()).Return(nil).Once()

		h := commands.NewDeleteAvailabilityCommandHandler(factory, dispatcher())
		require.NoError(t, h.Handle(ctx, cmd))
		uow.assertAll(t)
	})

	t.Run("window covering an accepted delivery stays", func(t *testing.T) {
		ctx := t.Context()
		p := newParties(t)
		accepted := orderIn(t, p, order.AcceptedByAgent)
		window := mustAvailability(t, p.agent.ID(), wednesdayDate, 9*time.Hour, 13*time.Hour)
		cmd, err := commands.NewDeleteAvailabilityCommand(window.ID(), p.agent)
		require.NoError(t, err)

		uow, factory := abortedUoW(ctx)
		uow.availability.On("Get", ctx, window.ID()).Return(window, nil).Once()
		uow.availability.On("LockAgentDays", ctx, p.agent.ID(), mock.Anything).Return(nil).Once()
		uow.availability.On("ListByAgent", ctx, p.agent.ID(), wednesdayDate, wednesdayDate).
			Return([]*availability.Window{window}, nil).Once()
		uow.orders.On("GetAgentDeliveries", ctx, p.agent.ID(), mock.Anything).
			Return([]*order.Order{accepted}, nil).Once()

		h := commands.NewDeleteAvailabilityCommandHandler(factory, dispatcher())
		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
		uow.assertAll(t)
	})
}

func TestNewSaveAvailabilityCommand_RepeatedWindow(t *testing.T) {
	id := kernel.NewUUID()
	_, err := commands.NewSaveAvailabilityCommand(mustActor(t, kernel.DeliveryAgent), []commands.AvailabilityEntry{
		{ID: &id, Date: mondayDate, Start: 9 * time.Hour, End: 10 * time.Hour},
		{ID: &id, Date: mondayDate, Start: 11 * time.Hour, End: 12 * time.Hour},
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
