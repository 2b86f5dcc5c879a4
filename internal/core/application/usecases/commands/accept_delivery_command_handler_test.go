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

func mustAvailability(t *testing.T, agentID kernel.UUID, date time.Time, start, end time.Duration) *availability.Window {
	t.Helper()
	w, err := availability.NewWindow(kernel.NewUUID(), agentID, date, false, start, end)
	require.NoError(t, err)
	return w
}

func newAcceptDeliveryHandler(factory *MockUoWFactory) commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(factory, fixedClock{baseNow},
		services.NewDeliveryDispatcher(time.UTC), time.UTC)
}

func TestAcceptDeliveryCommandHandler_Handle_Success(t *testing.T) {
	// Given an order delivered Wednesday 10:00-12:00 and an agent working Wednesday 09:00-13:00
	ctx := t.Context()
	p := newParties(t)
	o := orderIn(t, p, order.ReadyForDelivery)
	wednesday := availability.DateOf(o.Delivery().Start())
	window := mustAvailability(t, p.agent.ID(), wednesday, 9*time.Hour, 13*time.Hour)
	cmd, err := commands.NewAcceptDeliveryCommand(o.ID(), p.agent, "req-1")
	require.NoError(t, err)

	uow, factory := committingUoW(ctx)
	mock.InOrder(
		uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.availability.On("LockAgentDays", ctx, p.agent.ID(), []time.Time{wednesday}).Return(nil).Once(),
		uow.availability.On("ListByAgent", ctx, p.agent.ID(), wednesday, wednesday).
			Return([]*availability.Window{window}, nil).Once(),
		uow.orders.On("GetAgentDeliveries", ctx, p.agent.ID(),
			[]order.Status{order.AcceptedByAgent, order.OutForDelivery}).Return(nil, nil).Once(),
		uow.orders.On("Update", ctx, o).Return(nil).Once(),
	)

	// When
	h := newAcceptDeliveryHandler(factory)
	err = h.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, order.AcceptedByAgent, o.Status())
	require.NotNil(t, o.AgentID())
	assert.True(t, o.AgentID().IsEqual(p.agent.ID()))
	uow.assertAll(t)
}

func TestAcceptDeliveryCommandHandler_Handle_AgentNotAvailable(t *testing.T) {
	// Given an agent who only works on Monday and a delivery on Wednesday
	ctx := t.Context()
	p := newParties(t)
	o := orderIn(t, p, order.ReadyForDelivery)
	wednesday := availability.DateOf(o.Delivery().Start())
	cmd, err := commands.NewAcceptDeliveryCommand(o.ID(), p.agent, "req-1")
	require.NoError(t, err)

	uow, factory := abortedUoW(ctx)
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.availability.On("LockAgentDays", ctx, p.agent.ID(), mock.Anything).Return(nil).Once()
	uow.availability.On("ListByAgent", ctx, p.agent.ID(), wednesday, wednesday).
		Return([]*availability.Window{}, nil).Once()
	uow.orders.On("GetAgentDeliveries", ctx, p.agent.ID(), mock.Anything).Return(nil, nil).Once()

	// When
	h := newAcceptDeliveryHandler(factory)
	err = h.Handle(ctx, cmd)

	// Then
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.ReadyForDelivery, o.Status())
	assert.Nil(t, o.AgentID())
	uow.assertAll(t)
}

func TestAcceptDeliveryCommandHandler_Handle_OverlappingDelivery(t *testing.T) {
	ctx := t.Context()
	p := newParties(t)
	o := orderIn(t, p, order.ReadyForDelivery)
	busy := orderIn(t, parties{customer: mustActor(t, kernel.Customer), provider: p.provider, agent: p.agent},
		order.AcceptedByAgent)
	wednesday := availability.DateOf(o.Delivery().Start())
	window := mustAvailability(t, p.agent.ID(), wednesday, 9*time.Hour, 13*time.Hour)
	cmd, err := commands.NewAcceptDeliveryCommand(o.ID(), p.agent, "req-1")
	require.NoError(t, err)

	uow, factory := abortedUoW(ctx)
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.availability.On("LockAgentDays", ctx, p.agent.ID(), mock.Anything).Return(nil).Once()
	uow.availability.On("ListByAgent", ctx, p.agent.ID(), wednesday, wednesday).
		Return([]*availability.Window{window}, nil).Once()
	uow.orders.On("GetAgentDeliveries", ctx, p.agent.ID(), mock.Anything).
		Return([]*order.Order{busy}, nil).Once()

	h := newAcceptDeliveryHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.assertAll(t)
}

func TestAcceptDeliveryCommandHandler_Handle_NotReady(t *testing.T) {
	ctx := t.Context()
	p := newParties(t)
	o := orderIn(t, p, order.InCleaning)
	cmd, err := commands.NewAcceptDeliveryCommand(o.ID(), p.agent, "req-1")
	require.NoError(t, err)

	uow, factory := abortedUoW(ctx)
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	h := newAcceptDeliveryHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrTransitionNotAllowed)
	uow.availability.AssertNotCalled(t, "LockAgentDays", mock.Anything, mock.Anything, mock.Anything)
	uow.assertAll(t)
}
