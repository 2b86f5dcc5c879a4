package commands_test

import (
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeclineDeliveryCommandHandler_Handle_Success(t *testing.T) {
	// Given
	ctx := t.Context()
	p := newParties(t)
	o := orderIn(t, p, order.ReadyForDelivery)
	history := len(o.History())
	cmd, err := commands.NewDeclineDeliveryCommand(o.ID(), p.agent, "req-1")
	require.NoError(t, err)

	uow, factory := committingUoW(ctx)
	mock.InOrder(
		uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.orders.On("AddDecline", ctx, o.ID(), p.agent.ID(), baseNow).Return(nil).Once(),
	)

	// When
	h := commands.NewDeclineDeliveryCommandHandler(factory, fixedClock{baseNow})
	err = h.Handle(ctx, cmd)

	// Then the order itself is untouched
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForDelivery, o.Status())
	assert.Len(t, o.History(), history)
	assert.Nil(t, o.AgentID())
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.assertAll(t)
}

func TestDeclineDeliveryCommandHandler_Handle_Refused(t *testing.T) {
	tests := []struct {
		name    string
		status  order.Status
		role    kernel.Role
		wantErr error
	}{
		{"order still in cleaning", order.InCleaning, kernel.DeliveryAgent, errs.ErrTransitionNotAllowed},
		{"order already taken", order.AcceptedByAgent, kernel.DeliveryAgent, errs.ErrTransitionNotAllowed},
		{"caller is not an agent", order.ReadyForDelivery, kernel.Customer, errs.ErrActorNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			ctx := t.Context()
			p := newParties(t)
			o := orderIn(t, p, tt.status)
			cmd, err := commands.NewDeclineDeliveryCommand(o.ID(), mustActor(t, tt.role), "req-1")
			require.NoError(t, err)

			uow, factory := abortedUoW(ctx)
			uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

			// When
			h := commands.NewDeclineDeliveryCommandHandler(factory, fixedClock{baseNow})
			err = h.Handle(ctx, cmd)

			// Then
			require.ErrorIs(t, err, tt.wantErr)
			uow.orders.AssertNotCalled(t, "AddDecline", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			uow.assertAll(t)
		})
	}
}

func TestDeclineDeliveryCommandHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	p := newParties(t)
	orderID := kernel.NewUUID()
	cmd, err := commands.NewDeclineDeliveryCommand(orderID, p.agent, "")
	require.NoError(t, err)

	uow, factory := abortedUoW(ctx)
	uow.orders.On("GetForUpdate", ctx, orderID).
		Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

	h := commands.NewDeclineDeliveryCommandHandler(factory, fixedClock{baseNow})
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	uow.assertAll(t)
}
