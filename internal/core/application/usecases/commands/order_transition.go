package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// orderTransition runs one status change of an order inside a unit of work:
// lock the order, answer retries, apply the change, run follow-ups, commit.
type orderTransition struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

// run executes change for cmd. apply mutates the locked order; after runs in
// the same transaction once the order is stored.
//
// Returns (true, nil) when the request was a retry of an already applied change.
func (t orderTransition) run(
	ctx context.Context,
	cmd OrderCommand,
	target order.Status,
	apply func(uow UoW, o *order.Order) error,
	after func(uow UoW, o *order.Order) error,
) (*order.Order, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, false, err
	}

	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, false, err
	}

	if o.IsRetry(target, cmd.Actor(), cmd.IdempotencyKey()) {
		return o, true, nil
	}

	if err = apply(uow, o); err != nil {
		return nil, false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, false, err
	}

	if after != nil {
		if err = after(uow, o); err != nil {
			return nil, false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return o, false, nil
}
