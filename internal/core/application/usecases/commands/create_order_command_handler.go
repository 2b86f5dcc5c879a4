package commands

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// CreateOrderCommandHandler places new orders.
// Items are priced from the provider catalog and the totals are computed
// with the pricing policy in force.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock.System{}, order.DefaultPricingPolicy())
//	orderID, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // unknown provider or item
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	pricing    order.PricingPolicy
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	pricing order.PricingPolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		pricing:    pricing,
	}
}

// Handle places the order and returns its ID.
// A retry carrying the idempotency key of an order the customer already
// created returns that order's ID and creates nothing.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if cmd.Actor().Role() != kernel.Customer {
		return kernel.UUID{}, cmd.Actor().NotAuthorized("create order")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if cmd.IdempotencyKey() != "" {
		existing, err := orderRepo.GetByCreationKey(ctx, cmd.Actor().ID(), cmd.IdempotencyKey())
		if err == nil {
			return existing.ID(), nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.UUID{}, err
		}
	}

	items, err := h.priceItems(ctx, uow.CatalogRepository(), cmd)
	if err != nil {
		return kernel.UUID{}, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.Actor(),
		cmd.ProviderID(),
		items,
		cmd.Pickup(),
		cmd.Delivery(),
		h.pricing,
		cmd.IdempotencyKey(),
		h.clock.Now(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}

func (h *CreateOrderCommandHandler) priceItems(
	ctx context.Context,
	catalog ports.CatalogRepository,
	cmd CreateOrderCommand,
) ([]*order.LineItem, error) {
	exists, err := catalog.ProviderExists(ctx, cmd.ProviderID())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewValueIsInvalidErrorWithCause("provider",
			fmt.Errorf("service provider %s is not listed", cmd.ProviderID()))
	}

	known, err := catalog.GetItems(ctx, cmd.ProviderID(), cmd.ItemIDs())
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(cmd.Items()))
	var errList []error
	for _, requested := range cmd.Items() {
		catalogItem, ok := known[requested.ItemID]
		if !ok {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("item",
				fmt.Errorf("%s is not in the provider catalog", requested.ItemID)))
			continue
		}
		item, itemErr := order.NewLineItem(catalogItem.ID, catalogItem.Name,
			requested.Quantity, catalogItem.Price.Round(2))
		if itemErr != nil {
			errList = append(errList, itemErr)
			continue
		}
		items = append(items, item)
	}
	if err = errors.Join(errList...); err != nil {
		return nil, err
	}

	return items, nil
}
