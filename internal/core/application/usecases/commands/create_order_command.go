package commands

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// ItemQuantity is a catalog item the customer wants cleaned and how many of it.
type ItemQuantity struct {
	ItemID   kernel.UUID
	Quantity int
}

// CreateOrderCommand represents a customer booking a laundry order.
// Prices are not part of the command: they are read from the provider catalog.
//
// Example:
//
//	pickup, _ := kernel.NewTimeWindow(tomorrow9, tomorrow11)
//	cmd, err := NewCreateOrderCommand(customer, providerID,
//	    []ItemQuantity{{ItemID: shirtID, Quantity: 3}}, pickup, nil, "req-42")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor          kernel.Actor
	providerID     kernel.UUID
	items          []ItemQuantity
	pickup         kernel.TimeWindow
	delivery       *kernel.TimeWindow
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order.
// Validates the actor, the provider ID, the pickup window and every item line.
// Repeated item IDs are merged by adding up their quantities.
func NewCreateOrderCommand(
	actor kernel.Actor,
	providerID kernel.UUID,
	items []ItemQuantity,
	pickup kernel.TimeWindow,
	delivery *kernel.TimeWindow,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor:          actor,
		providerID:     providerID,
		pickup:         pickup,
		delivery:       delivery,
		idempotencyKey: strings.TrimSpace(idempotencyKey),
		guard:          guard.NewConstructorGuard(),
	}

	var deliveryErr error
	if delivery != nil {
		deliveryErr = delivery.Validate()
	}

	if err := errors.Join(
		actor.Validate(),
		providerID.Validate(),
		pickup.Validate(),
		deliveryErr,
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// Items returns the merged item lines in the order they first appeared.
func (c CreateOrderCommand) Items() []ItemQuantity {
	items := make([]ItemQuantity, len(c.items))
	copy(items, c.items)
	return items
}

func (c CreateOrderCommand) Pickup() kernel.TimeWindow {
	return c.pickup
}

// Delivery returns the requested delivery window, nil for the default.
func (c CreateOrderCommand) Delivery() *kernel.TimeWindow {
	return c.delivery
}

func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// ItemIDs returns the distinct catalog item IDs of the command.
func (c CreateOrderCommand) ItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.ItemID)
	}
	return ids
}

func (c *CreateOrderCommand) setItems(items []ItemQuantity) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	index := make(map[kernel.UUID]int, len(items))
	merged := make([]ItemQuantity, 0, len(items))
	var errList []error
	for i, item := range items {
		if err := item.ItemID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		if item.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("item %d quantity", i), item.Quantity, 1, "unbounded"))
			continue
		}
		if at, ok := index[item.ItemID]; ok {
			merged[at].Quantity += item.Quantity
			continue
		}
		index[item.ItemID] = len(merged)
		merged = append(merged, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = merged
	return nil
}
