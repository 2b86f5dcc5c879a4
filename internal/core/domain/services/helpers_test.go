package services_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// 2025-03-03 is a Monday.
var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

type parties struct {
	customer kernel.Actor
	provider kernel.Actor
	agent    kernel.Actor
}

func newParties(t *testing.T) parties {
	t.Helper()
	actor := func(role kernel.Role) kernel.Actor {
		a, err := kernel.NewActor(kernel.NewUUID(), role)
		require.NoError(t, err)
		return a
	}
	return parties{
		customer: actor(kernel.Customer),
		provider: actor(kernel.ServiceProvider),
		agent:    actor(kernel.DeliveryAgent),
	}
}

// pendingOrder places a 4 x 25 order (subtotal 100) at now.
func pendingOrder(t *testing.T, p parties, now time.Time) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Shirt", 4, decimal.NewFromInt(25))
	require.NoError(t, err)
	pickup, err := kernel.NewTimeWindow(now.Add(2*time.Hour), now.Add(4*time.Hour))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), p.customer, p.provider.ID(), []*order.LineItem{item},
		pickup, nil, order.DefaultPricingPolicy(), "create", now)
	require.NoError(t, err)
	return o
}

// readyOrder places an order with the given delivery slot and drives it to ReadyForDelivery.
func readyOrder(t *testing.T, p parties, deliveryFrom, deliveryTo time.Time) *order.Order {
	t.Helper()
	now := monday.Add(-72 * time.Hour)

	item, err := order.NewLineItem(kernel.NewUUID(), "Shirt", 4, decimal.NewFromInt(25))
	require.NoError(t, err)
	pickup, err := kernel.NewTimeWindow(now.Add(2*time.Hour), now.Add(4*time.Hour))
	require.NoError(t, err)
	delivery, err := kernel.NewTimeWindow(deliveryFrom, deliveryTo)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), p.customer, p.provider.ID(), []*order.LineItem{item},
		pickup, &delivery, order.DefaultPricingPolicy(), "create", now)
	require.NoError(t, err)

	require.NoError(t, o.Accept(p.provider, "accept", now))
	require.NoError(t, o.MarkPickedUp(p.provider, "pickup", now))
	require.NoError(t, o.MarkInCleaning(p.provider, "clean", now))
	require.NoError(t, o.MarkReadyForDelivery(p.provider, "ready", now))
	return o
}
