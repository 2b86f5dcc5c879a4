package commands_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/core/domain/model/payout"
	"laundry/internal/core/domain/model/promotion"
	"laundry/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByCreationKey(ctx context.Context, customerID kernel.UUID, key string) (*order.Order, error) {
	args := m.Called(ctx, customerID, key)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetAgentDeliveries(
	ctx context.Context,
	agentID kernel.UUID,
	statuses ...order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, agentID, statuses)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) CountByCustomer(ctx context.Context, customerID, exceptID kernel.UUID) (int64, error) {
	args := m.Called(ctx, customerID, exceptID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) AddDecline(ctx context.Context, orderID, agentID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, orderID, agentID, at)
	return args.Error(0)
}

type MockOtpRepository struct{ mock.Mock }

func (m *MockOtpRepository) Save(ctx context.Context, c *otp.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockOtpRepository) Get(ctx context.Context, orderID kernel.UUID) (*otp.Challenge, error) {
	args := m.Called(ctx, orderID)
	c, _ := args.Get(0).(*otp.Challenge)
	return c, args.Error(1)
}

func (m *MockOtpRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockAvailabilityRepository struct{ mock.Mock }

func (m *MockAvailabilityRepository) LockAgentDays(ctx context.Context, agentID kernel.UUID, dates ...time.Time) error {
	args := m.Called(ctx, agentID, dates)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Add(ctx context.Context, w *availability.Window) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Update(ctx context.Context, w *availability.Window) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Get(ctx context.Context, id kernel.UUID) (*availability.Window, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*availability.Window)
	return w, args.Error(1)
}

func (m *MockAvailabilityRepository) ListByAgent(
	ctx context.Context,
	agentID kernel.UUID,
	from, to time.Time,
) ([]*availability.Window, error) {
	args := m.Called(ctx, agentID, from, to)
	windows, _ := args.Get(0).([]*availability.Window)
	return windows, args.Error(1)
}

type MockPromotionRepository struct{ mock.Mock }

func (m *MockPromotionRepository) Get(ctx context.Context, id kernel.UUID) (*promotion.Promotion, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*promotion.Promotion)
	return p, args.Error(1)
}

func (m *MockPromotionRepository) ListValidAt(ctx context.Context, at time.Time) ([]*promotion.Promotion, error) {
	args := m.Called(ctx, at)
	promotions, _ := args.Get(0).([]*promotion.Promotion)
	return promotions, args.Error(1)
}

type MockPayoutRepository struct{ mock.Mock }

func (m *MockPayoutRepository) Add(ctx context.Context, e *payout.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockPayoutRepository) MarkPaid(ctx context.Context, e *payout.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.Entry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*payout.Entry)
	return e, args.Error(1)
}

func (m *MockPayoutRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*payout.Entry, error) {
	args := m.Called(ctx, orderID)
	e, _ := args.Get(0).(*payout.Entry)
	return e, args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) ProviderExists(ctx context.Context, providerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, providerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) GetItems(
	ctx context.Context,
	providerID kernel.UUID,
	ids []kernel.UUID,
) (map[kernel.UUID]ports.CatalogItem, error) {
	args := m.Called(ctx, providerID, ids)
	items, _ := args.Get(0).(map[kernel.UUID]ports.CatalogItem)
	return items, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

type MockOtpSender struct{ mock.Mock }

func (m *MockOtpSender) Send(ctx context.Context, n ports.OtpNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockUoW mocks the transaction calls and hands out the repository mocks it holds.
type MockUoW struct {
	mock.Mock

	orders       *MockOrderRepository
	otps         *MockOtpRepository
	availability *MockAvailabilityRepository
	promotions   *MockPromotionRepository
	payouts      *MockPayoutRepository
	catalog      *MockCatalogRepository
	outbox       *MockOutboxRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:       new(MockOrderRepository),
		otps:         new(MockOtpRepository),
		availability: new(MockAvailabilityRepository),
		promotions:   new(MockPromotionRepository),
		payouts:      new(MockPayoutRepository),
		catalog:      new(MockCatalogRepository),
		outbox:       new(MockOutboxRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository               { return m.orders }
func (m *MockUoW) OtpRepository() ports.OtpRepository                   { return m.otps }
func (m *MockUoW) AvailabilityRepository() ports.AvailabilityRepository { return m.availability }
func (m *MockUoW) PromotionRepository() ports.PromotionRepository       { return m.promotions }
func (m *MockUoW) PayoutRepository() ports.PayoutRepository             { return m.payouts }
func (m *MockUoW) CatalogRepository() ports.CatalogRepository           { return m.catalog }
func (m *MockUoW) OutboxRepository() ports.OutboxRepository             { return m.outbox }

// assertAll checks the expectations of the unit of work and every repository.
func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.otps.AssertExpectations(t)
	m.availability.AssertExpectations(t)
	m.promotions.AssertExpectations(t)
	m.payouts.AssertExpectations(t)
	m.catalog.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// committingUoW expects one transaction that commits.
func committingUoW(ctx context.Context) (*MockUoW, *MockUoWFactory) {
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

// abortedUoW expects one transaction that is rolled back without commit.
func abortedUoW(ctx context.Context) (*MockUoW, *MockUoWFactory) {
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedCode string

func (c fixedCode) Generate() (string, error) { return string(c), nil }

// 2025-03-03 is a Monday.
var baseNow = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

type parties struct {
	customer kernel.Actor
	provider kernel.Actor
	agent    kernel.Actor
}

func newParties(t *testing.T) parties {
	t.Helper()
	return parties{
		customer: mustActor(t, kernel.Customer),
		provider: mustActor(t, kernel.ServiceProvider),
		agent:    mustActor(t, kernel.DeliveryAgent),
	}
}

func mustActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func mustWindow(t *testing.T, start, end time.Time) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

// pickupSlot is Monday 10:00-12:00; the default delivery slot is Wednesday 10:00-12:00.
func pickupSlot(t *testing.T) kernel.TimeWindow {
	t.Helper()
	return mustWindow(t, baseNow.Add(2*time.Hour), baseNow.Add(4*time.Hour))
}

// orderIn places a 4 x 25 order at baseNow and drives it along the happy path to status.
func orderIn(t *testing.T, p parties, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Shirt", 4, decimal.NewFromInt(25))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), p.customer, p.provider.ID(), []*order.LineItem{item},
		pickupSlot(t), nil, order.DefaultPricingPolicy(), "create", baseNow)
	require.NoError(t, err)

	steps := []struct {
		status order.Status
		run    func() error
	}{
		{order.AcceptedByProvider, func() error { return o.Accept(p.provider, "accept", baseNow) }},
		{order.PickedUp, func() error { return o.MarkPickedUp(p.provider, "pickup", baseNow) }},
		{order.InCleaning, func() error { return o.MarkInCleaning(p.provider, "clean", baseNow) }},
		{order.ReadyForDelivery, func() error { return o.MarkReadyForDelivery(p.provider, "ready", baseNow) }},
		{order.AcceptedByAgent, func() error { return o.AcceptDelivery(p.agent, "take", baseNow) }},
		{order.OutForDelivery, func() error { return o.ConfirmHandover(p.agent, "handover", baseNow) }},
		{order.Delivered, func() error { return o.ConfirmDelivery(p.agent, "deliver", baseNow) }},
	}
	for _, step := range steps {
		if o.Status() == status {
			break
		}
		require.NoError(t, step.run())
	}
	require.Equal(t, status, o.Status())
	o.ClearDomainEvents()
	return o
}
