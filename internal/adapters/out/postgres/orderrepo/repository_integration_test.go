package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var baseNow = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker

	customer kernel.Actor
	provider kernel.Actor
	agent    kernel.Actor
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &orderrepo.StatusEntryDTO{},
		&orderrepo.DeclineDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_history, order_declines").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)

	suite.customer = suite.actor(kernel.Customer)
	suite.provider = suite.actor(kernel.ServiceProvider)
	suite.agent = suite.actor(kernel.DeliveryAgent)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresAggregate() {
	ctx := suite.T().Context()

	// Given
	o := suite.newOrder("create-1")
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", o.ID(), o).Once()
	repo := orderrepo.NewGormOrderRepository(suite.db, tracker)

	// When
	suite.Require().NoError(repo.Add(ctx, o))
	got, err := repo.Get(ctx, o.ID())

	// Then
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
	suite.Equal(o.CustomerID(), got.CustomerID())
	suite.Equal(order.Pending, got.Status())
	suite.Require().Len(got.Items(), 1)
	suite.Equal("Shirt", got.Items()[0].Name())
	suite.Equal(4, got.Items()[0].Quantity())
	suite.True(decimal.NewFromInt(158).Equal(got.Totals().FinalAmount), got.Totals().FinalAmount.String())
	suite.True(o.Pickup().Start().Equal(got.Pickup().Start()))
	suite.Require().Len(got.History(), 1)
	suite.Equal("create-1", got.History()[0].IdempotencyKey)
	tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetForUpdate(suite.T().Context(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsHistoryAndBumpsVersion() {
	ctx := suite.T().Context()

	// Given
	o := suite.newOrder("create")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	// When
	loaded, err := suite.repository.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Accept(suite.provider, "accept", baseNow.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	// Then
	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.AcceptedByProvider, got.Status())
	suite.Equal(loaded.Version()+1, got.Version())
	suite.Require().Len(got.History(), 2)
	suite.Equal(order.AcceptedByProvider, got.History()[1].Status)
	suite.Equal(suite.provider.ID(), got.History()[1].ActorID)
	suite.Equal("accept", got.History()[1].IdempotencyKey)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleCopy_ReturnsVersionError() {
	ctx := suite.T().Context()

	// Given two copies read at the same version
	o := suite.newOrder("create")
	suite.Require().NoError(suite.repository.Add(ctx, o))
	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	// When both are changed
	suite.Require().NoError(first.Accept(suite.provider, "accept", baseNow))
	suite.Require().NoError(suite.repository.Update(ctx, first))
	suite.Require().NoError(second.Reject(suite.provider, "reject", baseNow))
	err = suite.repository.Update(ctx, second)

	// Then the second write loses
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.AcceptedByProvider, got.Status())
	suite.Len(got.History(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	o := suite.newOrder("create")
	err := suite.repository.Update(suite.T().Context(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByCreationKey() {
	ctx := suite.T().Context()

	// Given
	o := suite.newOrder("checkout-42")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Run("same customer and key", func() {
		got, err := suite.repository.GetByCreationKey(ctx, suite.customer.ID(), "checkout-42")
		suite.Require().NoError(err)
		suite.Equal(o.ID(), got.ID())
	})

	suite.Run("other customer", func() {
		_, err := suite.repository.GetByCreationKey(ctx, kernel.NewUUID(), "checkout-42")
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})

	suite.Run("duplicate key is rejected by the index", func() {
		err := suite.repository.Add(ctx, suite.newOrder("checkout-42"))
		suite.Require().Error(err)
	})

	suite.Run("orders without a key do not collide", func() {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("")))
		suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("")))
	})
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAgentDeliveries_FiltersByStatus() {
	ctx := suite.T().Context()

	// Given one accepted and one delivered order of the agent, and an order of another agent
	accepted := suite.storedOrderIn(order.AcceptedByAgent, suite.agent)
	suite.storedOrderIn(order.Delivered, suite.agent)
	suite.storedOrderIn(order.AcceptedByAgent, suite.actor(kernel.DeliveryAgent))

	// When
	active, err := suite.repository.GetAgentDeliveries(ctx, suite.agent.ID(), order.AcceptedByAgent, order.OutForDelivery)
	suite.Require().NoError(err)
	all, err := suite.repository.GetAgentDeliveries(ctx, suite.agent.ID())
	suite.Require().NoError(err)

	// Then
	suite.Require().Len(active, 1)
	suite.Equal(accepted.ID(), active[0].ID())
	suite.Len(all, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByCustomer_IgnoresCancelledAndExcluded() {
	ctx := suite.T().Context()

	// Given
	current := suite.newOrder("a")
	suite.Require().NoError(suite.repository.Add(ctx, current))
	cancelled := suite.newOrder("b")
	suite.Require().NoError(cancelled.Cancel(suite.customer, "cancel", baseNow))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	// When
	count, err := suite.repository.CountByCustomer(ctx, suite.customer.ID(), current.ID())
	suite.Require().NoError(err)

	// Then
	suite.Zero(count)

	suite.storedOrderIn(order.Delivered, suite.agent)
	count, err = suite.repository.CountByCustomer(ctx, suite.customer.ID(), current.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddDecline_IsRecordedOnce() {
	ctx := suite.T().Context()

	// Given
	ready := suite.storedOrderIn(order.ReadyForDelivery, suite.agent)

	// When the agent declines twice
	suite.Require().NoError(suite.repository.AddDecline(ctx, ready.ID(), suite.agent.ID(), baseNow))
	suite.Require().NoError(suite.repository.AddDecline(ctx, ready.ID(), suite.agent.ID(), baseNow.Add(time.Minute)))

	// Then
	var declines []orderrepo.DeclineDTO
	suite.Require().NoError(suite.db.Where("order_id = ?", ready.ID().Bytes()).Find(&declines).Error)
	suite.Require().Len(declines, 1)
	suite.Equal(suite.agent.ID().Bytes(), declines[0].AgentID)
	suite.True(declines[0].DeclinedAt.Equal(baseNow))
}

func (suite *OrderRepositoryIntegrationTestSuite) actor(role kernel.Role) kernel.Actor {
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return a
}

// newOrder creates a 4 x 25 order with a Monday 10:00-12:00 pickup.
func (suite *OrderRepositoryIntegrationTestSuite) newOrder(key string) *order.Order {
	item, err := order.NewLineItem(kernel.NewUUID(), "Shirt", 4, decimal.NewFromInt(25))
	suite.Require().NoError(err)
	pickup, err := kernel.NewTimeWindow(baseNow.Add(2*time.Hour), baseNow.Add(4*time.Hour))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), suite.customer, suite.provider.ID(), []*order.LineItem{item},
		pickup, nil, order.DefaultPricingPolicy(), key, baseNow)
	suite.Require().NoError(err)
	return o
}

// storedOrderIn adds an order already driven to status with agent as its delivery agent.
func (suite *OrderRepositoryIntegrationTestSuite) storedOrderIn(status order.Status, agent kernel.Actor) *order.Order {
	o := suite.newOrder("")
	steps := []func() error{
		func() error { return o.Accept(suite.provider, "", baseNow) },
		func() error { return o.MarkPickedUp(suite.provider, "", baseNow) },
		func() error { return o.MarkInCleaning(suite.provider, "", baseNow) },
		func() error { return o.MarkReadyForDelivery(suite.provider, "", baseNow) },
		func() error { return o.AcceptDelivery(agent, "", baseNow) },
		func() error { return o.ConfirmHandover(agent, "", baseNow) },
		func() error { return o.ConfirmDelivery(agent, "", baseNow) },
	}
	for _, step := range steps {
		if o.Status() == status {
			break
		}
		suite.Require().NoError(step())
	}
	suite.Require().Equal(status, o.Status())
	suite.Require().NoError(suite.repository.Add(suite.T().Context(), o))
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
