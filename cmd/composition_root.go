package cmd

import (
	"log/slog"
	"time"

	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/core/domain/model/payout"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	clock      ports.Clock
	generator  ports.OtpCodeGenerator
	sender     ports.OtpSender
	publisher  ports.EventPublisher
	logger     *slog.Logger
	loc        *time.Location
	pricing    order.PricingPolicy
	batchSize  int
	dispatcher services.DeliveryDispatcher
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	sender ports.OtpSender,
	logger *slog.Logger,
) (CompositionRoot, error) {
	loc, err := configs.Location()
	if err != nil {
		return CompositionRoot{}, err
	}
	pricing, err := configs.PricingPolicy()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock.System{},
		generator:  otp.RandomCodeGenerator{},
		sender:     sender,
		publisher:  publisher,
		logger:     logger,
		loc:        loc,
		pricing:    pricing,
		batchSize:  configs.OutboxBatchSize,
		dispatcher: services.NewDeliveryDispatcher(loc),
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// HTTPHandlers builds every use case exposed by the HTTP interface.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		AcceptOrder:          commands.NewAcceptOrderCommandHandler(c.uow(), c.clock),
		RejectOrder:          commands.NewRejectOrderCommandHandler(c.uow(), c.clock),
		CancelOrder:          commands.NewCancelOrderCommandHandler(c.uow(), c.clock),
		RescheduleOrder:      commands.NewRescheduleOrderCommandHandler(c.uow(), c.clock),
		MarkInCleaning:       commands.NewMarkInCleaningCommandHandler(c.uow(), c.clock),
		MarkReadyForDelivery: c.CreateMarkReadyForDeliveryCommandHandler(),
		RecordPayment:        commands.NewRecordPaymentCommandHandler(c.uow()),
		IssueOtp:             c.CreateIssueOtpCommandHandler(),
		MarkPickedUp:         commands.NewMarkPickedUpCommandHandler(c.uow(), c.clock),
		ConfirmHandover:      c.CreateConfirmHandoverCommandHandler(),
		ConfirmDelivery:      c.CreateConfirmDeliveryCommandHandler(),
		ApplyPromotion: commands.NewApplyPromotionCommandHandler(
			c.uow(), c.clock, services.NewPromotionEvaluator()),
		AcceptDelivery: commands.NewAcceptDeliveryCommandHandler(
			c.uow(), c.clock, c.dispatcher, c.loc),
		DeclineDelivery: commands.NewDeclineDeliveryCommandHandler(c.uow(), c.clock),
		SaveAvailability: commands.NewSaveAvailabilityCommandHandler(
			c.uow(), c.clock, c.dispatcher, c.loc),
		EditAvailability: commands.NewEditAvailabilityCommandHandler(
			c.uow(), c.clock, c.dispatcher, c.loc),
		DeleteAvailability: commands.NewDeleteAvailabilityCommandHandler(c.uow(), c.dispatcher),
		MarkPayoutPaid:     c.CreateMarkPayoutPaidCommandHandler(),

		GetOrderSummary:          queries.NewGetOrderSummaryQueryHandler(c.gormDB),
		GetOrderTracking:         queries.NewGetOrderTrackingQueryHandler(c.gormDB),
		ListEligiblePromotions:   c.CreateListEligiblePromotionsQueryHandler(),
		ListProviderOrders:       queries.NewListProviderOrdersQueryHandler(c.gormDB),
		ListCustomerOrders:       queries.NewListCustomerOrdersQueryHandler(c.gormDB),
		ListAvailableDeliveries:  queries.NewListAvailableDeliveriesQueryHandler(c.gormDB),
		ListAgentDeliveriesToday: queries.NewListAgentDeliveriesTodayQueryHandler(c.gormDB, c.clock, c.loc),
		CheckAvailability:        queries.NewCheckAvailabilityQueryHandler(c.gormDB, c.loc),
		ListSavedAvailability:    queries.NewListSavedAvailabilityQueryHandler(c.gormDB, c.clock, c.loc),
		GetPayoutSummary:         queries.NewGetPayoutSummaryQueryHandler(c.gormDB),
		ListPayouts:              queries.NewListPayoutsQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.clock, c.pricing)
}

func (c *CompositionRoot) CreateIssueOtpCommandHandler() commands.IssueOtpCommandHandler {
	return commands.NewIssueOtpCommandHandler(c.uow(), c.clock, c.generator, c.sender, c.logger)
}

func (c *CompositionRoot) CreateMarkReadyForDeliveryCommandHandler() commands.MarkReadyForDeliveryCommandHandler {
	return commands.NewMarkReadyForDeliveryCommandHandler(c.uow(), c.clock, c.generator, c.sender, c.logger)
}

func (c *CompositionRoot) CreateConfirmHandoverCommandHandler() commands.ConfirmHandoverCommandHandler {
	return commands.NewConfirmHandoverCommandHandler(c.uow(), c.clock, c.generator, c.sender, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(
		c.uow(), c.clock, services.NewPayoutCalculator(payout.DefaultRateTable()))
}

func (c *CompositionRoot) CreateMarkPayoutPaidCommandHandler() commands.MarkPayoutPaidCommandHandler {
	return commands.NewMarkPayoutPaidCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreatePublishOutboxCommandHandler() commands.PublishOutboxCommandHandler {
	return commands.NewPublishOutboxCommandHandler(c.uow(), c.publisher, c.clock, c.batchSize)
}

func (c *CompositionRoot) CreatePurgeOtpChallengesCommandHandler() commands.PurgeOtpChallengesCommandHandler {
	return commands.NewPurgeOtpChallengesCommandHandler(c.uow(), c.clock)
}

// CreateListEligiblePromotionsQueryHandler reads through repositories
// outside of a transaction.
func (c *CompositionRoot) CreateListEligiblePromotionsQueryHandler() queries.ListEligiblePromotionsQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewListEligiblePromotionsQueryHandler(
		uow.OrderRepository(), uow.PromotionRepository(), c.clock, services.NewPromotionEvaluator())
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
