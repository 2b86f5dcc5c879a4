package http

import (
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
)

// Handlers lists the use cases the HTTP interface exposes.
type Handlers struct {
	// Command handlers
	CreateOrder          commands.CreateOrderCommandHandler
	AcceptOrder          commands.AcceptOrderCommandHandler
	RejectOrder          commands.RejectOrderCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	RescheduleOrder      commands.RescheduleOrderCommandHandler
	MarkInCleaning       commands.MarkInCleaningCommandHandler
	MarkReadyForDelivery commands.MarkReadyForDeliveryCommandHandler
	RecordPayment        commands.RecordPaymentCommandHandler
	IssueOtp             commands.IssueOtpCommandHandler
	MarkPickedUp         commands.MarkPickedUpCommandHandler
	ConfirmHandover      commands.ConfirmHandoverCommandHandler
	ConfirmDelivery      commands.ConfirmDeliveryCommandHandler
	ApplyPromotion       commands.ApplyPromotionCommandHandler
	AcceptDelivery       commands.AcceptDeliveryCommandHandler
	DeclineDelivery      commands.DeclineDeliveryCommandHandler
	SaveAvailability     commands.SaveAvailabilityCommandHandler
	EditAvailability     commands.EditAvailabilityCommandHandler
	DeleteAvailability   commands.DeleteAvailabilityCommandHandler
	MarkPayoutPaid       commands.MarkPayoutPaidCommandHandler

	// Query handlers
	GetOrderSummary          queries.GetOrderSummaryQueryHandler
	GetOrderTracking         queries.GetOrderTrackingQueryHandler
	ListEligiblePromotions   queries.ListEligiblePromotionsQueryHandler
	ListProviderOrders       queries.ListProviderOrdersQueryHandler
	ListCustomerOrders       queries.ListCustomerOrdersQueryHandler
	ListAvailableDeliveries  queries.ListAvailableDeliveriesQueryHandler
	ListAgentDeliveriesToday queries.ListAgentDeliveriesTodayQueryHandler
	CheckAvailability        queries.CheckAvailabilityQueryHandler
	ListSavedAvailability    queries.ListSavedAvailabilityQueryHandler
	GetPayoutSummary         queries.GetPayoutSummaryQueryHandler
	ListPayouts              queries.ListPayoutsQueryHandler
}

// Server implements the HTTP endpoints.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}
