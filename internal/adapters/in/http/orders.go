package http

import (
	"errors"
	"net/http"
	"strings"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req NewOrder
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	providerID, err := kernel.UUIDFromString(req.ProviderID)
	if err != nil {
		return err
	}
	items := make([]commands.ItemQuantity, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, err := kernel.UUIDFromString(item.ItemID)
		if err != nil {
			return err
		}
		items = append(items, commands.ItemQuantity{ItemID: itemID, Quantity: item.Quantity})
	}
	pickup, err := req.Pickup.toDomain()
	if err != nil {
		return err
	}
	delivery, err := optionalWindow(req.Delivery)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(actor, providerID, items, pickup, delivery, idempotencyKey(c))
	if err != nil {
		return err
	}
	orderID, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, OrderCreated{ID: orderID.Bytes()})
}

// orderCommand builds the command of a plain transition from the path and headers.
func orderCommand[C any](
	c echo.Context,
	build func(orderID kernel.UUID, actor kernel.Actor, idempotencyKey string) (C, error),
) (C, error) {
	var zero C
	actor, err := actorFrom(c)
	if err != nil {
		return zero, err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return zero, err
	}
	return build(orderID, actor, idempotencyKey(c))
}

// AcceptOrder handles POST /orders/{id}/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	cmd, err := orderCommand(c, commands.NewAcceptOrderCommand)
	if err != nil {
		return err
	}
	if err = s.h.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return transitioned(c, order.AcceptedByProvider)
}

// RejectOrder handles POST /orders/{id}/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	cmd, err := orderCommand(c, commands.NewRejectOrderCommand)
	if err != nil {
		return err
	}
	if err = s.h.RejectOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return transitioned(c, order.Rejected)
}

// CancelOrder handles POST /orders/{id}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	cmd, err := orderCommand(c, commands.NewCancelOrderCommand)
	if err != nil {
		return err
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return transitioned(c, order.Cancelled)
}

// RescheduleOrder handles POST /orders/{id}/reschedule.
func (s *Server) RescheduleOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req Reschedule
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	pickup, err := req.Pickup.toDomain()
	if err != nil {
		return err
	}
	delivery, err := optionalWindow(req.Delivery)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRescheduleOrderCommand(orderID, actor, idempotencyKey(c), pickup, delivery)
	if err != nil {
		return err
	}
	if err = s.h.RescheduleOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return transitioned(c, order.Rescheduled)
}

// MarkInCleaning handles POST /orders/{id}/in-cleaning.
func (s *Server) MarkInCleaning(c echo.Context) error {
	cmd, err := orderCommand(c, commands.NewMarkInCleaningCommand)
	if err != nil {
		return err
	}
	if err = s.h.MarkInCleaning.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return transitioned(c, order.InCleaning)
}

// MarkReadyForDelivery handles POST /orders/{id}/ready-for-delivery.
func (s *Server) MarkReadyForDelivery(c echo.Context) error {
	cmd, err := orderCommand(c, commands.NewMarkReadyForDeliveryCommand)
	if err != nil {
		return err
	}
	if err = s.h.MarkReadyForDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return transitioned(c, order.ReadyForDelivery)
}

// RecordPayment handles POST /orders/{id}/payment, called by the payment service.
func (s *Server) RecordPayment(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req Payment
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRecordPaymentCommand(orderID, req.Reference)
	if err != nil {
		return err
	}
	if err = s.h.RecordPayment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// transitioned counts a completed status change and answers 204.
func transitioned(c echo.Context, status order.Status) error {
	metrics.OrderTransitionsTotal.WithLabelValues(status.String()).Inc()
	return c.NoContent(http.StatusNoContent)
}

func otpKind(c echo.Context) (otp.Kind, error) {
	return otp.KindFromString(strings.ToUpper(c.Param("kind")))
}

// IssueOtp handles POST /orders/{id}/otp/{kind}/issue. The code itself goes
// out through the notification channel, never in the response.
func (s *Server) IssueOtp(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	kind, err := otpKind(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewIssueOtpCommand(orderID, actor, kind)
	if err != nil {
		return err
	}
	if err = s.h.IssueOtp.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// VerifyOtp handles POST /orders/{id}/otp/{kind}/verify and performs the
// transition the kind guards: PICKUP picks up, HANDOVER hands over to the
// agent and DELIVERY completes the order.
func (s *Server) VerifyOtp(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	kind, err := otpKind(c)
	if err != nil {
		return err
	}
	var req OtpCode
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	key := idempotencyKey(c)
	switch kind {
	case otp.Pickup:
		var cmd commands.MarkPickedUpCommand
		if cmd, err = commands.NewMarkPickedUpCommand(orderID, actor, key, req.Code); err == nil {
			err = s.h.MarkPickedUp.Handle(ctx, cmd)
		}
	case otp.Handover:
		var cmd commands.ConfirmHandoverCommand
		if cmd, err = commands.NewConfirmHandoverCommand(orderID, actor, key, req.Code); err == nil {
			err = s.h.ConfirmHandover.Handle(ctx, cmd)
		}
	case otp.Delivery:
		var cmd commands.ConfirmDeliveryCommand
		if cmd, err = commands.NewConfirmDeliveryCommand(orderID, actor, key, req.Code); err == nil {
			err = s.h.ConfirmDelivery.Handle(ctx, cmd)
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown otp kind")
	}

	metrics.OtpVerificationsTotal.WithLabelValues(kind.String(), otpOutcome(err)).Inc()
	if err != nil {
		return err
	}
	return transitioned(c, kind.Gates())
}

func otpOutcome(err error) string {
	switch {
	case err == nil:
		return "verified"
	case errors.Is(err, otp.ErrOtpInvalid):
		return "invalid"
	case errors.Is(err, otp.ErrOtpExpired):
		return "expired"
	case errors.Is(err, otp.ErrOtpAlreadyConsumed):
		return "consumed"
	default:
		return "error"
	}
}

// GetOrderSummary handles GET /orders/{id}/summary.
func (s *Server) GetOrderSummary(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderSummaryQuery(orderID, actor)
	if err != nil {
		return err
	}
	summary, err := s.h.GetOrderSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderSummaryFromQuery(summary))
}

// GetOrderTracking handles GET /orders/{id}/track.
func (s *Server) GetOrderTracking(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID, actor)
	if err != nil {
		return err
	}
	tracking, err := s.h.GetOrderTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderTrackingFromQuery(tracking))
}

// ListEligiblePromotions handles GET /orders/{id}/promotions.
func (s *Server) ListEligiblePromotions(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewListEligiblePromotionsQuery(orderID, actor)
	if err != nil {
		return err
	}
	promotions, err := s.h.ListEligiblePromotions.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eligiblePromotionsFromQuery(promotions))
}

// ApplyPromotion handles POST /orders/{id}/apply-promo. A business rejection
// is a 200 with applied=false and the reason.
func (s *Server) ApplyPromotion(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ApplyPromotion
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	promotionID, err := kernel.UUIDFromString(req.PromotionID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApplyPromotionCommand(orderID, promotionID, actor)
	if err != nil {
		return err
	}
	result, err := s.h.ApplyPromotion.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	outcome := "applied"
	if !result.Applied {
		outcome = result.Reason
	}
	metrics.PromotionResultsTotal.WithLabelValues(outcome).Inc()
	return c.JSON(http.StatusOK, promotionResultFromDomain(result))
}

// ListCustomerOrders handles GET /orders/history.
func (s *Server) ListCustomerOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListCustomerOrdersQuery(actor)
	if err != nil {
		return err
	}
	orders, err := s.h.ListCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListFromQuery(orders))
}

// ListProviderOrders handles GET /provider/orders?group=pending|active|delivered.
func (s *Server) ListProviderOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	group, err := optionalQueryParam[string](c, "group")
	if err != nil {
		return err
	}

	query, err := queries.NewListProviderOrdersQuery(actor, deref(group))
	if err != nil {
		return err
	}
	orders, err := s.h.ListProviderOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListFromQuery(orders))
}
