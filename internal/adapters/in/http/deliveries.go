package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ListAvailableDeliveries handles GET /deliveries/available.
func (s *Server) ListAvailableDeliveries(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListAvailableDeliveriesQuery(actor)
	if err != nil {
		return err
	}
	orders, err := s.h.ListAvailableDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListFromQuery(orders))
}

// ListAgentDeliveriesToday handles GET /deliveries/today.
func (s *Server) ListAgentDeliveriesToday(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListAgentDeliveriesTodayQuery(actor)
	if err != nil {
		return err
	}
	orders, err := s.h.ListAgentDeliveriesToday.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListFromQuery(orders))
}

// AcceptDelivery handles POST /deliveries/{id}/accept.
func (s *Server) AcceptDelivery(c echo.Context) error {
	cmd, err := orderCommand(c, commands.NewAcceptDeliveryCommand)
	if err != nil {
		return err
	}
	if err = s.h.AcceptDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return transitioned(c, order.AcceptedByAgent)
}

// DeclineDelivery handles POST /deliveries/{id}/decline.
func (s *Server) DeclineDelivery(c echo.Context) error {
	cmd, err := orderCommand(c, commands.NewDeclineDeliveryCommand)
	if err != nil {
		return err
	}
	if err = s.h.DeclineDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
