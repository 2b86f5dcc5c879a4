package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/payout"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime/types"
)

// GetPayoutSummary handles GET /payouts/summary?filter=overall|custom&start=&end=.
func (s *Server) GetPayoutSummary(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	period, err := optionalQueryParam[string](c, "filter")
	if err != nil {
		return err
	}
	start, err := optionalQueryParam[types.Date](c, "start")
	if err != nil {
		return err
	}
	end, err := optionalQueryParam[types.Date](c, "end")
	if err != nil {
		return err
	}
	filter, err := payout.NewFilter(deref(period), deref(start).Time, deref(end).Time)
	if err != nil {
		return err
	}

	query, err := queries.NewGetPayoutSummaryQuery(actor, filter)
	if err != nil {
		return err
	}
	summary, err := s.h.GetPayoutSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payoutSummaryFromDomain(summary))
}

// listPayouts serves GET /payouts/paid, /payouts/pending and /payouts/all.
func (s *Server) listPayouts(scope queries.PayoutScope) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := actorFrom(c)
		if err != nil {
			return err
		}

		query, err := queries.NewListPayoutsQuery(actor, string(scope))
		if err != nil {
			return err
		}
		entries, err := s.h.ListPayouts.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, payoutsFromQuery(entries))
	}
}

// MarkPayoutPaid handles POST /payouts/{id}/paid, called by the payment service.
func (s *Server) MarkPayoutPaid(c echo.Context) error {
	entryID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkPayoutPaidCommand(entryID)
	if err != nil {
		return err
	}
	if err = s.h.MarkPayoutPaid.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
