package http

import (
	"net/http"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CheckAvailability handles GET /availability/check?agentId=&at=.
func (s *Server) CheckAvailability(c echo.Context) error {
	var (
		rawAgentID string
		at         time.Time
	)
	if err := queryParam(c, "agentId", &rawAgentID); err != nil {
		return err
	}
	if err := queryParam(c, "at", &at); err != nil {
		return err
	}
	agentID, err := kernel.UUIDFromString(rawAgentID)
	if err != nil {
		return err
	}

	query, err := queries.NewCheckAvailabilityQuery(agentID, at)
	if err != nil {
		return err
	}
	available, err := s.h.CheckAvailability.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AvailabilityCheck{Available: available})
}

// ListSavedAvailability handles GET /availability/saved.
func (s *Server) ListSavedAvailability(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListSavedAvailabilityQuery(actor)
	if err != nil {
		return err
	}
	windows, err := s.h.ListSavedAvailability.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, savedAvailabilityFromQuery(windows))
}

// SaveAvailability handles POST /availability/manage.
func (s *Server) SaveAvailability(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req AvailabilityBatch
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	entries := make([]commands.AvailabilityEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entry, err := e.toCommand()
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	cmd, err := commands.NewSaveAvailabilityCommand(actor, entries)
	if err != nil {
		return err
	}
	ids, err := s.h.SaveAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := AvailabilitySaved{IDs: make([]uuid.UUID, 0, len(ids))}
	for _, id := range ids {
		response.IDs = append(response.IDs, id.Bytes())
	}
	return c.JSON(http.StatusOK, response)
}

// EditAvailability handles PUT /availability/manage/{id}.
func (s *Server) EditAvailability(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	windowID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req AvailabilityEntry
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := req.toCommand()
	if err != nil {
		return err
	}

	cmd, err := commands.NewEditAvailabilityCommand(windowID, actor, entry.Date, entry.IsHoliday, entry.Start, entry.End)
	if err != nil {
		return err
	}
	if err = s.h.EditAvailability.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAvailability handles DELETE /availability/manage/{id}.
func (s *Server) DeleteAvailability(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	windowID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteAvailabilityCommand(windowID, actor)
	if err != nil {
		return err
	}
	if err = s.h.DeleteAvailability.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (e AvailabilityEntry) toCommand() (commands.AvailabilityEntry, error) {
	date, err := time.Parse(time.DateOnly, e.Date)
	if err != nil {
		return commands.AvailabilityEntry{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	entry := commands.AvailabilityEntry{Date: date, IsHoliday: e.IsHoliday}

	if e.ID != nil {
		id, err := kernel.UUIDFromString(*e.ID)
		if err != nil {
			return commands.AvailabilityEntry{}, err
		}
		entry.ID = &id
	}
	if e.IsHoliday {
		return entry, nil
	}

	if entry.Start, err = parseClock(e.Start); err != nil {
		return commands.AvailabilityEntry{}, errs.NewValueIsInvalidErrorWithCause("start", err)
	}
	if entry.End, err = parseClock(e.End); err != nil {
		return commands.AvailabilityEntry{}, errs.NewValueIsInvalidErrorWithCause("end", err)
	}
	return entry, nil
}
