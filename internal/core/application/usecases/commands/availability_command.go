package commands

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var (
	ErrSaveAvailabilityCommandIsNotConstructed = errors.New(
		"SaveAvailabilityCommand must be created via NewSaveAvailabilityCommand constructor",
	)
	ErrAvailabilityWindowCommandIsNotConstructed = errors.New(
		"availability window command must be created via its constructor",
	)
	ErrEntriesAreRequired = errs.NewValueIsRequiredError("availability entries")
)

// AvailabilityEntry is one day of an agent's plan. An entry with an ID edits
// the stored window, one without creates a new window.
type AvailabilityEntry struct {
	ID        *kernel.UUID
	Date      time.Time
	IsHoliday bool
	Start     time.Duration
	End       time.Duration
}

// SaveAvailabilityCommand upserts a batch of availability windows of the calling agent.
type SaveAvailabilityCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	entries []AvailabilityEntry

	guard guard.ConstructorGuard
}

func NewSaveAvailabilityCommand(actor kernel.Actor, entries []AvailabilityEntry) (SaveAvailabilityCommand, error) {
	var entriesErr error
	if len(entries) == 0 {
		entriesErr = ErrEntriesAreRequired
	}
	seen := make(map[kernel.UUID]bool, len(entries))
	for i, e := range entries {
		if e.ID == nil {
			continue
		}
		if seen[*e.ID] {
			entriesErr = errors.Join(entriesErr, errs.NewValueIsInvalidErrorWithCause("availability entries",
				fmt.Errorf("entry %d repeats window %s", i, e.ID)))
		}
		seen[*e.ID] = true
	}
	if err := errors.Join(actor.Validate(), entriesErr); err != nil {
		return SaveAvailabilityCommand{}, err
	}

	copied := make([]AvailabilityEntry, len(entries))
	copy(copied, entries)
	return SaveAvailabilityCommand{
		actor:   actor,
		entries: copied,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SaveAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSaveAvailabilityCommandIsNotConstructed)
}

func (c SaveAvailabilityCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SaveAvailabilityCommand) Entries() []AvailabilityEntry {
	entries := make([]AvailabilityEntry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// availabilityWindowCommand addresses one stored window on behalf of its agent.
type availabilityWindowCommand struct {
	windowID kernel.UUID
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func newAvailabilityWindowCommand(windowID kernel.UUID, actor kernel.Actor) (availabilityWindowCommand, error) {
	if err := errors.Join(windowID.Validate(), actor.Validate()); err != nil {
		return availabilityWindowCommand{}, err
	}
	return availabilityWindowCommand{
		windowID: windowID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c availabilityWindowCommand) Validate() error {
	return c.guard.Validate(ErrAvailabilityWindowCommandIsNotConstructed)
}

func (c availabilityWindowCommand) WindowID() kernel.UUID {
	return c.windowID
}

func (c availabilityWindowCommand) Actor() kernel.Actor {
	return c.actor
}

// EditAvailabilityCommand changes the day or times of a stored window.
type EditAvailabilityCommand struct {
	availabilityWindowCommand
	date      time.Time
	isHoliday bool
	start     time.Duration
	end       time.Duration
}

func NewEditAvailabilityCommand(
	windowID kernel.UUID,
	actor kernel.Actor,
	date time.Time,
	isHoliday bool,
	start, end time.Duration,
) (EditAvailabilityCommand, error) {
	base, err := newAvailabilityWindowCommand(windowID, actor)
	var dateErr error
	if date.IsZero() {
		dateErr = errs.NewValueIsRequiredError("date")
	}
	if err = errors.Join(err, dateErr); err != nil {
		return EditAvailabilityCommand{}, err
	}
	return EditAvailabilityCommand{
		availabilityWindowCommand: base,
		date:                      date,
		isHoliday:                 isHoliday,
		start:                     start,
		end:                       end,
	}, nil
}

func (c EditAvailabilityCommand) Date() time.Time {
	return c.date
}

func (c EditAvailabilityCommand) IsHoliday() bool {
	return c.isHoliday
}

func (c EditAvailabilityCommand) Start() time.Duration {
	return c.start
}

func (c EditAvailabilityCommand) End() time.Duration {
	return c.end
}

// DeleteAvailabilityCommand removes a stored window.
type DeleteAvailabilityCommand struct {
	availabilityWindowCommand
}

func NewDeleteAvailabilityCommand(windowID kernel.UUID, actor kernel.Actor) (DeleteAvailabilityCommand, error) {
	base, err := newAvailabilityWindowCommand(windowID, actor)
	return DeleteAvailabilityCommand{base}, err
}
