package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrMarkPayoutPaidCommandIsNotConstructed = errors.New(
	"MarkPayoutPaidCommand must be created via NewMarkPayoutPaidCommand constructor",
)

// MarkPayoutPaidCommand records the disbursement of a payout entry.
type MarkPayoutPaidCommand struct { //nolint:recvcheck //using for validation
	entryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkPayoutPaidCommand(entryID kernel.UUID) (MarkPayoutPaidCommand, error) {
	if err := entryID.Validate(); err != nil {
		return MarkPayoutPaidCommand{}, err
	}
	return MarkPayoutPaidCommand{entryID: entryID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkPayoutPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkPayoutPaidCommandIsNotConstructed)
}

func (c MarkPayoutPaidCommand) EntryID() kernel.UUID {
	return c.entryID
}
