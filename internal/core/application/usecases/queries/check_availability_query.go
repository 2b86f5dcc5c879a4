package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCheckAvailabilityQueryIsNotConstructed = errors.New(
	"CheckAvailabilityQuery must be created via NewCheckAvailabilityQuery constructor",
)

// CheckAvailabilityQuery asks whether an agent works at an instant.
type CheckAvailabilityQuery struct {
	agentID kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

func NewCheckAvailabilityQuery(agentID kernel.UUID, at time.Time) (CheckAvailabilityQuery, error) {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("instant")
	}
	if err := errors.Join(agentID.Validate(), atErr); err != nil {
		return CheckAvailabilityQuery{}, err
	}
	return CheckAvailabilityQuery{agentID: agentID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (q CheckAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckAvailabilityQueryIsNotConstructed)
}

func (q CheckAvailabilityQuery) AgentID() kernel.UUID { return q.agentID }
func (q CheckAvailabilityQuery) At() time.Time        { return q.at }
