package order

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// StatusEntry is one element of the append-only status history.
// IdempotencyKey identifies the request that produced the entry, so a retried
// request can be recognized and answered without applying it twice.
type StatusEntry struct {
	Status         Status
	At             time.Time
	ActorID        kernel.UUID
	IdempotencyKey string
}

// ValidateHistory checks that history is non-empty, starts at Pending and
// that every consecutive pair is an edge of the state machine.
func ValidateHistory(history []StatusEntry) bool {
	if len(history) == 0 || history[0].Status != Pending {
		return false
	}
	for i := 1; i < len(history); i++ {
		if !history[i-1].Status.CanTransitionTo(history[i].Status) {
			return false
		}
	}
	return true
}
