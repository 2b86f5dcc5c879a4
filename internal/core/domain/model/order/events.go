package order

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// StatusChangedEventName is the outbox type of StatusChangedEvent.
const StatusChangedEventName = "order.status_changed"

// StatusChangedEvent is recorded on every status transition, including creation.
// Downstream consumers (notifications, analytics) subscribe to it through Kafka.
type StatusChangedEvent struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	ProviderID string    `json:"providerId"`
	AgentID    string    `json:"agentId,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	ActorID    string    `json:"actorId"`
	At         time.Time `json:"at"`

	eventID     kernel.UUID
	aggregateID kernel.UUID
}

func (e StatusChangedEvent) EventID() kernel.UUID {
	return e.eventID
}

func (e StatusChangedEvent) EventName() string {
	return StatusChangedEventName
}

func (e StatusChangedEvent) AggregateID() kernel.UUID {
	return e.aggregateID
}

func (e StatusChangedEvent) OccurredAt() time.Time {
	return e.At
}
