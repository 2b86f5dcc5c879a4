package queries

import (
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// orderParties holds the participant columns of an order row.
type orderParties struct {
	customerID uuid.UUID
	providerID uuid.UUID
	agentID    *uuid.UUID
}

// admits reports whether the actor takes part in the order in its own role.
func (p orderParties) admits(actor kernel.Actor) bool {
	id := actor.ID().Bytes()
	switch actor.Role() {
	case kernel.Customer:
		return p.customerID == id
	case kernel.ServiceProvider:
		return p.providerID == id
	case kernel.DeliveryAgent:
		return p.agentID != nil && *p.agentID == id
	default:
		return false
	}
}

func toUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func toOptionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := toUUID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
