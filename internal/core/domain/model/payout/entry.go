package payout

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is the ledger record of what a delivery agent earned for one
// delivered order. It is created together with the DELIVERED transition and
// its paid flag only ever moves from false to true.
type Entry struct {
	id              kernel.UUID
	agentID         kernel.UUID
	orderID         kernel.UUID
	deliveryEarning decimal.Decimal
	charge          decimal.Decimal
	finalAmount     decimal.Decimal
	paid            bool
	paidAt          *time.Time
	createdAt       time.Time

	isConstructed bool
}

// NewEntry computes the payout of a delivered order under rates.
//
// Parameters:
//   - id: entry identifier
//   - agentID: the agent who delivered
//   - orderID: the delivered order (one entry per order)
//   - orderFinalAmount: the order's final billed amount
//   - rates: the rate table in force
//   - now: creation instant
//
// Example:
//
//	entry, err := payout.NewEntry(kernel.NewUUID(), agentID, orderID,
//	    decimal.RequireFromString("305.50"), payout.DefaultRateTable(), now)
func NewEntry(
	id, agentID, orderID kernel.UUID,
	orderFinalAmount decimal.Decimal,
	rates RateTable,
	now time.Time,
) (*Entry, error) {
	if err := errors.Join(id.Validate(), agentID.Validate(), orderID.Validate(), rates.Validate()); err != nil {
		return nil, err
	}

	earning, charge, final := rates.Calculate(orderFinalAmount)

	return &Entry{
		id:              id,
		agentID:         agentID,
		orderID:         orderID,
		deliveryEarning: earning,
		charge:          charge,
		finalAmount:     final,
		createdAt:       now.UTC(),
		isConstructed:   true,
	}, nil
}

// RestoreEntry rebuilds a stored entry.
func RestoreEntry(
	id, agentID, orderID kernel.UUID,
	deliveryEarning, charge, finalAmount decimal.Decimal,
	paidAt *time.Time,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(id.Validate(), agentID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	return &Entry{
		id:              id,
		agentID:         agentID,
		orderID:         orderID,
		deliveryEarning: deliveryEarning,
		charge:          charge,
		finalAmount:     finalAmount,
		paid:            paidAt != nil,
		paidAt:          paidAt,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) AgentID() kernel.UUID {
	return e.agentID
}

func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

func (e *Entry) DeliveryEarning() decimal.Decimal {
	return e.deliveryEarning
}

func (e *Entry) Charge() decimal.Decimal {
	return e.charge
}

func (e *Entry) FinalAmount() decimal.Decimal {
	return e.finalAmount
}

func (e *Entry) IsPaid() bool {
	return e.paid
}

func (e *Entry) PaidAt() *time.Time {
	return e.paidAt
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// MarkPaid records the disbursement. It reports false when the entry was
// already paid, leaving the original paidAt in place.
func (e *Entry) MarkPaid(now time.Time) bool {
	if e.paid {
		return false
	}
	paidAt := now.UTC()
	e.paid = true
	e.paidAt = &paidAt
	return true
}
