package queries

import (
	"context"
	"database/sql"
	"errors"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler reads the status history of an order for its participants.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	var parties orderParties
	var status string
	err := h.db.WithContext(ctx).Raw(`
		SELECT customer_id, provider_id, agent_id, status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(&parties.customerID, &parties.providerID, &parties.agentID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderTrackingQueryResponse{}, err
	}
	if !parties.admits(query.Actor()) {
		return GetOrderTrackingQueryResponse{}, query.Actor().NotAuthorized("track order")
	}

	resp := GetOrderTrackingQueryResponse{OrderID: query.OrderID(), Steps: make([]TrackingStep, 0)}
	if resp.Status, err = order.StatusFromString(status); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, at, actor_id
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var step TrackingStep
		var stepStatus string
		var actorID uuid.UUID
		if err = rows.Scan(&stepStatus, &step.At, &actorID); err != nil {
			return GetOrderTrackingQueryResponse{}, err
		}
		if step.Status, err = order.StatusFromString(stepStatus); err != nil {
			return GetOrderTrackingQueryResponse{}, err
		}
		if step.ActorID, err = toUUID(actorID); err != nil {
			return GetOrderTrackingQueryResponse{}, err
		}
		resp.Steps = append(resp.Steps, step)
	}

	if err = rows.Err(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	return resp, nil
}
