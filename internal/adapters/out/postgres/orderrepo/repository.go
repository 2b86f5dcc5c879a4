package orderrepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its items and first history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update stores the order row if its version did not move since it was read
// and appends new history entries.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"agent_id":          dto.AgentID,
			"pickup_start":      dto.PickupStart,
			"pickup_end":        dto.PickupEnd,
			"delivery_start":    dto.DeliveryStart,
			"delivery_end":      dto.DeliveryEnd,
			"status":            dto.Status,
			"promotion_id":      dto.PromotionID,
			"promotion_code":    dto.PromotionCode,
			"subtotal":          dto.Subtotal,
			"discount":          dto.Discount,
			"tax_rate":          dto.TaxRate,
			"tax":               dto.Tax,
			"delivery_charge":   dto.DeliveryCharge,
			"final_amount":      dto.FinalAmount,
			"invoice_number":    dto.InvoiceNumber,
			"payment_status":    dto.PaymentStatus,
			"payment_reference": dto.PaymentReference,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if len(dto.History) > 0 {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.History).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withChildren(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate locks the order row until the transaction ends, then loads it.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var locked []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id").
		Where("id = ?", id.Bytes()).
		Find(&locked).Error
	if err != nil {
		return nil, err
	}
	if len(locked) == 0 {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return r.Get(ctx, id)
}

// GetByCreationKey finds the order a customer created with idempotencyKey.
func (r *GormOrderRepository) GetByCreationKey(
	ctx context.Context,
	customerID kernel.UUID,
	idempotencyKey string,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.withChildren(ctx).
		First(&dto, "customer_id = ? AND creation_key = ?", customerID.Bytes(), idempotencyKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("idempotency key", idempotencyKey)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAgentDeliveries returns the agent's orders in the given statuses, all of them when none is given.
func (r *GormOrderRepository) GetAgentDeliveries(
	ctx context.Context,
	agentID kernel.UUID,
	statuses ...order.Status,
) ([]*order.Order, error) {
	query := r.withChildren(ctx).Where("agent_id = ?", agentID.Bytes())
	if len(statuses) > 0 {
		query = query.Where("status = ANY(?)", pq.Array(statusNames(statuses)))
	}

	var dtos []OrderDTO
	if err := query.Order("delivery_start").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// CountByCustomer counts the customer's orders that were not rejected or
// cancelled, leaving out exceptID.
func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID, exceptID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("customer_id = ? AND id <> ?", customerID.Bytes(), exceptID.Bytes()).
		Where("status <> ALL(?)", pq.Array(statusNames([]order.Status{order.Rejected, order.Cancelled}))).
		Count(&count).Error
	return count, err
}

// AddDecline stores the decline once; repeating it is a no-op.
func (r *GormOrderRepository) AddDecline(ctx context.Context, orderID, agentID kernel.UUID, at time.Time) error {
	dto := DeclineDTO{OrderID: orderID.Bytes(), AgentID: agentID.Bytes(), DeclinedAt: at.UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}

func (r *GormOrderRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewVersionIsInvalidError("order")
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
