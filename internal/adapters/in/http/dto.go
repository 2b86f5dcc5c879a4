package http

import (
	"fmt"
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/payout"
	"laundry/internal/core/domain/model/promotion"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TimeWindow struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

func (w TimeWindow) toDomain() (kernel.TimeWindow, error) {
	return kernel.NewTimeWindow(w.Start, w.End)
}

func optionalWindow(w *TimeWindow) (*kernel.TimeWindow, error) {
	if w == nil {
		return nil, nil
	}
	tw, err := w.toDomain()
	if err != nil {
		return nil, err
	}
	return &tw, nil
}

func timeWindowFromDomain(w kernel.TimeWindow) TimeWindow {
	return TimeWindow{Start: w.Start(), End: w.End()}
}

// Requests

type NewOrderItem struct {
	ItemID   string `json:"itemId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

type NewOrder struct {
	ProviderID string         `json:"providerId" validate:"required,uuid"`
	Items      []NewOrderItem `json:"items" validate:"required,min=1,dive"`
	Pickup     TimeWindow     `json:"pickup" validate:"required"`
	Delivery   *TimeWindow    `json:"delivery,omitempty"`
}

type Reschedule struct {
	Pickup   TimeWindow  `json:"pickup" validate:"required"`
	Delivery *TimeWindow `json:"delivery,omitempty"`
}

type Payment struct {
	Reference string `json:"reference" validate:"required"`
}

type OtpCode struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type ApplyPromotion struct {
	PromotionID string `json:"promotionId" validate:"required,uuid"`
}

type AvailabilityEntry struct {
	ID        *string `json:"id,omitempty" validate:"omitempty,uuid"`
	Date      string  `json:"date" validate:"required"`
	IsHoliday bool    `json:"isHoliday"`
	Start     string  `json:"start,omitempty" validate:"required_without=IsHoliday,omitempty,hh_mm"`
	End       string  `json:"end,omitempty" validate:"required_without=IsHoliday,omitempty,hh_mm"`
}

type AvailabilityBatch struct {
	Entries []AvailabilityEntry `json:"entries" validate:"required,min=1,dive"`
}

// Responses

type OrderCreated struct {
	ID uuid.UUID `json:"id"`
}

type OrderSummaryItem struct {
	ItemID    uuid.UUID       `json:"itemId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type OrderSummary struct {
	ID             uuid.UUID          `json:"id"`
	Status         string             `json:"status"`
	CustomerID     uuid.UUID          `json:"customerId"`
	ProviderID     uuid.UUID          `json:"providerId"`
	AgentID        *uuid.UUID         `json:"agentId,omitempty"`
	Pickup         TimeWindow         `json:"pickup"`
	Delivery       TimeWindow         `json:"delivery"`
	Items          []OrderSummaryItem `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	PromotionCode  string             `json:"promotionCode,omitempty"`
	TaxRate        decimal.Decimal    `json:"taxRate"`
	Tax            decimal.Decimal    `json:"tax"`
	DeliveryCharge decimal.Decimal    `json:"deliveryCharge"`
	FinalAmount    decimal.Decimal    `json:"finalAmount"`
	InvoiceNumber  string             `json:"invoiceNumber,omitempty"`
	PaymentStatus  string             `json:"paymentStatus"`
	CreatedAt      time.Time          `json:"createdAt"`
}

func orderSummaryFromQuery(s queries.GetOrderSummaryQueryResponse) OrderSummary {
	items := make([]OrderSummaryItem, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, OrderSummaryItem{
			ItemID:    item.ItemID.Bytes(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return OrderSummary{
		ID:             s.ID.Bytes(),
		Status:         s.Status.String(),
		CustomerID:     s.CustomerID.Bytes(),
		ProviderID:     s.ProviderID.Bytes(),
		AgentID:        optionalUUID(s.AgentID),
		Pickup:         timeWindowFromDomain(s.Pickup),
		Delivery:       timeWindowFromDomain(s.Delivery),
		Items:          items,
		Subtotal:       s.Subtotal,
		Discount:       s.Discount,
		PromotionCode:  s.PromotionCode,
		TaxRate:        s.TaxRate,
		Tax:            s.Tax,
		DeliveryCharge: s.DeliveryCharge,
		FinalAmount:    s.FinalAmount,
		InvoiceNumber:  s.InvoiceNumber,
		PaymentStatus:  s.PaymentStatus,
		CreatedAt:      s.CreatedAt,
	}
}

type TrackingStep struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	ActorID uuid.UUID `json:"actorId"`
}

type OrderTracking struct {
	OrderID uuid.UUID      `json:"orderId"`
	Status  string         `json:"status"`
	Steps   []TrackingStep `json:"steps"`
}

func orderTrackingFromQuery(t queries.GetOrderTrackingQueryResponse) OrderTracking {
	steps := make([]TrackingStep, 0, len(t.Steps))
	for _, s := range t.Steps {
		steps = append(steps, TrackingStep{Status: s.Status.String(), At: s.At, ActorID: s.ActorID.Bytes()})
	}
	return OrderTracking{OrderID: t.OrderID.Bytes(), Status: t.Status.String(), Steps: steps}
}

type OrderListItem struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customerId"`
	ProviderID  uuid.UUID       `json:"providerId"`
	AgentID     *uuid.UUID      `json:"agentId,omitempty"`
	Status      string          `json:"status"`
	Pickup      TimeWindow      `json:"pickup"`
	Delivery    TimeWindow      `json:"delivery"`
	ItemCount   int             `json:"itemCount"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func orderListFromQuery(orders []queries.OrderListItem) []OrderListItem {
	response := make([]OrderListItem, len(orders))
	for i, o := range orders {
		response[i] = OrderListItem{
			ID:          o.ID.Bytes(),
			CustomerID:  o.CustomerID.Bytes(),
			ProviderID:  o.ProviderID.Bytes(),
			AgentID:     optionalUUID(o.AgentID),
			Status:      o.Status.String(),
			Pickup:      timeWindowFromDomain(o.Pickup),
			Delivery:    timeWindowFromDomain(o.Delivery),
			ItemCount:   o.ItemCount,
			FinalAmount: o.FinalAmount,
			CreatedAt:   o.CreatedAt,
		}
	}
	return response
}

type EligiblePromotion struct {
	ID           uuid.UUID        `json:"id"`
	Code         string           `json:"code"`
	Description  string           `json:"description"`
	DiscountType string           `json:"discountType"`
	Value        decimal.Decimal  `json:"value"`
	MaxDiscount  *decimal.Decimal `json:"maxDiscount,omitempty"`
	Discount     decimal.Decimal  `json:"discount"`
	FinalAmount  decimal.Decimal  `json:"finalAmount"`
}

func eligiblePromotionsFromQuery(promotions []queries.EligiblePromotion) []EligiblePromotion {
	response := make([]EligiblePromotion, len(promotions))
	for i, p := range promotions {
		response[i] = EligiblePromotion{
			ID:           p.ID.Bytes(),
			Code:         p.Code,
			Description:  p.Description,
			DiscountType: p.DiscountType.String(),
			Value:        p.Value,
			MaxDiscount:  p.MaxDiscount,
			Discount:     p.Discount,
			FinalAmount:  p.FinalAmount,
		}
	}
	return response
}

type PromotionResult struct {
	Applied     bool            `json:"applied"`
	Reason      string          `json:"reason,omitempty"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
}

func promotionResultFromDomain(r promotion.Result) PromotionResult {
	return PromotionResult{Applied: r.Applied, Reason: r.Reason, Discount: r.Discount, FinalAmount: r.FinalAmount}
}

type AvailabilityCheck struct {
	Available bool `json:"available"`
}

type AvailabilitySaved struct {
	IDs []uuid.UUID `json:"ids"`
}

type AvailabilityWindow struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	IsHoliday bool      `json:"isHoliday"`
	Start     string    `json:"start,omitempty"`
	End       string    `json:"end,omitempty"`
}

func savedAvailabilityFromQuery(windows []queries.SavedAvailability) []AvailabilityWindow {
	response := make([]AvailabilityWindow, len(windows))
	for i, w := range windows {
		response[i] = AvailabilityWindow{
			ID:        w.ID.Bytes(),
			Date:      w.Date.Format(time.DateOnly),
			IsHoliday: w.IsHoliday,
		}
		if !w.IsHoliday {
			response[i].Start = formatClock(w.Start)
			response[i].End = formatClock(w.End)
		}
	}
	return response
}

type PayoutSummary struct {
	TotalEarnings  decimal.Decimal `json:"totalEarnings"`
	PaidPayouts    decimal.Decimal `json:"paidPayouts"`
	PendingPayouts decimal.Decimal `json:"pendingPayouts"`
}

func payoutSummaryFromDomain(s payout.Summary) PayoutSummary {
	return PayoutSummary{TotalEarnings: s.TotalEarnings, PaidPayouts: s.PaidPayouts, PendingPayouts: s.PendingPayouts}
}

type Payout struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         uuid.UUID       `json:"orderId"`
	DeliveryEarning decimal.Decimal `json:"deliveryEarning"`
	Charge          decimal.Decimal `json:"charge"`
	FinalAmount     decimal.Decimal `json:"finalAmount"`
	Paid            bool            `json:"paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func payoutsFromQuery(entries []queries.PayoutListItem) []Payout {
	response := make([]Payout, len(entries))
	for i, e := range entries {
		response[i] = Payout{
			ID:              e.ID.Bytes(),
			OrderID:         e.OrderID.Bytes(),
			DeliveryEarning: e.DeliveryEarning,
			Charge:          e.Charge,
			FinalAmount:     e.FinalAmount,
			Paid:            e.IsPaid,
			PaidAt:          e.PaidAt,
			CreatedAt:       e.CreatedAt,
		}
	}
	return response
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	u := id.Bytes()
	return &u
}

// parseClock reads "15:04" (or "24:00") as an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
