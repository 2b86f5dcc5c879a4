package commands_test

import (
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/promotion"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func flatPromotion(t *testing.T, amount int64, eligibility promotion.Eligibility) *promotion.Promotion {
	t.Helper()
	p, err := promotion.NewPromotion(kernel.NewUUID(), "FLAT"+decimal.NewFromInt(amount).String(), "",
		baseNow.Add(-24*time.Hour), baseNow.Add(24*time.Hour), promotion.Flat, decimal.NewFromInt(amount), nil, eligibility)
	require.NoError(t, err)
	return p
}

func TestApplyPromotionCommandHandler_Handle_AppliesOnce(t *testing.T) {
	// Given a pending order with subtotal 100 and a flat 20 promotion
	ctx := t.Context()
	p := newParties(t)
	o := orderIn(t, p, order.Pending)
	promo := flatPromotion(t, 20, promotion.Eligibility{})
	cmd, err := commands.NewApplyPromotionCommand(o.ID(), promo.ID(), p.customer)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Twice()
	uow.promotions.On("Get", ctx, promo.ID()).Return(promo, nil).Twice()
	uow.orders.On("CountByCustomer", ctx, p.customer.ID(), o.ID()).Return(int64(0), nil).Twice()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewApplyPromotionCommandHandler(factory, fixedClock{baseNow}, services.NewPromotionEvaluator())

	// When
	first, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	second, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// Then the discount is not doubled
	assert.True(t, first.Applied)
	assert.True(t, first.Discount.Equal(decimal.NewFromInt(20)))
	assert.False(t, second.Applied)
	assert.Equal(t, promotion.ReasonAlreadyApplied, second.Reason)
	assert.True(t, second.Discount.Equal(decimal.NewFromInt(20)))
	assert.True(t, o.Totals().Discount.Equal(decimal.NewFromInt(20)))
	uow.assertAll(t)
}

func TestApplyPromotionCommandHandler_Handle_FirstOrderOnly(t *testing.T) {
	ctx := t.Context()
	p := newParties(t)
	o := orderIn(t, p, order.Pending)
	promo := flatPromotion(t, 20, promotion.Eligibility{FirstOrderOnly: true})
	cmd, err := commands.NewApplyPromotionCommand(o.ID(), promo.ID(), p.customer)
	require.NoError(t, err)

	uow, factory := abortedUoW(ctx)
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.promotions.On("Get", ctx, promo.ID()).Return(promo, nil).Once()
	uow.orders.On("CountByCustomer", ctx, p.customer.ID(), o.ID()).Return(int64(3), nil).Once()

	h := commands.NewApplyPromotionCommandHandler(factory, fixedClock{baseNow}, services.NewPromotionEvaluator())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, promotion.ReasonFirstOrderOnly, result.Reason)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.assertAll(t)
}

func TestApplyPromotionCommandHandler_Handle_UnknownPromotion(t *testing.T) {
	ctx := t.Context()
	p := newParties(t)
	o := orderIn(t, p, order.Pending)
	promoID := kernel.NewUUID()
	cmd, err := commands.NewApplyPromotionCommand(o.ID(), promoID, p.customer)
	require.NoError(t, err)

	uow, factory := abortedUoW(ctx)
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.promotions.On("Get", ctx, promoID).Return(nil, errs.NewObjectNotFoundError("promotionID", promoID)).Once()

	h := commands.NewApplyPromotionCommandHandler(factory, fixedClock{baseNow}, services.NewPromotionEvaluator())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.assertAll(t)
}
