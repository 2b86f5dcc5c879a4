package postgres_test

import (
	"time"

	"laundry/internal/adapters/out/postgres/catalogrepo"
	"laundry/internal/adapters/out/postgres/promotionrepo"
	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/core/domain/model/payout"
	"laundry/internal/core/domain/model/promotion"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

func (suite *UnitOfWorkIntegrationTestSuite) TestOtpRepository_SaveReplacesChallenge() {
	ctx := suite.T().Context()
	repo := suite.factory.Create().OtpRepository()
	orderID := kernel.NewUUID()

	// Given a consumed pickup challenge
	pickup, err := otp.Issue(orderID, otp.Pickup, "482193", baseNow)
	suite.Require().NoError(err)
	suite.Require().NoError(pickup.Verify(otp.Pickup, "482193", baseNow.Add(time.Minute)))
	suite.Require().NoError(repo.Save(ctx, pickup))

	stored, err := repo.Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(stored.IsConsumed())

	// When a handover challenge is issued for the same order
	handover, err := otp.Issue(orderID, otp.Handover, "130577", baseNow.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Save(ctx, handover))

	// Then it replaces the first one
	stored, err = repo.Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(otp.Handover, stored.Kind())
	suite.False(stored.IsConsumed())
	suite.Require().ErrorIs(stored.Verify(otp.Pickup, "482193", baseNow.Add(time.Hour)), otp.ErrOtpInvalid)
	suite.Require().NoError(stored.Verify(otp.Handover, "130577", baseNow.Add(time.Hour+time.Minute)))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOtpRepository_DeleteStale() {
	ctx := suite.T().Context()
	repo := suite.factory.Create().OtpRepository()

	// Given an expired, a consumed and an open challenge
	expired, err := otp.Issue(kernel.NewUUID(), otp.Pickup, "111111", baseNow.Add(-48*time.Hour))
	suite.Require().NoError(err)
	consumed, err := otp.Issue(kernel.NewUUID(), otp.Delivery, "222222", baseNow.Add(-30*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(consumed.Verify(otp.Delivery, "222222", baseNow.Add(-30*time.Hour)))
	open, err := otp.Issue(kernel.NewUUID(), otp.Handover, "333333", baseNow)
	suite.Require().NoError(err)
	for _, c := range []*otp.Challenge{expired, consumed, open} {
		suite.Require().NoError(repo.Save(ctx, c))
	}

	// When
	deleted, err := repo.DeleteStale(ctx, baseNow.Add(-otp.Retention))

	// Then
	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)
	_, err = repo.Get(ctx, open.OrderID())
	suite.Require().NoError(err)
	_, err = repo.Get(ctx, expired.OrderID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAvailabilityRepository_Lifecycle() {
	ctx := suite.T().Context()
	repo := suite.factory.Create().AvailabilityRepository()
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	// Given
	late := suite.window(monday, false, 14*time.Hour, 18*time.Hour)
	early := suite.window(monday, false, 9*time.Hour, 13*time.Hour)
	holiday := suite.window(tuesday, true, 0, 0)
	for _, w := range []*availability.Window{late, early, holiday} {
		suite.Require().NoError(repo.Add(ctx, w))
	}

	// When listed
	windows, err := repo.ListByAgent(ctx, suite.agent.ID(), monday, tuesday)

	// Then they come back ordered by date and start
	suite.Require().NoError(err)
	suite.Require().Len(windows, 3)
	suite.Equal(early.ID(), windows[0].ID())
	suite.Equal(9*time.Hour, windows[0].Start())
	suite.Equal(late.ID(), windows[1].ID())
	suite.True(windows[2].IsHoliday())
	suite.True(windows[2].Date().Equal(tuesday))

	suite.Run("update", func() {
		suite.Require().NoError(early.Edit(monday, false, 8*time.Hour, 12*time.Hour+30*time.Minute))
		suite.Require().NoError(repo.Update(ctx, early))
		got, err := repo.Get(ctx, early.ID())
		suite.Require().NoError(err)
		suite.Equal(12*time.Hour+30*time.Minute, got.End())
	})

	suite.Run("delete", func() {
		suite.Require().NoError(repo.Delete(ctx, late.ID()))
		_, err := repo.Get(ctx, late.ID())
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
		suite.Require().ErrorIs(repo.Delete(ctx, late.ID()), errs.ErrObjectNotFound)
	})

	suite.Run("lock agent days", func() {
		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		defer func() { _ = uow.Rollback(ctx) }()
		suite.Require().NoError(uow.AvailabilityRepository().LockAgentDays(ctx, suite.agent.ID(), tuesday, monday, monday))
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPromotionRepository_ListValidAt() {
	ctx := suite.T().Context()

	// Given a running and an expired promotion
	maxDiscount := decimal.NewFromInt(50)
	running := suite.promotion("SAVE10", baseNow.Add(-time.Hour), baseNow.Add(time.Hour), &maxDiscount)
	expired := suite.promotion("OLD", baseNow.Add(-48*time.Hour), baseNow.Add(-24*time.Hour), nil)
	for _, p := range []*promotion.Promotion{running, expired} {
		dto := promotionrepo.FromDomain(p)
		suite.Require().NoError(suite.db.Create(&dto).Error)
	}
	repo := suite.factory.Create().PromotionRepository()

	// When
	valid, err := repo.ListValidAt(ctx, baseNow)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(valid, 1)
	suite.Equal("SAVE10", valid[0].Code())
	suite.Require().NotNil(valid[0].MaxDiscount())
	suite.True(maxDiscount.Equal(*valid[0].MaxDiscount()))

	got, err := repo.Get(ctx, expired.ID())
	suite.Require().NoError(err)
	suite.Nil(got.MaxDiscount())

	_, err = repo.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPayoutRepository() {
	ctx := suite.T().Context()
	repo := suite.factory.Create().PayoutRepository()
	orderID := kernel.NewUUID()

	// Given
	entry, err := payout.NewEntry(kernel.NewUUID(), suite.agent.ID(), orderID, decimal.NewFromInt(158),
		payout.DefaultRateTable(), baseNow)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, entry))

	suite.Run("one entry per order", func() {
		duplicate, err := payout.NewEntry(kernel.NewUUID(), suite.agent.ID(), orderID, decimal.NewFromInt(158),
			payout.DefaultRateTable(), baseNow)
		suite.Require().NoError(err)
		suite.Require().ErrorIs(repo.Add(ctx, duplicate), errs.ErrConflict)
	})

	suite.Run("mark paid", func() {
		suite.Require().True(entry.MarkPaid(baseNow.Add(time.Hour)))
		suite.Require().NoError(repo.MarkPaid(ctx, entry))

		got, err := repo.GetByOrder(ctx, orderID)
		suite.Require().NoError(err)
		suite.True(got.IsPaid())
		suite.Require().NotNil(got.PaidAt())
		suite.True(got.FinalAmount().Equal(entry.FinalAmount()))
	})

	suite.Run("unknown entry", func() {
		_, err := repo.Get(ctx, kernel.NewUUID())
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCatalogRepository() {
	ctx := suite.T().Context()

	// Given
	shirt := catalogrepo.ItemDTO{ID: kernel.NewUUID().Bytes(), ProviderID: suite.provider.ID().Bytes(),
		Name: "Shirt", Price: decimal.NewFromInt(25)}
	foreign := catalogrepo.ItemDTO{ID: kernel.NewUUID().Bytes(), ProviderID: kernel.NewUUID().Bytes(),
		Name: "Saree", Price: decimal.NewFromInt(120)}
	suite.Require().NoError(suite.db.Create(&catalogrepo.ProviderDTO{ID: suite.provider.ID().Bytes(),
		Name: "Sparkle", Active: true}).Error)
	suite.Require().NoError(suite.db.Create(&[]catalogrepo.ItemDTO{shirt, foreign}).Error)
	repo := suite.factory.Create().CatalogRepository()

	// When
	exists, err := repo.ProviderExists(ctx, suite.provider.ID())
	suite.Require().NoError(err)
	missing, err := repo.ProviderExists(ctx, kernel.NewUUID())
	suite.Require().NoError(err)

	shirtID, err := kernel.UUIDFromBytes(shirt.ID[:])
	suite.Require().NoError(err)
	foreignID, err := kernel.UUIDFromBytes(foreign.ID[:])
	suite.Require().NoError(err)
	items, err := repo.GetItems(ctx, suite.provider.ID(), []kernel.UUID{shirtID, foreignID})
	suite.Require().NoError(err)

	// Then only the provider's own item is priced
	suite.True(exists)
	suite.False(missing)
	suite.Require().Len(items, 1)
	suite.Equal("Shirt", items[shirtID].Name)
	suite.True(decimal.NewFromInt(25).Equal(items[shirtID].Price))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutboxRepository_ListAndMarkPublished() {
	ctx := suite.T().Context()

	// Given two orders with their creation events in the outbox
	first := suite.newOrder("a")
	suite.addCommitted(first)
	second := suite.newOrder("b")
	suite.addCommitted(second)

	// When the first batch of one is published
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	batch, err := uow.OutboxRepository().ListUnpublished(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(batch, 1)
	suite.Require().NoError(uow.OutboxRepository().MarkPublished(ctx, []kernel.UUID{batch[0].ID}, baseNow))
	suite.Require().NoError(uow.Commit(ctx))

	// Then only the other message is pending
	pending, err := suite.factory.Create().OutboxRepository().ListUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.NotEqual(batch[0].ID, pending[0].ID)
}

func (suite *UnitOfWorkIntegrationTestSuite) window(
	date time.Time,
	isHoliday bool,
	start, end time.Duration,
) *availability.Window {
	w, err := availability.NewWindow(kernel.NewUUID(), suite.agent.ID(), date, isHoliday, start, end)
	suite.Require().NoError(err)
	return w
}

func (suite *UnitOfWorkIntegrationTestSuite) promotion(
	code string,
	from, until time.Time,
	maxDiscount *decimal.Decimal,
) *promotion.Promotion {
	p, err := promotion.NewPromotion(kernel.NewUUID(), code, code+" off", from, until,
		promotion.Percent, decimal.NewFromInt(10), maxDiscount, promotion.Eligibility{MinOrderValue: decimal.Zero})
	suite.Require().NoError(err)
	return p
}
