package storage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/money-tracker/internal/errors"
	"github.com/money-tracker/internal/models"
	"github.com/money-tracker/internal/types"
)

func TestHoldingUniqueness(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	users := NewUserRepository(db)
	portfolios := NewPortfolioRepository(db)
	assets := NewAssetRepository(db)
	holdings := NewHoldingRepository(db)

	user := &models.User{Username: "alice", Subscribed: true}
	require.NoError(t, users.Create(ctx, user))

	portfolio := &models.Portfolio{UserID: user.ID}
	require.NoError(t, portfolios.Create(ctx, portfolio))

	asset := &models.Asset{Name: "Bitcoin", Symbol: "BTC", Type: string(types.AssetTypeCrypto)}
	require.NoError(t, assets.Create(ctx, asset))

	first := &models.Holding{
		PortfolioID: portfolio.ID,
		AssetID:     asset.ID,
		Quantity:    decimal.RequireFromString("1.5"),
	}
	require.NoError(t, holdings.Create(ctx, first))
	assert.False(t, first.AcquisitionDate.IsZero(), "acquisition date should be stamped on create")

	// Second holding for the same (portfolio, asset) pair must fail.
	dup := &models.Holding{
		PortfolioID: portfolio.ID,
		AssetID:     asset.ID,
		Quantity:    decimal.RequireFromString("2.0"),
	}
	err := holdings.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err), "expected uniqueness violation, got %v", err)

	// The same asset in a different portfolio is fine.
	other := &models.Portfolio{UserID: user.ID}
	require.NoError(t, portfolios.Create(ctx, other))
	require.NoError(t, holdings.Create(ctx, &models.Holding{
		PortfolioID: other.ID,
		AssetID:     asset.ID,
		Quantity:    decimal.RequireFromString("0.25"),
	}))
}

func TestHoldingQuantityPrecision(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	users := NewUserRepository(db)
	portfolios := NewPortfolioRepository(db)
	assets := NewAssetRepository(db)
	holdings := NewHoldingRepository(db)

	user := &models.User{Username: "bob", Subscribed: true}
	require.NoError(t, users.Create(ctx, user))
	portfolio := &models.Portfolio{UserID: user.ID}
	require.NoError(t, portfolios.Create(ctx, portfolio))
	asset := &models.Asset{Name: "Bitcoin", Symbol: "BTC", Type: string(types.AssetTypeCrypto)}
	require.NoError(t, assets.Create(ctx, asset))

	// One satoshi: the smallest quantity numeric(18,8) can hold.
	quantity := decimal.RequireFromString("0.00000001")
	holding := &models.Holding{
		PortfolioID: portfolio.ID,
		AssetID:     asset.ID,
		Quantity:    quantity,
	}
	require.NoError(t, holdings.Create(ctx, holding))

	got, err := holdings.GetByID(ctx, holding.ID)
	require.NoError(t, err)
	assert.True(t, quantity.Equal(got.Quantity),
		"quantity should round-trip exactly: want %s, got %s", quantity, got.Quantity)
}

func TestHoldingUpdateRestampsAcquisitionDate(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	users := NewUserRepository(db)
	portfolios := NewPortfolioRepository(db)
	assets := NewAssetRepository(db)
	holdings := NewHoldingRepository(db)

	user := &models.User{Username: "carol", Subscribed: true}
	require.NoError(t, users.Create(ctx, user))
	portfolio := &models.Portfolio{UserID: user.ID}
	require.NoError(t, portfolios.Create(ctx, portfolio))
	asset := &models.Asset{Name: "Apple Inc.", Symbol: "AAPL", Type: string(types.AssetTypeStock)}
	require.NoError(t, assets.Create(ctx, asset))

	holding := &models.Holding{
		PortfolioID: portfolio.ID,
		AssetID:     asset.ID,
		Quantity:    decimal.RequireFromString("10"),
	}
	require.NoError(t, holdings.Create(ctx, holding))

	// Backdate the row, then update the quantity; the date must come back
	// to today. Preserving it on update is an open stakeholder question.
	_, err := db.Pool().Exec(ctx,
		`UPDATE portfolios_assets SET acquisition_date = '2020-01-01' WHERE id = $1`, holding.ID)
	require.NoError(t, err)

	require.NoError(t, holdings.UpdateQuantity(ctx, holding.ID, decimal.RequireFromString("12")))

	got, err := holdings.GetByID(ctx, holding.ID)
	require.NoError(t, err)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	assert.False(t, got.AcquisitionDate.Before(today),
		"acquisition date should be restamped on update, got %v", got.AcquisitionDate)
}

func TestPerformanceUniqueness(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	users := NewUserRepository(db)
	perfs := NewPerformanceRepository(db)

	user := &models.User{Username: "dave", Subscribed: true}
	require.NoError(t, users.Create(ctx, user))

	monday := &models.Performance{UserID: user.ID, DaysToSendEmail: types.WeekdayMonday}
	require.NoError(t, perfs.Create(ctx, monday))
	assert.Equal(t, types.PeriodicityWeekly, monday.Periodicity, "periodicity should default to Weekly")
	assert.False(t, monday.LastTimeSent.IsZero(), "last_time_sent should default to today")

	// Same weekday twice must fail.
	dup := &models.Performance{UserID: user.ID, DaysToSendEmail: types.WeekdayMonday}
	err := perfs.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err), "expected uniqueness violation, got %v", err)

	// A different weekday for the same user is fine.
	tuesday := &models.Performance{UserID: user.ID, DaysToSendEmail: types.WeekdayTuesday}
	require.NoError(t, perfs.Create(ctx, tuesday))

	settings, err := perfs.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, settings, 2)
}

func TestPerformanceRejectsInvalidEnums(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	users := NewUserRepository(db)
	perfs := NewPerformanceRepository(db)

	user := &models.User{Username: "erin", Subscribed: true}
	require.NoError(t, users.Create(ctx, user))

	err := perfs.Create(ctx, &models.Performance{
		UserID:          user.ID,
		DaysToSendEmail: types.Weekday("Funday"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation), "got %v", err)
}

func TestUserDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	users := NewUserRepository(db)
	portfolios := NewPortfolioRepository(db)
	assets := NewAssetRepository(db)
	holdings := NewHoldingRepository(db)
	perfs := NewPerformanceRepository(db)

	user := &models.User{Username: "frank", Subscribed: true}
	require.NoError(t, users.Create(ctx, user))
	portfolio := &models.Portfolio{UserID: user.ID}
	require.NoError(t, portfolios.Create(ctx, portfolio))
	asset := &models.Asset{Name: "Ethereum", Symbol: "ETH", Type: string(types.AssetTypeCrypto)}
	require.NoError(t, assets.Create(ctx, asset))
	require.NoError(t, holdings.Create(ctx, &models.Holding{
		PortfolioID: portfolio.ID,
		AssetID:     asset.ID,
		Quantity:    decimal.RequireFromString("3.5"),
	}))
	require.NoError(t, perfs.Create(ctx, &models.Performance{UserID: user.ID}))

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err := portfolios.GetByID(ctx, portfolio.ID)
	assert.True(t, errors.IsNotFound(err), "portfolio should be gone, got %v", err)

	remaining, err := holdings.ListByPortfolio(ctx, portfolio.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "holdings should be gone with the portfolio")

	settings, err := perfs.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, settings, "performance settings should be gone with the user")

	// The asset survives: it is owned by nobody.
	_, err = assets.GetByID(ctx, asset.ID)
	assert.NoError(t, err)
}

func TestAssetDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	users := NewUserRepository(db)
	portfolios := NewPortfolioRepository(db)
	assets := NewAssetRepository(db)
	holdings := NewHoldingRepository(db)
	infos := NewDailyAssetInfoRepository(db)

	user := &models.User{Username: "grace", Subscribed: true}
	require.NoError(t, users.Create(ctx, user))
	portfolio := &models.Portfolio{UserID: user.ID}
	require.NoError(t, portfolios.Create(ctx, portfolio))
	asset := &models.Asset{Name: "Bitcoin", Symbol: "BTC", Type: string(types.AssetTypeCrypto)}
	require.NoError(t, assets.Create(ctx, asset))
	require.NoError(t, holdings.Create(ctx, &models.Holding{
		PortfolioID: portfolio.ID,
		AssetID:     asset.ID,
		Quantity:    decimal.RequireFromString("1.5"),
	}))
	require.NoError(t, infos.Record(ctx, &models.DailyAssetInfo{
		AssetID: asset.ID,
		Price:   decimal.RequireFromString("65000.00"),
		Volume:  decimal.RequireFromString("123456.00"),
	}))

	require.NoError(t, assets.Delete(ctx, asset.ID))

	remaining, err := holdings.ListByPortfolio(ctx, portfolio.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "holdings should be gone with the asset")

	_, err = infos.LatestForAsset(ctx, asset.ID)
	assert.True(t, errors.IsNotFound(err), "daily info should be gone with the asset, got %v", err)

	// The portfolio itself survives.
	_, err = portfolios.GetByID(ctx, portfolio.ID)
	assert.NoError(t, err)
}

func TestHoldingForeignKeyViolations(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	holdings := NewHoldingRepository(db)

	err := holdings.Create(ctx, &models.Holding{
		PortfolioID: 9999,
		AssetID:     9999,
		Quantity:    decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsForeignKeyViolation(err), "expected foreign-key violation, got %v", err)
}

func TestAssetSymbolsAreNotUnique(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	assets := NewAssetRepository(db)

	require.NoError(t, assets.Create(ctx, &models.Asset{Name: "Bitcoin", Symbol: "BTC", Type: "crypto"}))
	require.NoError(t, assets.Create(ctx, &models.Asset{Name: "Bitcoin Tracker ETP", Symbol: "BTC", Type: "etf"}))

	matches, err := assets.GetBySymbol(ctx, "BTC")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestAssetFieldValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	assets := NewAssetRepository(db)

	err := assets.Create(ctx, &models.Asset{
		Name:   "Overlong",
		Symbol: "TOOLONGSYMBOL", // > 10 chars
		Type:   "stock",
	})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation), "got %v", err)
}

func TestPerformanceDueForWeekday(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext(t)

	users := NewUserRepository(db)
	perfs := NewPerformanceRepository(db)

	subscribed := &models.User{Username: "henry", Subscribed: true}
	require.NoError(t, users.Create(ctx, subscribed))
	unsubscribed := &models.User{Username: "iris", Subscribed: false}
	require.NoError(t, users.Create(ctx, unsubscribed))

	require.NoError(t, perfs.Create(ctx, &models.Performance{
		UserID:          subscribed.ID,
		DaysToSendEmail: types.WeekdayFriday,
	}))
	require.NoError(t, perfs.Create(ctx, &models.Performance{
		UserID:          unsubscribed.ID,
		DaysToSendEmail: types.WeekdayFriday,
	}))

	due, err := perfs.ListDueForWeekday(ctx, types.WeekdayFriday)
	require.NoError(t, err)
	require.Len(t, due, 1, "only subscribed users should be due")
	assert.Equal(t, subscribed.ID, due[0].UserID)

	require.NoError(t, perfs.UpdateLastSent(ctx, due[0].ID, time.Now().UTC()))
	got, err := perfs.GetByID(ctx, due[0].ID)
	require.NoError(t, err)
	assert.False(t, got.LastTimeSent.IsZero())
}
