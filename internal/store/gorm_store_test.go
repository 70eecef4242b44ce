package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/models"
	"stockledger/internal/testutil"
	"stockledger/internal/uuid"
)

func newHolding(symbol, shares, avg string) models.Holding {
	return models.Holding{
		Base:              models.Base{ID: uuid.New()},
		Symbol:            symbol,
		Shares:            decimal.RequireFromString(shares),
		AverageCostBasis:  decimal.RequireFromString(avg),
		FirstPurchaseDate: models.NewDate(2024, 1, 15),
	}
}

func TestGormStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("missing profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := NewGormStore(db).Load(ctx, "nobody")
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})

	t.Run("empty profile has non-nil collections", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		p := testutil.CreateTestProfile(t, db)

		got, err := NewGormStore(db).Load(ctx, p.UID)
		require.NoError(t, err)
		assert.NotNil(t, got.Holdings)
		assert.Empty(t, got.Holdings)
		assert.NotNil(t, got.Transactions)
		assert.True(t, got.HasTransactionLog)
	})

	t.Run("legacy profile has nil transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		p := testutil.CreateLegacyProfile(t, db)
		testutil.CreateTestHolding(t, db, p.UID, "AAPL", "1", "10")

		got, err := NewGormStore(db).Load(ctx, p.UID)
		require.NoError(t, err)
		assert.Nil(t, got.Transactions)
		assert.Len(t, got.Holdings, 1)
	})

	t.Run("holdings are scoped to the profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		mine := testutil.CreateTestProfile(t, db)
		other := testutil.CreateTestProfile(t, db)
		testutil.CreateTestHolding(t, db, mine.UID, "MSFT", "2", "300")
		testutil.CreateTestHolding(t, db, mine.UID, "AAPL", "1", "150")
		testutil.CreateTestHolding(t, db, other.UID, "TSLA", "5", "200")

		got, err := NewGormStore(db).Load(ctx, mine.UID)
		require.NoError(t, err)
		require.Len(t, got.Holdings, 2)
		assert.Equal(t, "AAPL", got.Holdings[0].Symbol)
		assert.Equal(t, "MSFT", got.Holdings[1].Symbol)
		assert.True(t, got.Holdings[1].AverageCostBasis.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, models.NewDate(2024, 1, 2), got.Holdings[0].FirstPurchaseDate)
	})
}

func TestGormStore_Create(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	st := NewGormStore(db)

	require.NoError(t, st.Create(ctx, &models.Profile{UID: "u1", Email: "first@test.com", HasTransactionLog: true}))
	// Second create is a no-op and keeps the original row.
	require.NoError(t, st.Create(ctx, &models.Profile{UID: "u1", Email: "second@test.com", HasTransactionLog: true}))

	got, err := st.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "first@test.com", got.Email)
	assert.Zero(t, got.Revision)
}

func TestGormStore_InitTransactionLog(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	st := NewGormStore(db)

	legacy := testutil.CreateLegacyProfile(t, db)
	require.NoError(t, st.InitTransactionLog(ctx, legacy.UID))

	got, err := st.Load(ctx, legacy.UID)
	require.NoError(t, err)
	assert.True(t, got.HasTransactionLog)
	assert.NotNil(t, got.Transactions)

	testutil.AssertAppError(t, st.InitTransactionLog(ctx, "nobody"), "PROFILE_NOT_FOUND")
}

func TestGormStore_ReplaceHoldings(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the set and bumps the revision", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := NewGormStore(db)
		p := testutil.CreateTestProfile(t, db)
		testutil.CreateTestHolding(t, db, p.UID, "AAPL", "1", "10")

		rev, err := st.ReplaceHoldings(ctx, p.UID, 0, []models.Holding{
			newHolding("MSFT", "2.5", "300.10"),
			newHolding("GOOG", "1", "140"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)

		got, err := st.Load(ctx, p.UID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Revision)
		require.Len(t, got.Holdings, 2)
		assert.Equal(t, "GOOG", got.Holdings[0].Symbol)
		assert.Equal(t, p.UID, got.Holdings[1].ProfileID)
		assert.True(t, got.Holdings[1].Shares.Equal(decimal.RequireFromString("2.5")))
		assert.True(t, got.Holdings[1].AverageCostBasis.Equal(decimal.RequireFromString("300.10")))
		assert.Equal(t, models.NewDate(2024, 1, 15), got.Holdings[1].FirstPurchaseDate)
	})

	t.Run("empty set removes every holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := NewGormStore(db)
		p := testutil.CreateTestProfile(t, db)
		testutil.CreateTestHolding(t, db, p.UID, "AAPL", "1", "10")

		_, err := st.ReplaceHoldings(ctx, p.UID, 0, nil)
		require.NoError(t, err)

		got, err := st.Load(ctx, p.UID)
		require.NoError(t, err)
		assert.Empty(t, got.Holdings)
	})

	t.Run("stale revision is rejected and nothing changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := NewGormStore(db)
		p := testutil.CreateTestProfile(t, db)

		_, err := st.ReplaceHoldings(ctx, p.UID, 0, []models.Holding{newHolding("AAPL", "1", "10")})
		require.NoError(t, err)

		_, err = st.ReplaceHoldings(ctx, p.UID, 0, []models.Holding{newHolding("TSLA", "9", "99")})
		testutil.AssertAppError(t, err, "CONCURRENT_MODIFICATION")
		assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)

		got, err := st.Load(ctx, p.UID)
		require.NoError(t, err)
		require.Len(t, got.Holdings, 1)
		assert.Equal(t, "AAPL", got.Holdings[0].Symbol)
		assert.Equal(t, int64(1), got.Revision)
	})

	t.Run("missing profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := NewGormStore(db).ReplaceHoldings(ctx, "nobody", 0, nil)
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestGormStore_AppendTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("appends in order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := NewGormStore(db)
		p := testutil.CreateTestProfile(t, db)

		for _, sym := range []string{"ZZZ", "AAA", "MMM"} {
			tx := models.NewTrade(models.TransactionPurchase, sym, decimal.NewFromInt(1), decimal.NewFromInt(10), models.NewDate(2024, 1, 1))
			require.NoError(t, st.AppendTransaction(ctx, p.UID, &tx))
		}

		got, err := st.Load(ctx, p.UID)
		require.NoError(t, err)
		require.Len(t, got.Transactions, 3)
		assert.Equal(t, "ZZZ", got.Transactions[0].Symbol)
		assert.Equal(t, "AAA", got.Transactions[1].Symbol)
		assert.Equal(t, "MMM", got.Transactions[2].Symbol)
		assert.Equal(t, int64(3), got.Transactions[2].Seq)
		assert.True(t, got.Transactions[0].TotalAmount.Equal(decimal.NewFromInt(10)))
	})

	t.Run("creates the log on legacy profiles", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := NewGormStore(db)
		p := testutil.CreateLegacyProfile(t, db)

		tx := models.NewTrade(models.TransactionSale, "AAPL", decimal.NewFromInt(1), decimal.NewFromInt(10), models.NewDate(2024, 1, 1))
		require.NoError(t, st.AppendTransaction(ctx, p.UID, &tx))

		got, err := st.Load(ctx, p.UID)
		require.NoError(t, err)
		assert.True(t, got.HasTransactionLog)
		assert.Len(t, got.Transactions, 1)
	})

	t.Run("missing profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		tx := models.NewTrade(models.TransactionPurchase, "AAPL", decimal.NewFromInt(1), decimal.NewFromInt(1), models.NewDate(2024, 1, 1))
		err := NewGormStore(db).AppendTransaction(ctx, "nobody", &tx)
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}
