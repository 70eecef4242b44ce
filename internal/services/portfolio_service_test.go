package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/internal/provider"
	"stockledger/internal/testutil"
)

type fakeQuotes struct {
	prices map[string]string
	calls  int
}

func (f *fakeQuotes) FetchQuotes(_ context.Context, symbols []string) []provider.Quote {
	f.calls++
	out := make([]provider.Quote, 0, len(symbols))
	for _, s := range symbols {
		q := provider.Quote{Symbol: s}
		if p, ok := f.prices[s]; ok {
			q.CurrentPrice = d(p)
			q.ChangePercent = d("1.5")
		}
		out = append(out, q)
	}
	return out
}

func (f *fakeQuotes) SearchSymbols(context.Context, string) ([]provider.SymbolMatch, error) {
	return []provider.SymbolMatch{}, nil
}

func (f *fakeQuotes) StockDetails(_ context.Context, symbol string) (*provider.Quote, error) {
	return &provider.Quote{Symbol: symbol}, nil
}

var _ QuoteProvider = (*fakeQuotes)(nil)

func TestGetSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("values holdings at quotes", func(t *testing.T) {
		db, ledger, uid := setupLedger(t)
		testutil.CreateTestHolding(t, db, uid, "AAPL", "15", "110")
		testutil.CreateTestHolding(t, db, uid, "MSFT", "2", "300")
		quotes := &fakeQuotes{prices: map[string]string{"AAPL": "130", "MSFT": "250"}}

		summary, err := NewPortfolioService(ledger, quotes).GetSummary(ctx, uid)
		require.NoError(t, err)
		require.Len(t, summary.Holdings, 2)

		aapl := summary.Holdings[0]
		assert.Equal(t, "AAPL", aapl.Symbol)
		assert.True(t, aapl.PriceKnown)
		testutil.AssertDecimal(t, "AAPL market value", aapl.MarketValue, "1950")
		testutil.AssertDecimal(t, "AAPL cost basis", aapl.CostBasis, "1650")
		testutil.AssertDecimal(t, "AAPL profit", aapl.ProfitLoss, "300")
		testutil.AssertDecimal(t, "AAPL profit percent", aapl.ProfitLossPercent, "18.18")

		msft := summary.Holdings[1]
		testutil.AssertDecimal(t, "MSFT profit", msft.ProfitLoss, "-100")
		testutil.AssertDecimal(t, "MSFT profit percent", msft.ProfitLossPercent, "-16.67")

		testutil.AssertDecimal(t, "total value", summary.TotalValue, "2450")
		testutil.AssertDecimal(t, "total cost", summary.TotalCostBasis, "2250")
		testutil.AssertDecimal(t, "total profit", summary.TotalProfitLoss, "200")
		testutil.AssertDecimal(t, "total percent", summary.TotalProfitLossPercent, "8.89")
		assert.Equal(t, "$2,450.00", summary.TotalValueDisplay)
		assert.Equal(t, "$200.00", summary.TotalProfitLossDisplay)
		assert.Equal(t, 1, quotes.calls)
	})

	t.Run("unknown price falls back to cost", func(t *testing.T) {
		db, ledger, uid := setupLedger(t)
		testutil.CreateTestHolding(t, db, uid, "XYZ", "4", "25.50")

		summary, err := NewPortfolioService(ledger, &fakeQuotes{}).GetSummary(ctx, uid)
		require.NoError(t, err)
		require.Len(t, summary.Holdings, 1)

		v := summary.Holdings[0]
		assert.False(t, v.PriceKnown)
		testutil.AssertDecimal(t, "current price", v.CurrentPrice, "25.50")
		testutil.AssertDecimal(t, "profit", v.ProfitLoss, "0")
		testutil.AssertDecimal(t, "change", v.ChangePercent, "0")
		testutil.AssertDecimal(t, "total value", summary.TotalValue, "102")
	})

	t.Run("empty portfolio skips quotes", func(t *testing.T) {
		_, ledger, uid := setupLedger(t)
		quotes := &fakeQuotes{}

		summary, err := NewPortfolioService(ledger, quotes).GetSummary(ctx, uid)
		require.NoError(t, err)
		assert.NotNil(t, summary.Holdings)
		assert.Empty(t, summary.Holdings)
		assert.True(t, summary.TotalProfitLossPercent.IsZero())
		assert.Equal(t, "$0.00", summary.TotalValueDisplay)
		assert.Zero(t, quotes.calls)
	})

	t.Run("missing profile reads as empty", func(t *testing.T) {
		_, ledger, _ := setupLedger(t)

		summary, err := NewPortfolioService(ledger, &fakeQuotes{}).GetSummary(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, summary.Holdings)
	})
}

func TestPercentOf(t *testing.T) {
	assert.True(t, percentOf(d("5"), d("0")).IsZero())
	assert.True(t, percentOf(d("1"), d("3")).Equal(d("33.33")))
}
