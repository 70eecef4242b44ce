package services

import (
	"context"

	"github.com/shopspring/decimal"

	"stockledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// portfolioService marks a user's holdings to market.
type portfolioService struct {
	ledger LedgerServicer
	quotes QuoteProvider
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(ledger LedgerServicer, quotes QuoteProvider) PortfolioServicer {
	return &portfolioService{ledger: ledger, quotes: quotes}
}

// GetSummary values every holding at its latest quote. Holdings whose price
// is unknown are valued at their average cost, so they contribute no P/L.
func (s *portfolioService) GetSummary(ctx context.Context, userID string) (*PortfolioSummary, error) {
	holdings, err := s.ledger.GetHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, len(holdings))
	for i, h := range holdings {
		symbols[i] = h.Symbol
	}
	prices := make(map[string]decimal.Decimal, len(holdings))
	changes := make(map[string]decimal.Decimal, len(holdings))
	if len(symbols) > 0 {
		for _, q := range s.quotes.FetchQuotes(ctx, symbols) {
			prices[q.Symbol] = q.CurrentPrice
			changes[q.Symbol] = q.ChangePercent
		}
	}

	summary := &PortfolioSummary{Holdings: make([]HoldingValuation, 0, len(holdings))}
	totalValue := decimal.Zero
	totalCost := decimal.Zero
	for _, h := range holdings {
		v := valueHolding(h, prices[h.Symbol], changes[h.Symbol])
		totalValue = totalValue.Add(v.MarketValue)
		totalCost = totalCost.Add(v.CostBasis)
		summary.Holdings = append(summary.Holdings, v)
	}

	summary.TotalValue = models.Round2(totalValue)
	summary.TotalCostBasis = models.Round2(totalCost)
	summary.TotalProfitLoss = models.Round2(totalValue.Sub(totalCost))
	summary.TotalProfitLossPercent = percentOf(totalValue.Sub(totalCost), totalCost)
	summary.TotalValueDisplay = models.FormatUSD(summary.TotalValue)
	summary.TotalProfitLossDisplay = models.FormatUSD(summary.TotalProfitLoss)
	return summary, nil
}

func valueHolding(h models.Holding, price, change decimal.Decimal) HoldingValuation {
	known := price.IsPositive()
	if !known {
		price = h.AverageCostBasis
		change = decimal.Zero
	}
	cost := h.CostBasis()
	value := models.Round2(h.Shares.Mul(price))
	pl := value.Sub(cost)
	return HoldingValuation{
		Holding:           h,
		CurrentPrice:      price,
		PriceKnown:        known,
		ChangePercent:     change,
		MarketValue:       value,
		CostBasis:         cost,
		ProfitLoss:        pl,
		ProfitLossPercent: percentOf(pl, cost),
	}
}

// percentOf returns part/whole as a percentage rounded to two places, or
// zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return models.Round2(part.Div(whole).Mul(hundred))
}
