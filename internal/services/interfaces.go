package services

import (
	"context"

	"github.com/shopspring/decimal"

	"stockledger/internal/models"
	"stockledger/internal/provider"
)

// LedgerServicer defines the contract of the portfolio ledger: holdings at
// weighted-average cost plus an append-only transaction log, per user.
type LedgerServicer interface {
	EnsureProfile(ctx context.Context, userID, email string) (*models.Profile, error)
	RecordPurchase(ctx context.Context, userID, symbol, companyName string, shares, price decimal.Decimal, date models.Date) (*models.Holding, error)
	SellShares(ctx context.Context, userID, holdingID string, sharesToSell, salePrice decimal.Decimal, date models.Date) error
	DeleteHolding(ctx context.Context, userID, holdingID string) error
	GetHoldings(ctx context.Context, userID string) ([]models.Holding, error)
	GetTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
}

// QuoteProvider is the market data source used by the presentation layer.
type QuoteProvider interface {
	FetchQuotes(ctx context.Context, symbols []string) []provider.Quote
	SearchSymbols(ctx context.Context, query string) ([]provider.SymbolMatch, error)
	StockDetails(ctx context.Context, symbol string) (*provider.Quote, error)
}

// HoldingValuation is one holding marked to the latest quote.
type HoldingValuation struct {
	models.Holding
	CurrentPrice      decimal.Decimal `json:"current_price"`
	PriceKnown        bool            `json:"price_known"`
	ChangePercent     decimal.Decimal `json:"change_percent"`
	MarketValue       decimal.Decimal `json:"market_value"`
	CostBasis         decimal.Decimal `json:"cost_basis"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent"`
}

// PortfolioSummary aggregates unrealized profit and loss across holdings.
type PortfolioSummary struct {
	Holdings               []HoldingValuation `json:"holdings"`
	TotalValue             decimal.Decimal    `json:"total_value"`
	TotalCostBasis         decimal.Decimal    `json:"total_cost_basis"`
	TotalProfitLoss        decimal.Decimal    `json:"total_profit_loss"`
	TotalProfitLossPercent decimal.Decimal    `json:"total_profit_loss_percent"`
	TotalValueDisplay      string             `json:"total_value_display"`
	TotalProfitLossDisplay string             `json:"total_profit_loss_display"`
}

// PortfolioServicer defines the contract for portfolio valuation.
type PortfolioServicer interface {
	GetSummary(ctx context.Context, userID string) (*PortfolioSummary, error)
}
