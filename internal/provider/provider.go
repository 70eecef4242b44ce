// Package provider fetches market data for ticker symbols from external quote APIs.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a best-effort market snapshot for one symbol. A CurrentPrice of
// exactly zero means the price is unknown, not that the stock is worthless.
type Quote struct {
	Symbol        string          `json:"symbol"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	CompanyName   string          `json:"company_name,omitempty"`
	FetchedAt     time.Time       `json:"fetched_at"`
}

// Known reports whether the quote carries a real price.
func (q Quote) Known() bool { return !q.CurrentPrice.IsZero() }

// placeholder returns the neutral quote used when a symbol could not be fetched.
func placeholder(symbol string) Quote {
	return Quote{Symbol: symbol, CurrentPrice: decimal.Zero, ChangePercent: decimal.Zero}
}

// BatchQuoter fetches quotes for many symbols at once. Symbols without a
// usable price are absent from the result.
type BatchQuoter interface {
	BatchQuotes(ctx context.Context, symbols []string) (map[string]Quote, error)
}

// SymbolMatch is one result of a symbol search.
type SymbolMatch struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// FetchError represents a failed fetch for a specific symbol.
type FetchError struct {
	Symbol   string
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s for %s: %v", e.Endpoint, e.Symbol, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }
