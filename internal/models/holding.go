package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Holding is a user's aggregated position in one ticker, tracked at
// weighted-average cost. A holding always has Shares > 0.
type Holding struct {
	Base
	ProfileID         string          `gorm:"type:varchar(128);not null;uniqueIndex:uq_holdings_profile_symbol" json:"-"`
	Symbol            string          `gorm:"type:varchar(16);not null;uniqueIndex:uq_holdings_profile_symbol" json:"symbol"`
	CompanyName       string          `gorm:"not null;default:''" json:"company_name"`
	Shares            decimal.Decimal `gorm:"type:numeric(24,8);not null" json:"shares"`
	AverageCostBasis  decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"average_cost_basis"`
	FirstPurchaseDate Date            `gorm:"type:date" json:"first_purchase_date"`
}

// Storage scales of the numeric columns. Inputs finer than these would be
// rounded by the database on write.
const (
	ShareScale = 8
	PriceScale = 4
)

// FitsScale reports whether d has no significant digits beyond places
// decimal places. Trailing zeros are ignored.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// NormalizeSymbol trims and uppercases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Round2 rounds d to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// AbsorbLot folds a purchase lot into the holding: shares are added and the
// average cost becomes the share-weighted mean of the old basis and the lot
// price, rounded to cents. FirstPurchaseDate is only set when absent.
func (h *Holding) AbsorbLot(shares, price decimal.Decimal, date Date) {
	total := h.Shares.Add(shares)
	cost := h.AverageCostBasis.Mul(h.Shares).Add(price.Mul(shares))
	h.AverageCostBasis = Round2(cost.Div(total))
	h.Shares = total
	if h.FirstPurchaseDate.IsZero() {
		h.FirstPurchaseDate = date
	}
}

// CostBasis returns shares times average cost, rounded to cents.
func (h Holding) CostBasis() decimal.Decimal {
	return Round2(h.Shares.Mul(h.AverageCostBasis))
}
