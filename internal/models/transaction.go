package models

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of a ledger transaction.
type TransactionKind string

// Only purchase and sale are produced by the ledger today; the other kinds
// are reserved so stored logs can carry them.
const (
	TransactionPurchase   TransactionKind = "purchase"
	TransactionSale       TransactionKind = "sale"
	TransactionDeposit    TransactionKind = "deposit"
	TransactionWithdrawal TransactionKind = "withdrawal"
	TransactionDividend   TransactionKind = "dividend"
)

// Valid reports whether k is a known transaction kind.
func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionPurchase, TransactionSale, TransactionDeposit, TransactionWithdrawal, TransactionDividend:
		return true
	}
	return false
}

// Transaction is one immutable entry of a user's ledger. Seq is the
// insertion position within the user's log.
type Transaction struct {
	Base
	ProfileID     string          `gorm:"type:varchar(128);not null;uniqueIndex:uq_transactions_profile_seq" json:"-"`
	Seq           int64           `gorm:"not null;uniqueIndex:uq_transactions_profile_seq" json:"-"`
	Kind          TransactionKind `gorm:"type:varchar(16);not null" json:"kind"`
	Date          Date            `gorm:"type:date;not null" json:"date"`
	Symbol        string          `gorm:"type:varchar(16);not null" json:"symbol"`
	Shares        decimal.Decimal `gorm:"type:numeric(24,8);not null" json:"shares"`
	PricePerShare decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"price_per_share"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"total_amount"`
	Description   string          `gorm:"not null" json:"description"`
}

// NewTrade builds a purchase or sale entry for a lot. TotalAmount is
// shares times price rounded to cents.
func NewTrade(kind TransactionKind, symbol string, shares, price decimal.Decimal, date Date) Transaction {
	return Transaction{
		Kind:          kind,
		Date:          date,
		Symbol:        symbol,
		Shares:        shares,
		PricePerShare: price,
		TotalAmount:   Round2(shares.Mul(price)),
		Description:   describeTrade(kind, symbol, shares, price),
	}
}

func describeTrade(kind TransactionKind, symbol string, shares, price decimal.Decimal) string {
	verb := "Bought"
	if kind == TransactionSale {
		verb = "Sold"
	}
	return fmt.Sprintf("%s %s shares of %s at %s", verb, shares.String(), symbol, FormatUSD(price))
}

// FormatUSD renders an amount as US dollars, e.g. "$1,234.50".
func FormatUSD(amount decimal.Decimal) string {
	cur := money.New(0, money.USD).Currency()
	cents := Round2(amount).Shift(int32(cur.Fraction)).IntPart()
	return cur.Formatter().Format(cents)
}
