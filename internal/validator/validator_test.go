package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

func init() {
	Register()
}

type purchaseInput struct {
	Symbol string          `binding:"required,ticker"`
	Shares decimal.Decimal `binding:"required,decimal_gt0"`
	Price  decimal.Decimal `binding:"required,gt=0"`
	Date   string          `binding:"omitempty,iso_date"`
}

type filterInput struct {
	Kind   string `binding:"omitempty,transaction_kind"`
	Amount string `binding:"omitempty,decimal_gt0"`
}

func TestTicker(t *testing.T) {
	tests := []struct {
		symbol string
		valid  bool
	}{
		{"AAPL", true},
		{"brk.b", true},
		{"RDS-A", true},
		{"", false},
		{"TOOLONGTICKER", false},
		{"AA PL", false},
		{"$AAPL", false},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			in := purchaseInput{Symbol: tt.symbol, Shares: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)}
			err := binding.Validator.ValidateStruct(in)
			if tt.valid && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.symbol, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("expected %q to be invalid", tt.symbol)
			}
		})
	}
}

func TestDecimalFields(t *testing.T) {
	valid := purchaseInput{Symbol: "AAPL", Shares: decimal.RequireFromString("0.5"), Price: decimal.RequireFromString("10.25")}
	if err := binding.Validator.ValidateStruct(valid); err != nil {
		t.Errorf("expected valid input, got %v", err)
	}

	for name, in := range map[string]purchaseInput{
		"zero shares":    {Symbol: "AAPL", Shares: decimal.Zero, Price: decimal.NewFromInt(1)},
		"negative price": {Symbol: "AAPL", Shares: decimal.NewFromInt(1), Price: decimal.NewFromInt(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			if err := binding.Validator.ValidateStruct(in); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestISODate(t *testing.T) {
	for date, valid := range map[string]bool{
		"2024-01-15": true,
		"2024-1-5":   true,
		"2024-13-01": false,
		"15/01/2024": false,
		"yesterday":  false,
	} {
		in := purchaseInput{Symbol: "AAPL", Shares: decimal.NewFromInt(1), Price: decimal.NewFromInt(1), Date: date}
		err := binding.Validator.ValidateStruct(in)
		if valid != (err == nil) {
			t.Errorf("date %q: expected valid=%v, got err=%v", date, valid, err)
		}
	}
}

func TestTransactionKindAndDecimalString(t *testing.T) {
	if err := binding.Validator.ValidateStruct(filterInput{Kind: "purchase", Amount: "12.50"}); err != nil {
		t.Errorf("expected valid filter, got %v", err)
	}
	if err := binding.Validator.ValidateStruct(filterInput{Kind: "transfer"}); err == nil {
		t.Error("expected unknown kind to be rejected")
	}
	if err := binding.Validator.ValidateStruct(filterInput{Amount: "-3"}); err == nil {
		t.Error("expected non-positive decimal string to be rejected")
	}
}
