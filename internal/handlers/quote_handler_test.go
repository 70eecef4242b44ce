package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/provider"
)

func setupQuoteRouter(handler *QuoteHandler) *gin.Engine {
	r := gin.New()
	r.GET("/quotes", handler.GetQuotes)
	r.GET("/stocks/search", handler.SearchStocks)
	r.GET("/stocks/:symbol", handler.GetStock)
	return r
}

func TestQuoteHandler_GetQuotes(t *testing.T) {
	t.Run("splits and trims symbols", func(t *testing.T) {
		var got []string
		quotes := &mockQuoteProvider{
			fetchQuotesFn: func(symbols []string) []provider.Quote {
				got = symbols
				out := make([]provider.Quote, len(symbols))
				for i, s := range symbols {
					out[i] = provider.Quote{Symbol: s, CurrentPrice: decimal.NewFromInt(1)}
				}
				return out
			},
		}
		r := setupQuoteRouter(NewQuoteHandler(quotes))

		rec := doRequest(r, "GET", "/quotes?symbols=AAPL,%20msft,,", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if strings.Join(got, "|") != "AAPL|msft" {
			t.Errorf("unexpected symbols %v", got)
		}
		if n := len(parseJSON(t, rec)["quotes"].([]interface{})); n != 2 {
			t.Errorf("expected 2 quotes, got %d", n)
		}
	})

	t.Run("returns 400 without symbols", func(t *testing.T) {
		r := setupQuoteRouter(NewQuoteHandler(&mockQuoteProvider{}))

		rec := doRequest(r, "GET", "/quotes?symbols=,", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 for too many symbols", func(t *testing.T) {
		symbols := make([]string, maxQuoteSymbols+1)
		for i := range symbols {
			symbols[i] = fmt.Sprintf("S%d", i)
		}
		r := setupQuoteRouter(NewQuoteHandler(&mockQuoteProvider{}))

		rec := doRequest(r, "GET", "/quotes?symbols="+strings.Join(symbols, ","), "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestQuoteHandler_SearchStocks(t *testing.T) {
	t.Run("returns matches", func(t *testing.T) {
		quotes := &mockQuoteProvider{
			searchSymbolsFn: func(query string) ([]provider.SymbolMatch, error) {
				if query != "apple" {
					t.Errorf("expected apple, got %q", query)
				}
				return []provider.SymbolMatch{{Symbol: "AAPL", Name: "APPLE INC"}}, nil
			},
		}
		r := setupQuoteRouter(NewQuoteHandler(quotes))

		rec := doRequest(r, "GET", "/stocks/search?q=apple", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		results := parseJSON(t, rec)["results"].([]interface{})
		if len(results) != 1 || results[0].(map[string]interface{})["symbol"] != "AAPL" {
			t.Errorf("unexpected results %v", results)
		}
	})

	t.Run("returns 502 when upstream fails", func(t *testing.T) {
		quotes := &mockQuoteProvider{
			searchSymbolsFn: func(string) ([]provider.SymbolMatch, error) {
				return nil, apperrors.ErrQuoteUnavailable
			},
		}
		r := setupQuoteRouter(NewQuoteHandler(quotes))

		rec := doRequest(r, "GET", "/stocks/search?q=apple", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "QUOTE_UNAVAILABLE")
	})
}

func TestQuoteHandler_GetStock(t *testing.T) {
	t.Run("returns stock details", func(t *testing.T) {
		quotes := &mockQuoteProvider{
			stockDetailsFn: func(symbol string) (*provider.Quote, error) {
				return &provider.Quote{Symbol: "AAPL", CompanyName: "Apple Inc", CurrentPrice: decimal.NewFromInt(150)}, nil
			},
		}
		r := setupQuoteRouter(NewQuoteHandler(quotes))

		rec := doRequest(r, "GET", "/stocks/AAPL", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		stock := parseJSON(t, rec)["stock"].(map[string]interface{})
		if stock["company_name"] != "Apple Inc" || stock["current_price"] != "150" {
			t.Errorf("unexpected stock %v", stock)
		}
	})

	t.Run("returns 502 when unavailable", func(t *testing.T) {
		quotes := &mockQuoteProvider{
			stockDetailsFn: func(string) (*provider.Quote, error) { return nil, apperrors.ErrQuoteUnavailable },
		}
		r := setupQuoteRouter(NewQuoteHandler(quotes))

		rec := doRequest(r, "GET", "/stocks/ZZZZ", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})
}
