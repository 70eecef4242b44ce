package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stockledger/internal/middleware"
	"stockledger/internal/models"
	"stockledger/internal/provider"
	"stockledger/internal/services"
	"stockledger/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

const testHoldingID = "01890a5d-ac96-774b-bcce-b302099a8057"

// --- mock ledger service ---

type mockLedgerService struct {
	ensureProfileFn   func(userID, email string) (*models.Profile, error)
	recordPurchaseFn  func(userID, symbol, companyName string, shares, price decimal.Decimal, date models.Date) (*models.Holding, error)
	sellSharesFn      func(userID, holdingID string, shares, price decimal.Decimal, date models.Date) error
	deleteHoldingFn   func(userID, holdingID string) error
	getHoldingsFn     func(userID string) ([]models.Holding, error)
	getTransactionsFn func(userID string) ([]models.Transaction, error)
}

func (m *mockLedgerService) EnsureProfile(_ context.Context, userID, email string) (*models.Profile, error) {
	if m.ensureProfileFn != nil {
		return m.ensureProfileFn(userID, email)
	}
	return &models.Profile{UID: userID, Email: email}, nil
}

func (m *mockLedgerService) RecordPurchase(_ context.Context, userID, symbol, companyName string, shares, price decimal.Decimal, date models.Date) (*models.Holding, error) {
	if m.recordPurchaseFn != nil {
		return m.recordPurchaseFn(userID, symbol, companyName, shares, price, date)
	}
	return &models.Holding{Symbol: symbol, Shares: shares, AverageCostBasis: price}, nil
}

func (m *mockLedgerService) SellShares(_ context.Context, userID, holdingID string, shares, price decimal.Decimal, date models.Date) error {
	if m.sellSharesFn != nil {
		return m.sellSharesFn(userID, holdingID, shares, price, date)
	}
	return nil
}

func (m *mockLedgerService) DeleteHolding(_ context.Context, userID, holdingID string) error {
	if m.deleteHoldingFn != nil {
		return m.deleteHoldingFn(userID, holdingID)
	}
	return nil
}

func (m *mockLedgerService) GetHoldings(_ context.Context, userID string) ([]models.Holding, error) {
	if m.getHoldingsFn != nil {
		return m.getHoldingsFn(userID)
	}
	return []models.Holding{}, nil
}

func (m *mockLedgerService) GetTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(userID)
	}
	return []models.Transaction{}, nil
}

var _ services.LedgerServicer = (*mockLedgerService)(nil)

// --- mock portfolio service ---

type mockPortfolioService struct {
	getSummaryFn func(userID string) (*services.PortfolioSummary, error)
}

func (m *mockPortfolioService) GetSummary(_ context.Context, userID string) (*services.PortfolioSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID)
	}
	return &services.PortfolioSummary{Holdings: []services.HoldingValuation{}}, nil
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

// --- mock quote provider ---

type mockQuoteProvider struct {
	fetchQuotesFn   func(symbols []string) []provider.Quote
	searchSymbolsFn func(query string) ([]provider.SymbolMatch, error)
	stockDetailsFn  func(symbol string) (*provider.Quote, error)
}

func (m *mockQuoteProvider) FetchQuotes(_ context.Context, symbols []string) []provider.Quote {
	if m.fetchQuotesFn != nil {
		return m.fetchQuotesFn(symbols)
	}
	return []provider.Quote{}
}

func (m *mockQuoteProvider) SearchSymbols(_ context.Context, query string) ([]provider.SymbolMatch, error) {
	if m.searchSymbolsFn != nil {
		return m.searchSymbolsFn(query)
	}
	return []provider.SymbolMatch{}, nil
}

func (m *mockQuoteProvider) StockDetails(_ context.Context, symbol string) (*provider.Quote, error) {
	if m.stockDetailsFn != nil {
		return m.stockDetailsFn(symbol)
	}
	return &provider.Quote{Symbol: symbol}, nil
}

var _ services.QuoteProvider = (*mockQuoteProvider)(nil)

// --- helpers ---

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func injectEmail(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.EmailKey, email)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
