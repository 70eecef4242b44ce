package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/services"
)

const maxQuoteSymbols = 50

// QuoteHandler serves market data lookups.
type QuoteHandler struct {
	quotes services.QuoteProvider
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quotes services.QuoteProvider) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// GetQuotes handles batch quote lookups.
// @Summary     Get quotes
// @Description Latest quote per symbol. A price of 0 means the quote is unavailable.
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       symbols query string true "Comma-separated symbols, e.g. AAPL,MSFT"
// @Success     200 {array}  provider.Quote "Quotes"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /quotes [get]
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	var symbols []string
	for _, s := range strings.Split(c.Query("symbols"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbols is required"))
		return
	}
	if len(symbols) > maxQuoteSymbols {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "too many symbols"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotes": h.quotes.FetchQuotes(c.Request.Context(), symbols)})
}

// SearchStocks handles symbol search.
// @Summary     Search stocks
// @Description Look up ticker symbols by name or symbol fragment
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       q query string true "Search query"
// @Success     200 {array}  provider.SymbolMatch "Matches"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Router      /stocks/search [get]
func (h *QuoteHandler) SearchStocks(c *gin.Context) {
	matches, err := h.quotes.SearchSymbols(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": matches})
}

// GetStock handles single-symbol detail lookups.
// @Summary     Get stock
// @Description Company name and latest quote for one symbol
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} provider.Quote "Stock details"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Router      /stocks/{symbol} [get]
func (h *QuoteHandler) GetStock(c *gin.Context) {
	stock, err := h.quotes.StockDetails(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}
