package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/models"
	"stockledger/internal/pagination"
	"stockledger/internal/services"
)

// TransactionHandler handles transaction log requests.
type TransactionHandler struct {
	ledger services.LedgerServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger services.LedgerServicer) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// TransactionFilter holds the optional query filters for the transaction log.
type TransactionFilter struct {
	Symbol string `form:"symbol" binding:"omitempty,ticker"`
	Kind   string `form:"kind" binding:"omitempty,transaction_kind"`
}

// ListTransactions handles listing the caller's transaction log.
// @Summary     List transactions
// @Description Get the transaction log in insertion order, optionally filtered by symbol or kind
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       symbol    query string false "Ticker symbol"
// @Param       kind      query string false "Transaction kind (purchase, sale)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var filter TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txs, err := h.ledger.GetTransactions(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Window(filterTransactions(txs, filter), page))
}

func filterTransactions(txs []models.Transaction, f TransactionFilter) []models.Transaction {
	if f.Symbol == "" && f.Kind == "" {
		return txs
	}
	symbol := models.NormalizeSymbol(f.Symbol)
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if symbol != "" && tx.Symbol != symbol {
			continue
		}
		if f.Kind != "" && string(tx.Kind) != f.Kind {
			continue
		}
		out = append(out, tx)
	}
	return out
}
