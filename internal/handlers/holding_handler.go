package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/services"
)

// HoldingHandler handles holding-related requests.
type HoldingHandler struct {
	ledger services.LedgerServicer
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(ledger services.LedgerServicer) *HoldingHandler {
	return &HoldingHandler{ledger: ledger}
}

// RecordPurchaseRequest represents the request payload for buying shares.
type RecordPurchaseRequest struct {
	Symbol        string          `json:"symbol" binding:"required,ticker"`
	CompanyName   string          `json:"company_name" binding:"max=200"`
	Shares        decimal.Decimal `json:"shares" binding:"required,decimal_gt0" swaggertype:"string" example:"10"`
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required,decimal_gt0" swaggertype:"string" example:"150.25"`
	PurchaseDate  string          `json:"purchase_date" binding:"omitempty,iso_date" example:"2024-01-15"`
}

// SellSharesRequest represents the request payload for selling shares.
type SellSharesRequest struct {
	Shares    decimal.Decimal `json:"shares" binding:"required,decimal_gt0" swaggertype:"string" example:"5"`
	SalePrice decimal.Decimal `json:"sale_price" binding:"required,decimal_gt0" swaggertype:"string" example:"170"`
	SaleDate  string          `json:"sale_date" binding:"omitempty,iso_date" example:"2024-03-01"`
}

// ListHoldings handles listing the caller's holdings.
// @Summary     List holdings
// @Description Get every holding of the authenticated user
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Holding "Holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings [get]
func (h *HoldingHandler) ListHoldings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings, err := h.ledger.GetHoldings(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// RecordPurchase handles buying shares.
// @Summary     Record purchase
// @Description Buy shares of a symbol. Repeated purchases merge into one holding at weighted-average cost.
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordPurchaseRequest true "Purchase details"
// @Success     201 {object} models.Holding "Updated holding"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     409 {object} ErrorResponse "Concurrent modification"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings [post]
func (h *HoldingHandler) RecordPurchase(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.PurchaseDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holding, err := h.ledger.RecordPurchase(c.Request.Context(), userID,
		req.Symbol, req.CompanyName, req.Shares, req.PurchasePrice, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"holding": holding})
}

// SellShares handles selling shares of a holding.
// @Summary     Sell shares
// @Description Sell part or all of a holding. Selling every share removes the holding.
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Holding ID"
// @Param       request body SellSharesRequest true "Sale details"
// @Success     200 {object} map[string]string "Sale recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     409 {object} ErrorResponse "Concurrent modification"
// @Failure     422 {object} ErrorResponse "Insufficient shares"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings/{id}/sell [post]
func (h *HoldingHandler) SellShares(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parseHoldingID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SellSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.SaleDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledger.SellShares(c.Request.Context(), userID, holdingID, req.Shares, req.SalePrice, date); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale recorded"})
}

// DeleteHolding handles removing a holding without recording a sale.
// @Summary     Delete holding
// @Description Remove a holding regardless of share count. No transaction is recorded.
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holding ID"
// @Success     200 {object} map[string]string "Holding deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings/{id} [delete]
func (h *HoldingHandler) DeleteHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parseHoldingID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledger.DeleteHolding(c.Request.Context(), userID, holdingID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Holding deleted"})
}
