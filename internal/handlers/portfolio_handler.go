package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockledger/internal/services"
)

// PortfolioHandler serves the marked-to-market portfolio view.
type PortfolioHandler struct {
	portfolio services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolio services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// GetPortfolio handles the portfolio summary request.
// @Summary     Get portfolio
// @Description Value every holding at its latest quote with unrealized profit and loss
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PortfolioSummary "Portfolio summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.portfolio.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": summary})
}
