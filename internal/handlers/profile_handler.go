package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/middleware"
	"stockledger/internal/services"
)

// ProfileHandler handles profile bootstrap requests.
type ProfileHandler struct {
	ledger services.LedgerServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ledger services.LedgerServicer) *ProfileHandler {
	return &ProfileHandler{ledger: ledger}
}

// EnsureProfileRequest represents the optional payload for profile creation.
type EnsureProfileRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
}

// EnsureProfile creates the caller's profile on first sign-in.
// @Summary     Ensure profile
// @Description Create the caller's empty profile if missing and backfill a missing transaction log. Idempotent.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EnsureProfileRequest false "Profile details"
// @Success     200 {object} models.Profile "Profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [post]
func (h *ProfileHandler) EnsureProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EnsureProfileRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	email := c.GetString(middleware.EmailKey)
	if email == "" {
		email = req.Email
	}

	profile, err := h.ledger.EnsureProfile(c.Request.Context(), userID, email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
