package handlers

import (
	"errors"
	"io"
	"net/http"

	"fintrack-backend/models"
	"fintrack-backend/services"
	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/debts
func (h *Handler) CreateDebt(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	debt, err := h.Debts.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.Balance.InvalidateCache(c.Request.Context(), userID)
	utils.SuccessResponse(c, http.StatusCreated, "Debt recorded", debt)
}

// GET /api/debts?direction=owed-to-me|owed-by-me
func (h *Handler) GetDebts(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	direction := c.DefaultQuery("direction", services.DirectionOwedToMe)

	debts, err := h.Debts.List(c.Request.Context(), userID, direction)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", debts)
}

// GET /api/debts/orphans
func (h *Handler) GetOrphanedDebts(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	orphans, err := h.Recon.FindOrphanedDebts(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", orphans)
}

// POST /api/debts/:id/paid
func (h *Handler) MarkDebtPaid(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	debtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid debt ID")
		return
	}

	// The body is optional, but a body that is present must decode.
	var req models.MarkDebtPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequest(c, err.Error())
		return
	}

	debt, err := h.Debts.MarkPaid(c.Request.Context(), userID, debtID, req.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.Balance.InvalidateCache(c.Request.Context(), userID)
	utils.SuccessResponse(c, http.StatusOK, "Debt marked as paid", debt)
}

// DELETE /api/debts/:id
func (h *Handler) DeleteDebt(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	debtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid debt ID")
		return
	}

	if err := h.Debts.Delete(c.Request.Context(), userID, debtID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.Balance.InvalidateCache(c.Request.Context(), userID)
	utils.SuccessResponse(c, http.StatusOK, "Debt deleted", gin.H{"deleted": true})
}
