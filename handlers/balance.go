package handlers

import (
	"net/http"

	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/balances/summary
func (h *Handler) GetBalanceSummary(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	// The aggregator cannot fail: a fetch that errors degrades its
	// category to empty, visible only through the health block.
	summary := h.Balance.ComputeSummary(c.Request.Context(), userID)
	utils.SuccessResponse(c, http.StatusOK, "", summary)
}
