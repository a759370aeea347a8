package handlers

import (
	"net/http"

	"fintrack-backend/models"
	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/expenses
func (h *Handler) CreateExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	resp, err := h.Expenses.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.Balance.InvalidateCache(c.Request.Context(), userID)
	utils.SuccessResponse(c, http.StatusCreated, "Expense added", resp)
}

// GET /api/expenses
func (h *Handler) GetExpenses(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	expenses, err := h.Expenses.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", expenses)
}

// GET /api/expenses/:id
func (h *Handler) GetExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.Expenses.Get(c.Request.Context(), userID, expenseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", expense)
}

// DELETE /api/expenses/:id
func (h *Handler) DeleteExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	result, err := h.Expenses.Delete(c.Request.Context(), userID, expenseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.Balance.InvalidateCache(c.Request.Context(), userID)
	utils.SuccessResponse(c, http.StatusOK, "Expense deleted", result)
}
