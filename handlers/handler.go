package handlers

import (
	"errors"
	"net/http"

	"fintrack-backend/services"
	"fintrack-backend/store"
	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
)

// Handler bundles the services the HTTP layer delegates to.
type Handler struct {
	Expenses     *services.SplitExpenseService
	Debts        *services.DebtService
	Recon        *services.ReconciliationService
	Balance      *services.BalanceAggregator
	Participants store.ParticipantStore
}

func New(expenses *services.SplitExpenseService, debts *services.DebtService, recon *services.ReconciliationService, balance *services.BalanceAggregator, participants store.ParticipantStore) *Handler {
	return &Handler{
		Expenses:     expenses,
		Debts:        debts,
		Recon:        recon,
		Balance:      balance,
		Participants: participants,
	}
}

// respondServiceError maps the service error taxonomy onto HTTP.
func respondServiceError(c *gin.Context, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		utils.ValidationFailed(c, validation.Violations)
		return
	}

	var gap *services.ConsistencyGap
	if errors.As(err, &gap) {
		// The partial counts travel with the error so the client knows
		// exactly how far the cascade got.
		c.JSON(http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "cascade delete left inconsistent state",
			Data: gin.H{
				"expense_deleted": gap.ExpenseDeleted,
				"debts_deleted":   gap.DebtsDeleted,
				"debts_failed":    gap.DebtsFailed,
			},
		})
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.NotFound(c, "Record not found")
	case errors.Is(err, services.ErrForbidden):
		utils.Unauthorized(c, "You do not have access to this record")
	case errors.Is(err, services.ErrDebtAlreadyPaid):
		utils.Conflict(c, "Debt is already paid")
	case errors.Is(err, services.ErrInvalidDirection):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalError(c, "Something went wrong")
	}
}
