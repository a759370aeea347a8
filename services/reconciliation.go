package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack-backend/metrics"
	"fintrack-backend/models"
	"fintrack-backend/store"

	"github.com/google/uuid"
)

// ReconciliationService cascades the deletion of a split expense to its
// derived debts and detects orphans. The debt deletes and the expense
// delete are independent calls against a non-transactional store: a
// failure partway through leaves an explicit, reported inconsistency
// with no automatic rollback.
type ReconciliationService struct {
	expenses store.SplitExpenseStore
	ledger   store.DebtLedger
	throttle time.Duration
}

func NewReconciliationService(expenses store.SplitExpenseStore, ledger store.DebtLedger, throttle time.Duration) *ReconciliationService {
	return &ReconciliationService{expenses: expenses, ledger: ledger, throttle: throttle}
}

// DeleteExpenseAndDebts removes every debt linked to the expense via
// metadata, then the expense itself. The related debts are found by
// fetching the full owed-to-me collection and filtering client-side:
// the store offers no indexed query on the metadata link.
func (s *ReconciliationService) DeleteExpenseAndDebts(ctx context.Context, userID string, expenseID uuid.UUID) (*models.DeleteExpenseResponse, error) {
	expense, err := s.expenses.Get(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CreatedBy != userID {
		return nil, ErrForbidden
	}

	debts, err := s.ledger.ListByCreditor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find related debts: %w", err)
	}

	related := relatedDebts(debts, expenseID)
	metrics.CascadeDeletes.Inc()

	result := &models.DeleteExpenseResponse{}
	for i, debt := range related {
		if i > 0 && s.throttle > 0 {
			time.Sleep(s.throttle)
		}
		if err := s.ledger.Delete(ctx, debt.ID); err != nil {
			slog.Warn("debt deletion failed during cascade",
				"expense_id", expenseID, "debt_id", debt.ID, "error", err)
			result.DebtsFailed++
			continue
		}
		result.DebtsDeleted++
	}

	if err := s.expenses.Delete(ctx, expenseID); err != nil {
		metrics.ConsistencyGaps.Inc()
		return nil, &ConsistencyGap{
			ExpenseDeleted: false,
			DebtsDeleted:   result.DebtsDeleted,
			DebtsFailed:    result.DebtsFailed,
			Cause:          err,
		}
	}
	result.ExpenseDeleted = true

	return result, nil
}

// FindOrphanedDebts returns split-type debts whose linked expense no
// longer exists. Orphans are a read-time computation: nothing in the
// store prevents them.
func (s *ReconciliationService) FindOrphanedDebts(ctx context.Context, userID string) ([]models.Debt, error) {
	debts, err := s.ledger.ListByCreditor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch debts: %w", err)
	}
	expenses, err := s.expenses.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch split expenses: %w", err)
	}

	known := make(map[string]bool, len(expenses))
	for _, e := range expenses {
		known[e.ID.String()] = true
	}

	var orphans []models.Debt
	for _, d := range debts {
		if d.Type != models.DebtTypeSplit {
			continue
		}
		if ref := d.SplitExpenseID(); ref != "" && !known[ref] {
			orphans = append(orphans, d)
		}
	}
	return orphans, nil
}

func relatedDebts(debts []models.Debt, expenseID uuid.UUID) []models.Debt {
	id := expenseID.String()
	var related []models.Debt
	for _, d := range debts {
		if d.SplitExpenseID() == id {
			related = append(related, d)
		}
	}
	return related
}
