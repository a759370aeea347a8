package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"fintrack-backend/metrics"
	"fintrack-backend/models"
	"fintrack-backend/store"
	"fintrack-backend/utils"

	"github.com/google/uuid"
)

// SplitExpenseService validates and persists split expenses, then hands
// them to the allocation engine. The expense write and the debt writes
// are independent store calls: there is no transaction spanning them.
type SplitExpenseService struct {
	expenses store.SplitExpenseStore
	engine   *DebtAllocationEngine
	recon    *ReconciliationService
}

func NewSplitExpenseService(expenses store.SplitExpenseStore, engine *DebtAllocationEngine, recon *ReconciliationService) *SplitExpenseService {
	return &SplitExpenseService{expenses: expenses, engine: engine, recon: recon}
}

// Create validates the request, persists the expense, and fans it out
// into per-participant debts. Partial fan-out failure still reports the
// overall operation as successful, with the failures listed.
func (s *SplitExpenseService) Create(ctx context.Context, userID string, req models.CreateExpenseRequest) (*models.CreateExpenseResponse, error) {
	if err := validateExpenseRequest(req); err != nil {
		return nil, err
	}

	paidBy := req.PaidBy
	if paidBy == "" {
		paidBy = models.PaidBySelf
	}

	expense := models.SplitExpense{
		CreatedBy:   userID,
		Description: strings.TrimSpace(req.Description),
		TotalAmount: req.TotalAmount,
		PaidBy:      paidBy,
		SplitType:   req.SplitType,
		Status:      models.ExpenseStatusActive,
		Splits:      buildSplits(req, paidBy),
	}

	if err := s.expenses.Create(ctx, &expense); err != nil {
		return nil, fmt.Errorf("failed to persist split expense: %w", err)
	}
	metrics.ExpensesCreated.Inc()

	allocation := s.engine.Allocate(ctx, userID, &expense)

	return &models.CreateExpenseResponse{
		Expense: &expense,
		Summary: models.CreateExpenseSummary{
			DebtsCreated:      len(allocation.Successful),
			DebtsFailed:       len(allocation.Failed),
			NotificationsSent: allocation.NotificationsSent,
			Failures:          allocation.Failed,
		},
	}, nil
}

func (s *SplitExpenseService) Get(ctx context.Context, userID string, id uuid.UUID) (*models.SplitExpense, error) {
	expense, err := s.expenses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return expense, nil
}

func (s *SplitExpenseService) List(ctx context.Context, userID string) ([]models.SplitExpense, error) {
	return s.expenses.ListByOwner(ctx, userID)
}

// Delete cascades through the reconciliation service; a split expense is
// never deleted in isolation from its derived debts.
func (s *SplitExpenseService) Delete(ctx context.Context, userID string, id uuid.UUID) (*models.DeleteExpenseResponse, error) {
	return s.recon.DeleteExpenseAndDebts(ctx, userID, id)
}

// validateExpenseRequest checks every rule and reports all violations
// together. The sum check applies to custom splits only: equal shares
// are computed server-side from the total.
func validateExpenseRequest(req models.CreateExpenseRequest) error {
	var violations []string

	if strings.TrimSpace(req.Description) == "" {
		violations = append(violations, "description is required")
	}
	if req.TotalAmount <= 0 {
		violations = append(violations, "total amount must be a positive number")
	}
	if req.SplitType != models.SplitTypeEqual && req.SplitType != models.SplitTypeCustom {
		violations = append(violations, "split type must be \"equal\" or \"custom\"")
	}
	if len(req.Splits) == 0 {
		violations = append(violations, "at least one split is required")
	}

	var sum float64
	for i, split := range req.Splits {
		if strings.TrimSpace(split.ParticipantID) == "" {
			violations = append(violations, fmt.Sprintf("split %d: participant identifier is required", i+1))
		}
		if req.SplitType == models.SplitTypeCustom {
			if split.Amount <= 0 {
				violations = append(violations, fmt.Sprintf("split %d: amount must be positive", i+1))
			}
			sum += split.Amount
		}
	}

	if req.SplitType == models.SplitTypeCustom && len(req.Splits) > 0 && req.TotalAmount > 0 {
		if math.Abs(sum-req.TotalAmount) > AmountTolerance {
			violations = append(violations, fmt.Sprintf("split amounts (%.2f) don't add up to total (%.2f)", sum, req.TotalAmount))
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// buildSplits produces the stored share list. For equal splits every
// participant owes total/(participants+1), the "+1" being the payer's
// own share, which is stored too so the shares sum to the total. The
// payer's entry absorbs any rounding remainder.
func buildSplits(req models.CreateExpenseRequest, paidBy string) []models.ExpenseSplit {
	if req.SplitType == models.SplitTypeCustom {
		splits := make([]models.ExpenseSplit, 0, len(req.Splits))
		for _, in := range req.Splits {
			splits = append(splits, models.ExpenseSplit{
				ParticipantID: in.ParticipantID,
				Amount:        utils.RoundToTwo(in.Amount),
			})
		}
		return splits
	}

	n := len(req.Splits)
	share := utils.RoundToTwo(req.TotalAmount / float64(n+1))

	splits := make([]models.ExpenseSplit, 0, n+1)
	for _, in := range req.Splits {
		splits = append(splits, models.ExpenseSplit{
			ParticipantID: in.ParticipantID,
			Amount:        share,
		})
	}
	splits = append(splits, models.ExpenseSplit{
		ParticipantID: paidBy,
		Amount:        utils.RoundToTwo(req.TotalAmount - share*float64(n)),
	})
	return splits
}
