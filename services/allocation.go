package services

import (
	"context"
	"log/slog"
	"time"

	"fintrack-backend/metrics"
	"fintrack-backend/models"
	"fintrack-backend/store"
)

// AllocationResult is the outcome of fanning one split expense out into
// per-participant debts. Partial allocation is an accepted outcome: the
// failures are surfaced for the caller to act on, never retried here.
type AllocationResult struct {
	Successful        []models.Debt
	Failed            []models.FailureRecord
	NotificationsSent int
}

// DebtAllocationEngine turns a persisted split expense into one debt
// record per participant. Participants are processed sequentially with a
// fixed delay between ledger writes, a throttle on the downstream store
// rather than a correctness mechanism.
type DebtAllocationEngine struct {
	ledger   store.DebtLedger
	notifier NotificationDispatcher
	throttle time.Duration
}

func NewDebtAllocationEngine(ledger store.DebtLedger, notifier NotificationDispatcher, throttle time.Duration) *DebtAllocationEngine {
	return &DebtAllocationEngine{ledger: ledger, notifier: notifier, throttle: throttle}
}

// Allocate creates one split-type debt per non-payer split entry. The
// current user paid, so they are the creditor on every debt. A failure
// on one participant is recorded and does not stop the rest.
func (e *DebtAllocationEngine) Allocate(ctx context.Context, userID string, expense *models.SplitExpense) AllocationResult {
	var result AllocationResult

	participants := debtorSplits(expense)
	for i, split := range participants {
		if i > 0 && e.throttle > 0 {
			time.Sleep(e.throttle)
		}

		debt := models.Debt{
			Creditor:    userID,
			Debtor:      split.ParticipantID,
			Amount:      split.Amount,
			Description: expense.Description,
			Type:        models.DebtTypeSplit,
			Status:      models.DebtStatusPending,
			Metadata: models.Metadata{
				models.MetaSplitExpenseID:   expense.ID.String(),
				models.MetaOriginalAmount:   expense.TotalAmount,
				models.MetaSplitType:        expense.SplitType,
				models.MetaParticipantCount: len(participants),
				models.MetaPaidBy:           expense.PaidBy,
			},
		}

		if err := e.ledger.Create(ctx, &debt); err != nil {
			slog.Warn("debt creation failed during fan-out",
				"expense_id", expense.ID, "participant", split.ParticipantID, "error", err)
			metrics.DebtsFailed.Inc()
			result.Failed = append(result.Failed, models.FailureRecord{
				ParticipantID: split.ParticipantID,
				Reason:        err.Error(),
				OccurredAt:    time.Now(),
			})
			continue
		}

		metrics.DebtsCreated.Inc()
		result.Successful = append(result.Successful, debt)
	}

	// Best effort: notification failures are logged inside the
	// dispatcher and never affect the allocation result.
	if e.notifier != nil && len(result.Successful) > 0 {
		dispatch := e.notifier.DispatchDebtCreated(ctx, expense, result.Successful)
		result.NotificationsSent = dispatch.Sent
	}

	return result
}

// debtorSplits filters out the payer's own share: the payer owes nobody.
func debtorSplits(expense *models.SplitExpense) []models.ExpenseSplit {
	var out []models.ExpenseSplit
	for _, s := range expense.Splits {
		if s.ParticipantID == models.PaidBySelf || s.ParticipantID == expense.PaidBy {
			continue
		}
		out = append(out, s)
	}
	return out
}
