package services

import (
	"context"
	"errors"
	"testing"

	"fintrack-backend/models"
)

// seedExpenseWithDebts creates an expense plus its fan-out debts in the
// fakes and returns the stored expense.
func seedExpenseWithDebts(t *testing.T, expenses *fakeExpenseStore, ledger *fakeDebtLedger, participants ...string) *models.SplitExpense {
	t.Helper()
	svc := newTestExpenseService(expenses, ledger, nil)

	var splits []models.SplitInput
	for _, p := range participants {
		splits = append(splits, models.SplitInput{ParticipantID: p})
	}
	resp, err := svc.Create(context.Background(), "me", models.CreateExpenseRequest{
		Description: "Dinner",
		TotalAmount: 300,
		SplitType:   models.SplitTypeEqual,
		Splits:      splits,
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	return resp.Expense
}

func TestDeleteExpenseCascadesToDebts(t *testing.T) {
	expenses := newFakeExpenseStore()
	ledger := newFakeDebtLedger()
	recon := NewReconciliationService(expenses, ledger, 0)

	expense := seedExpenseWithDebts(t, expenses, ledger, "F1", "F2")

	// A manual debt must survive the cascade.
	manual := models.Debt{Creditor: "me", Debtor: "F9", Amount: 10, Type: models.DebtTypeManual, Status: models.DebtStatusPending}
	if err := ledger.Create(context.Background(), &manual); err != nil {
		t.Fatal(err)
	}

	result, err := recon.DeleteExpenseAndDebts(context.Background(), "me", expense.ID)
	if err != nil {
		t.Fatalf("cascade delete failed: %v", err)
	}

	if !result.ExpenseDeleted || result.DebtsDeleted != 2 || result.DebtsFailed != 0 {
		t.Fatalf("result = %+v, want expense deleted with 2 debts removed", result)
	}

	remaining, _ := ledger.ListByCreditor(context.Background(), "me")
	if len(remaining) != 1 || remaining[0].Type != models.DebtTypeManual {
		t.Errorf("remaining debts = %+v, want only the manual one", remaining)
	}

	// A fresh summary must not show the removed debts in either direction.
	agg := NewBalanceAggregator(expenses, ledger, nil, 0)
	summary := agg.ComputeSummary(context.Background(), "me")
	if summary.SplitExpenseAmount != 0 {
		t.Errorf("split expense amount = %.2f after cascade, want 0", summary.SplitExpenseAmount)
	}
	if summary.IntegrationHealth.OrphanedDebts != 0 {
		t.Errorf("orphaned debts = %d after clean cascade, want 0", summary.IntegrationHealth.OrphanedDebts)
	}
}

func TestDeleteExpenseIsolatesDebtFailures(t *testing.T) {
	expenses := newFakeExpenseStore()
	ledger := newFakeDebtLedger()
	recon := NewReconciliationService(expenses, ledger, 0)

	expense := seedExpenseWithDebts(t, expenses, ledger, "F1", "F2", "F3")

	debts, _ := ledger.ListByCreditor(context.Background(), "me")
	ledger.failDeleteFor[debts[1].ID] = true

	result, err := recon.DeleteExpenseAndDebts(context.Background(), "me", expense.ID)
	if err != nil {
		t.Fatalf("cascade delete failed: %v", err)
	}

	if result.DebtsDeleted != 2 || result.DebtsFailed != 1 {
		t.Errorf("result = %+v, want 2 deleted, 1 failed", result)
	}
	if !result.ExpenseDeleted {
		t.Error("expense should still be deleted after a partial debt failure")
	}
}

func TestDeleteExpenseReportsConsistencyGap(t *testing.T) {
	expenses := newFakeExpenseStore()
	ledger := newFakeDebtLedger()
	recon := NewReconciliationService(expenses, ledger, 0)

	expense := seedExpenseWithDebts(t, expenses, ledger, "F1", "F2")
	expenses.failDelete = true

	_, err := recon.DeleteExpenseAndDebts(context.Background(), "me", expense.ID)

	var gap *ConsistencyGap
	if !errors.As(err, &gap) {
		t.Fatalf("got %v, want ConsistencyGap", err)
	}
	if gap.ExpenseDeleted {
		t.Error("gap claims expense deleted")
	}
	if gap.DebtsDeleted != 2 {
		t.Errorf("gap debts deleted = %d, want 2", gap.DebtsDeleted)
	}

	// No rollback: the debts stay gone even though the expense remains.
	remaining, _ := ledger.ListByCreditor(context.Background(), "me")
	if len(remaining) != 0 {
		t.Errorf("expected debts to stay deleted, found %d", len(remaining))
	}
}

func TestDeleteExpenseChecksOwnership(t *testing.T) {
	expenses := newFakeExpenseStore()
	ledger := newFakeDebtLedger()
	recon := NewReconciliationService(expenses, ledger, 0)

	expense := seedExpenseWithDebts(t, expenses, ledger, "F1")

	if _, err := recon.DeleteExpenseAndDebts(context.Background(), "intruder", expense.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
	if len(ledger.debts) != 1 {
		t.Error("debts touched despite ownership failure")
	}
}

func TestFindOrphanedDebts(t *testing.T) {
	expenses := newFakeExpenseStore()
	ledger := newFakeDebtLedger()
	recon := NewReconciliationService(expenses, ledger, 0)

	// Healthy pair: expense with its debt.
	seedExpenseWithDebts(t, expenses, ledger, "F1")

	// Orphan: split debt whose expense is gone.
	orphan := models.Debt{
		Creditor: "me", Debtor: "F2", Amount: 25,
		Type: models.DebtTypeSplit, Status: models.DebtStatusPending,
		Metadata: models.Metadata{models.MetaSplitExpenseID: "11111111-2222-3333-4444-555555555555"},
	}
	if err := ledger.Create(context.Background(), &orphan); err != nil {
		t.Fatal(err)
	}

	// Manual debt: never an orphan.
	manual := models.Debt{Creditor: "me", Debtor: "F3", Amount: 5, Type: models.DebtTypeManual, Status: models.DebtStatusPending}
	if err := ledger.Create(context.Background(), &manual); err != nil {
		t.Fatal(err)
	}

	orphans, err := recon.FindOrphanedDebts(context.Background(), "me")
	if err != nil {
		t.Fatal(err)
	}
	if len(orphans) != 1 {
		t.Fatalf("got %d orphans, want 1", len(orphans))
	}
	if orphans[0].Debtor != "F2" {
		t.Errorf("orphan debtor = %q, want F2", orphans[0].Debtor)
	}
}
