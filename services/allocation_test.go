package services

import (
	"context"
	"testing"

	"fintrack-backend/models"

	"github.com/google/uuid"
)

func splitExpenseFixture(paidBy string, splits ...models.ExpenseSplit) *models.SplitExpense {
	return &models.SplitExpense{
		ID:          uuid.New(),
		CreatedBy:   "me",
		Description: "Weekend trip",
		TotalAmount: 90,
		PaidBy:      paidBy,
		SplitType:   models.SplitTypeEqual,
		Status:      models.ExpenseStatusActive,
		Splits:      splits,
	}
}

func TestAllocateBuildsSplitDebts(t *testing.T) {
	ledger := newFakeDebtLedger()
	engine := NewDebtAllocationEngine(ledger, nil, 0)

	expense := splitExpenseFixture(models.PaidBySelf,
		models.ExpenseSplit{ParticipantID: "F1", Amount: 30},
		models.ExpenseSplit{ParticipantID: "F2", Amount: 30},
		models.ExpenseSplit{ParticipantID: models.PaidBySelf, Amount: 30},
	)

	result := engine.Allocate(context.Background(), "me", expense)

	if len(result.Successful) != 2 || len(result.Failed) != 0 {
		t.Fatalf("got %d successful, %d failed, want 2/0", len(result.Successful), len(result.Failed))
	}

	for _, d := range result.Successful {
		if d.Creditor != "me" {
			t.Errorf("creditor = %q, want %q", d.Creditor, "me")
		}
		if d.Status != models.DebtStatusPending {
			t.Errorf("status = %q, want pending", d.Status)
		}
		if d.Metadata[models.MetaSplitType] != models.SplitTypeEqual {
			t.Errorf("metadata splitType = %v", d.Metadata[models.MetaSplitType])
		}
		if d.Metadata[models.MetaParticipantCount] != 2 {
			t.Errorf("metadata participantCount = %v, want 2", d.Metadata[models.MetaParticipantCount])
		}
		if d.Metadata[models.MetaPaidBy] != models.PaidBySelf {
			t.Errorf("metadata paidBy = %v", d.Metadata[models.MetaPaidBy])
		}
	}
}

func TestAllocateSkipsPayerShare(t *testing.T) {
	ledger := newFakeDebtLedger()
	engine := NewDebtAllocationEngine(ledger, nil, 0)

	// Custom split naming the payer explicitly: no debt for them.
	expense := splitExpenseFixture("F1",
		models.ExpenseSplit{ParticipantID: "F1", Amount: 45},
		models.ExpenseSplit{ParticipantID: "F2", Amount: 45},
	)

	result := engine.Allocate(context.Background(), "me", expense)

	if len(result.Successful) != 1 {
		t.Fatalf("got %d debts, want 1", len(result.Successful))
	}
	if result.Successful[0].Debtor != "F2" {
		t.Errorf("debtor = %q, want F2", result.Successful[0].Debtor)
	}
}

func TestAllocateIsolatesFailures(t *testing.T) {
	ledger := newFakeDebtLedger()
	ledger.failCreateFor["F1"] = true
	engine := NewDebtAllocationEngine(ledger, nil, 0)

	// The first participant failing must not stop the rest.
	expense := splitExpenseFixture(models.PaidBySelf,
		models.ExpenseSplit{ParticipantID: "F1", Amount: 30},
		models.ExpenseSplit{ParticipantID: "F2", Amount: 30},
		models.ExpenseSplit{ParticipantID: "F3", Amount: 30},
	)

	result := engine.Allocate(context.Background(), "me", expense)

	if len(result.Successful) != 2 {
		t.Errorf("successful = %d, want 2", len(result.Successful))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed = %d, want 1", len(result.Failed))
	}
	if result.Failed[0].ParticipantID != "F1" {
		t.Errorf("failed participant = %q, want F1", result.Failed[0].ParticipantID)
	}
	if result.Failed[0].Reason == "" {
		t.Error("failure record has no reason")
	}
}

func TestAllocateNotifiesSuccessfulDebtsOnly(t *testing.T) {
	ledger := newFakeDebtLedger()
	ledger.failCreateFor["F2"] = true
	notifier := &fakeNotifier{}
	engine := NewDebtAllocationEngine(ledger, notifier, 0)

	expense := splitExpenseFixture(models.PaidBySelf,
		models.ExpenseSplit{ParticipantID: "F1", Amount: 30},
		models.ExpenseSplit{ParticipantID: "F2", Amount: 30},
	)

	result := engine.Allocate(context.Background(), "me", expense)

	if len(notifier.dispatched) != 1 || notifier.dispatched[0].Debtor != "F1" {
		t.Errorf("dispatched = %+v, want only F1's debt", notifier.dispatched)
	}
	if result.NotificationsSent != 1 {
		t.Errorf("notifications sent = %d, want 1", result.NotificationsSent)
	}
}
