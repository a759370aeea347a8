package services

import (
	"context"
	"errors"
	"fmt"

	"fintrack-backend/models"
	"fintrack-backend/store"

	"github.com/google/uuid"
)

// In-memory stores with failure injection for exercising the
// partial-failure paths without a database.

type fakeExpenseStore struct {
	expenses   map[uuid.UUID]*models.SplitExpense
	failCreate bool
	failDelete bool
	failList   bool
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[uuid.UUID]*models.SplitExpense)}
}

func (f *fakeExpenseStore) Create(_ context.Context, expense *models.SplitExpense) error {
	if f.failCreate {
		return errors.New("store unavailable")
	}
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	for i := range expense.Splits {
		if expense.Splits[i].ID == uuid.Nil {
			expense.Splits[i].ID = uuid.New()
		}
		expense.Splits[i].ExpenseID = expense.ID
	}
	cp := *expense
	f.expenses[expense.ID] = &cp
	return nil
}

func (f *fakeExpenseStore) Get(_ context.Context, id uuid.UUID) (*models.SplitExpense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeExpenseStore) ListByOwner(_ context.Context, ownerID string) ([]models.SplitExpense, error) {
	if f.failList {
		return nil, errors.New("store unavailable")
	}
	var out []models.SplitExpense
	for _, e := range f.expenses {
		if e.CreatedBy == ownerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExpenseStore) Delete(_ context.Context, id uuid.UUID) error {
	if f.failDelete {
		return errors.New("store unavailable")
	}
	if _, ok := f.expenses[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.expenses, id)
	return nil
}

type fakeDebtLedger struct {
	debts         map[uuid.UUID]*models.Debt
	order         []uuid.UUID
	failCreateFor map[string]bool // debtor -> fail
	failDeleteFor map[uuid.UUID]bool
	failCreditor  bool
	failDebtor    bool
}

func newFakeDebtLedger() *fakeDebtLedger {
	return &fakeDebtLedger{
		debts:         make(map[uuid.UUID]*models.Debt),
		failCreateFor: make(map[string]bool),
		failDeleteFor: make(map[uuid.UUID]bool),
	}
}

func (f *fakeDebtLedger) Create(_ context.Context, debt *models.Debt) error {
	if f.failCreateFor[debt.Debtor] {
		return fmt.Errorf("ledger rejected debt for %s", debt.Debtor)
	}
	if debt.ID == uuid.Nil {
		debt.ID = uuid.New()
	}
	cp := *debt
	f.debts[debt.ID] = &cp
	f.order = append(f.order, debt.ID)
	return nil
}

func (f *fakeDebtLedger) Get(_ context.Context, id uuid.UUID) (*models.Debt, error) {
	d, ok := f.debts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDebtLedger) ListByCreditor(_ context.Context, userID string) ([]models.Debt, error) {
	if f.failCreditor {
		return nil, errors.New("ledger unavailable")
	}
	return f.list(func(d *models.Debt) bool { return d.Creditor == userID }), nil
}

func (f *fakeDebtLedger) ListByDebtor(_ context.Context, userID string) ([]models.Debt, error) {
	if f.failDebtor {
		return nil, errors.New("ledger unavailable")
	}
	return f.list(func(d *models.Debt) bool { return d.Debtor == userID }), nil
}

func (f *fakeDebtLedger) list(match func(*models.Debt) bool) []models.Debt {
	var out []models.Debt
	for _, id := range f.order {
		if d, ok := f.debts[id]; ok && match(d) {
			out = append(out, *d)
		}
	}
	return out
}

func (f *fakeDebtLedger) Update(_ context.Context, debt *models.Debt) error {
	if _, ok := f.debts[debt.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *debt
	f.debts[debt.ID] = &cp
	return nil
}

func (f *fakeDebtLedger) Delete(_ context.Context, id uuid.UUID) error {
	if f.failDeleteFor[id] {
		return errors.New("ledger unavailable")
	}
	if _, ok := f.debts[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.debts, id)
	return nil
}

type fakeNotifier struct {
	dispatched []models.Debt
}

func (f *fakeNotifier) DispatchDebtCreated(_ context.Context, _ *models.SplitExpense, debts []models.Debt) DispatchResult {
	f.dispatched = append(f.dispatched, debts...)
	return DispatchResult{Sent: len(debts)}
}
