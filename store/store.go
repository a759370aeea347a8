// Package store provides persistence abstractions for split expenses,
// debts, and participants. The interfaces expose single-entity CRUD only:
// the backing store offers no multi-entity transactions, so every caller
// must treat related writes as independent operations that can fail
// separately.
package store

import (
	"context"
	"errors"

	"fintrack-backend/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// SplitExpenseStore persists split-expense records.
type SplitExpenseStore interface {
	Create(ctx context.Context, expense *models.SplitExpense) error
	Get(ctx context.Context, id uuid.UUID) (*models.SplitExpense, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.SplitExpense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DebtLedger persists debt records, queryable by direction.
type DebtLedger interface {
	Create(ctx context.Context, debt *models.Debt) error
	Get(ctx context.Context, id uuid.UUID) (*models.Debt, error)
	ListByCreditor(ctx context.Context, userID string) ([]models.Debt, error)
	ListByDebtor(ctx context.Context, userID string) ([]models.Debt, error)
	Update(ctx context.Context, debt *models.Debt) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ParticipantStore is the friends directory used to resolve split
// participants into notification targets.
type ParticipantStore interface {
	Upsert(ctx context.Context, p *models.Participant) error
	Get(ctx context.Context, id string) (*models.Participant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Participant, error)
}
