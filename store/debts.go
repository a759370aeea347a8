package store

import (
	"context"
	"errors"
	"fmt"

	"fintrack-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDebtLedger implements DebtLedger on top of Postgres.
type GormDebtLedger struct {
	db *gorm.DB
}

func NewGormDebtLedger(db *gorm.DB) *GormDebtLedger {
	return &GormDebtLedger{db: db}
}

func (l *GormDebtLedger) Create(ctx context.Context, debt *models.Debt) error {
	if err := l.db.WithContext(ctx).Create(debt).Error; err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}
	return nil
}

func (l *GormDebtLedger) Get(ctx context.Context, id uuid.UUID) (*models.Debt, error) {
	var debt models.Debt
	err := l.db.WithContext(ctx).First(&debt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return &debt, nil
}

func (l *GormDebtLedger) ListByCreditor(ctx context.Context, userID string) ([]models.Debt, error) {
	return l.list(ctx, "creditor = ?", userID)
}

func (l *GormDebtLedger) ListByDebtor(ctx context.Context, userID string) ([]models.Debt, error) {
	return l.list(ctx, "debtor = ?", userID)
}

func (l *GormDebtLedger) list(ctx context.Context, query string, arg string) ([]models.Debt, error) {
	var debts []models.Debt
	err := l.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at DESC").
		Find(&debts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	return debts, nil
}

func (l *GormDebtLedger) Update(ctx context.Context, debt *models.Debt) error {
	if err := l.db.WithContext(ctx).Save(debt).Error; err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	return nil
}

func (l *GormDebtLedger) Delete(ctx context.Context, id uuid.UUID) error {
	res := l.db.WithContext(ctx).Delete(&models.Debt{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete debt: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
