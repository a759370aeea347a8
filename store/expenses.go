package store

import (
	"context"
	"errors"
	"fmt"

	"fintrack-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseStore implements SplitExpenseStore on top of Postgres.
type GormExpenseStore struct {
	db *gorm.DB
}

func NewGormExpenseStore(db *gorm.DB) *GormExpenseStore {
	return &GormExpenseStore{db: db}
}

func (s *GormExpenseStore) Create(ctx context.Context, expense *models.SplitExpense) error {
	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create split expense: %w", err)
	}
	return nil
}

func (s *GormExpenseStore) Get(ctx context.Context, id uuid.UUID) (*models.SplitExpense, error) {
	var expense models.SplitExpense
	err := s.db.WithContext(ctx).Preload("Splits").First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split expense: %w", err)
	}
	return &expense, nil
}

func (s *GormExpenseStore) ListByOwner(ctx context.Context, ownerID string) ([]models.SplitExpense, error) {
	var expenses []models.SplitExpense
	err := s.db.WithContext(ctx).
		Preload("Splits").
		Where("created_by = ?", ownerID).
		Order("created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list split expenses: %w", err)
	}
	return expenses, nil
}

func (s *GormExpenseStore) Delete(ctx context.Context, id uuid.UUID) error {
	// Splits are rows of the expense record itself, not derived debts;
	// they go with it in one call.
	if err := s.db.WithContext(ctx).Where("expense_id = ?", id).Delete(&models.ExpenseSplit{}).Error; err != nil {
		return fmt.Errorf("failed to delete expense splits: %w", err)
	}
	res := s.db.WithContext(ctx).Delete(&models.SplitExpense{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete split expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
