package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Split types
const (
	SplitTypeEqual  = "equal"
	SplitTypeCustom = "custom"
)

// Expense status
const (
	ExpenseStatusActive  = "active"
	ExpenseStatusSettled = "settled"
)

// PaidBySelf marks the current user as the payer of an expense.
const PaidBySelf = "self"

type SplitExpense struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedBy   string         `gorm:"not null;size:255;index" json:"created_by"`
	Description string         `gorm:"not null;size:255" json:"description"`
	TotalAmount float64        `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaidBy      string         `gorm:"not null;size:255" json:"paid_by"` // "self" or a participant identifier
	SplitType   string         `gorm:"not null;size:20" json:"split_type"`
	Status      string         `gorm:"not null;size:20;default:active" json:"status"`
	Splits      []ExpenseSplit `gorm:"foreignKey:ExpenseID" json:"splits"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (e *SplitExpense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type ExpenseSplit struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExpenseID     uuid.UUID `gorm:"type:uuid;index" json:"expense_id"`
	ParticipantID string    `gorm:"not null;size:255" json:"participant_id"`
	Amount        float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func (es *ExpenseSplit) BeforeCreate(tx *gorm.DB) error {
	if es.ID == uuid.Nil {
		es.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateExpenseRequest struct {
	Description string       `json:"description"`
	TotalAmount float64      `json:"total_amount"`
	PaidBy      string       `json:"paid_by"`
	SplitType   string       `json:"split_type"`
	Splits      []SplitInput `json:"splits"`
}

type SplitInput struct {
	ParticipantID string  `json:"participant_id"` // identifier or email
	Amount        float64 `json:"amount"`         // required for custom splits
}

// CreateExpenseResponse carries the stored expense plus the fan-out outcome.
type CreateExpenseResponse struct {
	Expense *SplitExpense        `json:"expense"`
	Summary CreateExpenseSummary `json:"summary"`
}

type CreateExpenseSummary struct {
	DebtsCreated      int             `json:"debts_created"`
	DebtsFailed       int             `json:"debts_failed"`
	NotificationsSent int             `json:"notifications_sent"`
	Failures          []FailureRecord `json:"failures,omitempty"`
}

// FailureRecord captures one participant whose debt could not be created.
type FailureRecord struct {
	ParticipantID string    `json:"participant_id"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// DeleteExpenseResponse reports the cascade-delete outcome.
type DeleteExpenseResponse struct {
	ExpenseDeleted bool `json:"expense_deleted"`
	DebtsDeleted   int  `json:"debts_deleted"`
	DebtsFailed    int  `json:"debts_failed"`
}
