package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Debt types
const (
	DebtTypeManual = "manual"
	DebtTypeSplit  = "split"
)

// Debt status. Paid is terminal.
const (
	DebtStatusPending = "pending"
	DebtStatusPaid    = "paid"
)

// Metadata keys for split-type debts. The split expense link is an
// application-level foreign key: the store enforces nothing.
const (
	MetaSplitExpenseID   = "splitExpenseId"
	MetaOriginalAmount   = "originalAmount"
	MetaSplitType        = "splitType"
	MetaParticipantCount = "participantCount"
	MetaPaidBy           = "paidBy"
	MetaPaymentMethod    = "paymentMethod"
)

type Metadata map[string]any

type Debt struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Creditor    string     `gorm:"not null;size:255;index" json:"creditor"`
	Debtor      string     `gorm:"not null;size:255;index" json:"debtor"`
	Amount      float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string     `gorm:"size:255" json:"description"`
	Type        string     `gorm:"not null;size:20" json:"type"`
	Status      string     `gorm:"not null;size:20;default:pending" json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Metadata    Metadata   `gorm:"serializer:json" json:"metadata,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// SplitExpenseID returns the linked expense id for split-type debts,
// or "" when the debt carries no link.
func (d *Debt) SplitExpenseID() string {
	if d.Metadata == nil {
		return ""
	}
	if v, ok := d.Metadata[MetaSplitExpenseID].(string); ok {
		return v
	}
	return ""
}

// Request structs
type CreateDebtRequest struct {
	Debtor      string     `json:"debtor"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Metadata    Metadata   `json:"metadata,omitempty"`
}

type MarkDebtPaidRequest struct {
	PaymentMethod string `json:"payment_method,omitempty"`
}
