package services

import (
	"context"
	"strings"

	"fintrack-backend/metrics"
	"fintrack-backend/models"
	"fintrack-backend/store"
	"fintrack-backend/utils"

	"github.com/google/uuid"
)

// Fetch directions for debts.
const (
	DirectionOwedToMe = "owed-to-me"
	DirectionOwedByMe = "owed-by-me"
)

// DebtService handles manually recorded debts and the lifecycle
// operations shared with split-derived ones.
type DebtService struct {
	ledger store.DebtLedger
}

func NewDebtService(ledger store.DebtLedger) *DebtService {
	return &DebtService{ledger: ledger}
}

// Create records a manual debt owed to the current user.
func (s *DebtService) Create(ctx context.Context, userID string, req models.CreateDebtRequest) (*models.Debt, error) {
	var violations []string
	if strings.TrimSpace(req.Debtor) == "" {
		violations = append(violations, "debtor is required")
	}
	if req.Debtor == userID {
		violations = append(violations, "debtor cannot be yourself")
	}
	if req.Amount <= 0 {
		violations = append(violations, "amount must be a positive number")
	}
	debtType := req.Type
	if debtType == "" {
		debtType = models.DebtTypeManual
	}
	if debtType != models.DebtTypeManual && debtType != models.DebtTypeSplit {
		violations = append(violations, "type must be \"manual\" or \"split\"")
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	debt := models.Debt{
		Creditor:    userID,
		Debtor:      req.Debtor,
		Amount:      utils.RoundToTwo(req.Amount),
		Description: strings.TrimSpace(req.Description),
		Type:        debtType,
		Status:      models.DebtStatusPending,
		DueDate:     req.DueDate,
		Metadata:    req.Metadata,
	}
	if err := s.ledger.Create(ctx, &debt); err != nil {
		return nil, err
	}
	metrics.DebtsCreated.Inc()
	return &debt, nil
}

// List fetches debts in one direction for the current user.
func (s *DebtService) List(ctx context.Context, userID, direction string) ([]models.Debt, error) {
	switch direction {
	case DirectionOwedToMe:
		return s.ledger.ListByCreditor(ctx, userID)
	case DirectionOwedByMe:
		return s.ledger.ListByDebtor(ctx, userID)
	default:
		return nil, ErrInvalidDirection
	}
}

// MarkPaid settles a debt. Paid is terminal: settling twice fails.
// Either party of the debt may record the payment.
func (s *DebtService) MarkPaid(ctx context.Context, userID string, id uuid.UUID, paymentMethod string) (*models.Debt, error) {
	debt, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if debt.Creditor != userID && debt.Debtor != userID {
		return nil, ErrForbidden
	}
	if debt.Status == models.DebtStatusPaid {
		return nil, ErrDebtAlreadyPaid
	}

	debt.Status = models.DebtStatusPaid
	if paymentMethod != "" {
		if debt.Metadata == nil {
			debt.Metadata = models.Metadata{}
		}
		debt.Metadata[models.MetaPaymentMethod] = paymentMethod
	}
	if err := s.ledger.Update(ctx, debt); err != nil {
		return nil, err
	}
	return debt, nil
}

// Delete removes a debt. Only the creditor may delete it.
func (s *DebtService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	debt, err := s.ledger.Get(ctx, id)
	if err != nil {
		return err
	}
	if debt.Creditor != userID {
		return ErrForbidden
	}
	return s.ledger.Delete(ctx, id)
}
