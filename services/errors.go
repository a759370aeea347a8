package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrForbidden means the record exists but belongs to another user.
	ErrForbidden = errors.New("record belongs to another user")

	// ErrDebtAlreadyPaid guards the terminal paid status.
	ErrDebtAlreadyPaid = errors.New("debt is already paid")

	// ErrInvalidDirection rejects unknown fetch directions.
	ErrInvalidDirection = errors.New("direction must be \"owed-to-me\" or \"owed-by-me\"")
)

// AmountTolerance is the rounding slack allowed when comparing a split
// sum against the expense total.
const AmountTolerance = 0.01

// ValidationError carries every violated rule, not just the first one
// found. No writes happen when validation fails.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// ConsistencyGap reports a cascade delete that removed debts but could
// not remove the parent expense (or vice versa). There is no automatic
// rollback; the caller gets the partial counts.
type ConsistencyGap struct {
	ExpenseDeleted bool
	DebtsDeleted   int
	DebtsFailed    int
	Cause          error
}

func (e *ConsistencyGap) Error() string {
	return fmt.Sprintf("consistency gap: expense_deleted=%t debts_deleted=%d debts_failed=%d: %v",
		e.ExpenseDeleted, e.DebtsDeleted, e.DebtsFailed, e.Cause)
}

func (e *ConsistencyGap) Unwrap() error {
	return e.Cause
}
