package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fintrack-backend/metrics"
	"fintrack-backend/models"
	"fintrack-backend/store"
	"fintrack-backend/utils"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// BalanceAggregator combines debts in both directions with split
// expenses into one summary. The three fetches run concurrently with
// settle-all semantics: a failed fetch degrades its category to empty
// and never aborts the summary, so ComputeSummary cannot fail.
type BalanceAggregator struct {
	expenses store.SplitExpenseStore
	ledger   store.DebtLedger
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewBalanceAggregator(expenses store.SplitExpenseStore, ledger store.DebtLedger, cache *redis.Client, cacheTTL time.Duration) *BalanceAggregator {
	return &BalanceAggregator{expenses: expenses, ledger: ledger, cache: cache, cacheTTL: cacheTTL}
}

func summaryCacheKey(userID string) string {
	return "balance-summary:" + userID
}

// ComputeSummary fetches owed-to-me debts, owed-by-me debts, and split
// expenses concurrently, then aggregates. Only pending debts count
// toward the totals. Monetary results are rounded to two decimals at
// this boundary only.
func (a *BalanceAggregator) ComputeSummary(ctx context.Context, userID string) *models.BalanceSummary {
	if cached := a.cachedSummary(ctx, userID); cached != nil {
		return cached
	}

	var (
		owedToMe []models.Debt
		owedByMe []models.Debt
		expenses []models.SplitExpense
	)

	var g errgroup.Group
	g.Go(func() error {
		debts, err := a.ledger.ListByCreditor(ctx, userID)
		if err != nil {
			slog.Warn("owed-to-me fetch failed, degrading to empty", "error", err)
			return nil
		}
		owedToMe = debts
		return nil
	})
	g.Go(func() error {
		debts, err := a.ledger.ListByDebtor(ctx, userID)
		if err != nil {
			slog.Warn("owed-by-me fetch failed, degrading to empty", "error", err)
			return nil
		}
		owedByMe = debts
		return nil
	})
	g.Go(func() error {
		list, err := a.expenses.ListByOwner(ctx, userID)
		if err != nil {
			slog.Warn("split expense fetch failed, degrading to empty", "error", err)
			return nil
		}
		expenses = list
		return nil
	})
	// Every closure degrades its own failure and returns nil, so the
	// group never reports an error.
	_ = g.Wait()

	summary := aggregate(owedToMe, owedByMe, expenses)
	metrics.OrphanedDebts.Set(float64(summary.IntegrationHealth.OrphanedDebts))

	a.storeSummary(ctx, userID, summary)
	return summary
}

// InvalidateCache drops the cached summary after a write. Safe to call
// with caching disabled.
func (a *BalanceAggregator) InvalidateCache(ctx context.Context, userID string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Del(ctx, summaryCacheKey(userID)).Err(); err != nil {
		slog.Debug("summary cache invalidation failed", "error", err)
	}
}

func aggregate(owedToMe, owedByMe []models.Debt, expenses []models.SplitExpense) *models.BalanceSummary {
	// Accumulation stays in full precision; rounding happens only here
	// at the boundary.
	round := utils.RoundToTwo

	var totalOwedToMe, totalOwedByMe, splitAmount float64
	var pendingToMe, pendingByMe int

	knownExpenses := make(map[string]bool, len(expenses))
	for _, e := range expenses {
		knownExpenses[e.ID.String()] = true
	}

	expensesWithDebts := make(map[string]bool)
	orphaned := 0

	for _, d := range owedToMe {
		if d.Status != models.DebtStatusPending {
			continue
		}
		pendingToMe++
		totalOwedToMe += d.Amount

		ref := d.SplitExpenseID()
		if ref == "" {
			continue
		}
		splitAmount += d.Amount
		if knownExpenses[ref] {
			expensesWithDebts[ref] = true
		} else if d.Type == models.DebtTypeSplit {
			orphaned++
		}
	}

	for _, d := range owedByMe {
		if d.Status != models.DebtStatusPending {
			continue
		}
		pendingByMe++
		totalOwedByMe += d.Amount
	}

	return &models.BalanceSummary{
		TotalOwedToMe:      round(totalOwedToMe),
		TotalOwedByMe:      round(totalOwedByMe),
		NetBalance:         round(totalOwedToMe - totalOwedByMe),
		SplitExpenseAmount: round(splitAmount),
		RegularAmount:      round(totalOwedToMe - splitAmount),
		PendingOwedToMe:    pendingToMe,
		PendingOwedByMe:    pendingByMe,
		SplitExpenseCount:  len(expenses),
		IntegrationHealth: models.IntegrationHealth{
			SplitExpensesWithDebts: len(expensesWithDebts),
			OrphanedDebts:          orphaned,
		},
	}
}

func (a *BalanceAggregator) cachedSummary(ctx context.Context, userID string) *models.BalanceSummary {
	if a.cache == nil {
		return nil
	}
	raw, err := a.cache.Get(ctx, summaryCacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var summary models.BalanceSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}
	return &summary
}

func (a *BalanceAggregator) storeSummary(ctx context.Context, userID string, summary *models.BalanceSummary) {
	if a.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, summaryCacheKey(userID), raw, a.cacheTTL).Err(); err != nil {
		slog.Debug("summary cache write failed", "error", err)
	}
}
