package models

// BalanceSummary is returned for GET /api/balances/summary.
type BalanceSummary struct {
	TotalOwedToMe      float64           `json:"total_owed_to_me"`
	TotalOwedByMe      float64           `json:"total_owed_by_me"`
	NetBalance         float64           `json:"net_balance"`
	SplitExpenseAmount float64           `json:"split_expense_amount"`
	RegularAmount      float64           `json:"regular_amount"`
	PendingOwedToMe    int               `json:"pending_owed_to_me"`
	PendingOwedByMe    int               `json:"pending_owed_by_me"`
	SplitExpenseCount  int               `json:"split_expense_count"`
	IntegrationHealth  IntegrationHealth `json:"integration_health"`
}

// IntegrationHealth reports how well split expenses and their derived
// debts line up in the fetched data set.
type IntegrationHealth struct {
	SplitExpensesWithDebts int `json:"split_expenses_with_debts"`
	OrphanedDebts          int `json:"orphaned_debts"`
}
