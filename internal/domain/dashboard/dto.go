package dashboard

import "github.com/shopspring/decimal"

// MonthlyStats is the headline card on the dashboard page.
type MonthlyStats struct {
	Month             string          `json:"month"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	CompletedCount    int             `json:"completed_count"`
	PendingCount      int             `json:"pending_count"`
	FailedCount       int             `json:"failed_count"`
	ActiveEmployees   int             `json:"active_employees"`
	ActiveCards       int             `json:"active_cards"`
	PinkCardsDepleted int             `json:"pink_cards_depleted"`
}

// RoleEarnings is one row of the per-role earnings breakdown, derived from
// the same role policy table the payroll run uses.
type RoleEarnings struct {
	Role        string          `json:"role"`
	BasePercent decimal.Decimal `json:"base_percent"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	HeadCount   int             `json:"head_count"`
}

type MonthlyOverview struct {
	Stats         MonthlyStats   `json:"stats"`
	RoleBreakdown []RoleEarnings `json:"role_breakdown"`
}
