package dashboard

import "context"

type DashboardRepository interface {
	GetMonthlyStats(ctx context.Context, month string) (MonthlyStats, error)
	CountActiveEmployeesByRole(ctx context.Context) (map[string]int, error)
}
