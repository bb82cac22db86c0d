package dashboard

import "context"

type DashboardService interface {
	MonthlyOverview(ctx context.Context, month string) (MonthlyOverview, error)
}
