package dashboard

import (
	"context"
	"fmt"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/dashboard"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/payroll"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

type DashboardServiceImpl struct {
	dashboardRepo dashboard.DashboardRepository
	policy        payroll.RolePolicy
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	policy payroll.RolePolicy,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		dashboardRepo: dashboardRepo,
		policy:        policy,
	}
}

// MonthlyOverview aggregates the headline numbers plus a per-role earnings
// projection using the same policy table the payroll run applies. The
// projection shows what each role's base share of the current net profit
// would be, before any payroll run is persisted.
func (s *DashboardServiceImpl) MonthlyOverview(ctx context.Context, month string) (dashboard.MonthlyOverview, error) {
	if !validator.IsValidMonthKey(month) {
		return dashboard.MonthlyOverview{}, validator.ValidationErrors{
			{Field: "month", Message: "must match YYYY-MM"},
		}
	}

	stats, err := s.dashboardRepo.GetMonthlyStats(ctx, month)
	if err != nil {
		return dashboard.MonthlyOverview{}, fmt.Errorf("failed to get monthly stats: %w", err)
	}

	headCounts, err := s.dashboardRepo.CountActiveEmployeesByRole(ctx)
	if err != nil {
		return dashboard.MonthlyOverview{}, fmt.Errorf("failed to count employees by role: %w", err)
	}

	breakdown := make([]dashboard.RoleEarnings, 0, len(s.policy))
	for _, role := range []user.Role{user.RoleCEO, user.RoleManager, user.RoleCFO, user.RoleHR} {
		pct := s.policy.BasePercent(role)
		if pct.IsZero() {
			continue
		}
		breakdown = append(breakdown, dashboard.RoleEarnings{
			Role:        string(role),
			BasePercent: pct,
			BaseAmount:  s.policy.BaseSalary(role, stats.NetProfit),
			HeadCount:   headCounts[string(role)],
		})
	}

	return dashboard.MonthlyOverview{
		Stats:         stats,
		RoleBreakdown: breakdown,
	}, nil
}
