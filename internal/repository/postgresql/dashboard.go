package postgresql

import (
	"context"
	"fmt"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/dashboard"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

// GetMonthlyStats collects the headline numbers in one round trip per
// table rather than one query per figure.
func (r *dashboardRepository) GetMonthlyStats(ctx context.Context, month string) (dashboard.MonthlyStats, error) {
	q := GetQuerier(ctx, r.db)
	start, end := validator.MonthBounds(month)

	stats := dashboard.MonthlyStats{Month: month}

	txQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'completed' THEN profit ELSE 0 END), 0),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM transactions
		WHERE transaction_date >= $1 AND transaction_date < $2
	`
	err := q.QueryRow(ctx, txQuery, start, end).Scan(
		&stats.TotalProfit, &stats.CompletedCount, &stats.PendingCount, &stats.FailedCount,
	)
	if err != nil {
		return dashboard.MonthlyStats{}, fmt.Errorf("failed to get transaction stats: %w", err)
	}

	expenseQuery := `SELECT COALESCE(SUM(amount_usd), 0) FROM expenses WHERE month = $1`
	if err := q.QueryRow(ctx, expenseQuery, month).Scan(&stats.TotalExpenses); err != nil {
		return dashboard.MonthlyStats{}, fmt.Errorf("failed to get expense stats: %w", err)
	}

	stats.NetProfit = stats.TotalProfit.Sub(stats.TotalExpenses)

	rosterQuery := `SELECT COUNT(*) FROM employees WHERE is_active = true`
	if err := q.QueryRow(ctx, rosterQuery).Scan(&stats.ActiveEmployees); err != nil {
		return dashboard.MonthlyStats{}, fmt.Errorf("failed to count active employees: %w", err)
	}

	cardQuery := `
		SELECT
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE is_active AND color = 'pink' AND remaining_today = 0)
		FROM cards
	`
	if err := q.QueryRow(ctx, cardQuery).Scan(&stats.ActiveCards, &stats.PinkCardsDepleted); err != nil {
		return dashboard.MonthlyStats{}, fmt.Errorf("failed to get card stats: %w", err)
	}

	return stats, nil
}

func (r *dashboardRepository) CountActiveEmployeesByRole(ctx context.Context) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT role, COUNT(*)
		FROM employees
		WHERE is_active = true
		GROUP BY role
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("failed to scan role count: %w", err)
		}
		counts[role] = count
	}

	return counts, rows.Err()
}
