package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/transaction"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ledgerRepository backs both the transaction CRUD surface and the
// read-only LedgerSource the payroll aggregator consumes.
type ledgerRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) *ledgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, t transaction.Transaction) (transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO transactions (employee_id, card_id, site_id, amount, profit, status, transaction_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, employee_id, card_id, site_id, amount, profit, status, transaction_date, notes, created_at, updated_at
	`

	var created transaction.Transaction
	err := q.QueryRow(ctx, query,
		t.EmployeeID, t.CardID, t.SiteID, t.Amount, t.Profit, t.Status, t.TransactionDate, t.Notes,
	).Scan(
		&created.ID, &created.EmployeeID, &created.CardID, &created.SiteID,
		&created.Amount, &created.Profit, &created.Status, &created.TransactionDate,
		&created.Notes, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return created, nil
}

func (r *ledgerRepository) GetByID(ctx context.Context, id string) (transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.employee_id, t.card_id, t.site_id, t.amount, t.profit,
			   t.status, t.transaction_date, t.notes, t.created_at, t.updated_at,
			   e.full_name, s.name
		FROM transactions t
		JOIN employees e ON e.id = t.employee_id
		LEFT JOIN sites s ON s.id = t.site_id
		WHERE t.id = $1
	`

	var t transaction.Transaction
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.EmployeeID, &t.CardID, &t.SiteID, &t.Amount, &t.Profit,
		&t.Status, &t.TransactionDate, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
		&t.EmployeeName, &t.SiteName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return transaction.Transaction{}, transaction.ErrTransactionNotFound
		}
		return transaction.Transaction{}, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

func (r *ledgerRepository) List(ctx context.Context, filter transaction.TransactionFilter) ([]transaction.Transaction, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil {
		start, end := validator.MonthBounds(*filter.Month)
		where = append(where, fmt.Sprintf("t.transaction_date >= $%d AND t.transaction_date < $%d", argIdx, argIdx+1))
		args = append(args, start, end)
		argIdx += 2
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("t.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		where = append(where, fmt.Sprintf("t.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	whereClause := strings.Join(where, " AND ")

	var totalCount int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions t WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT t.id, t.employee_id, t.card_id, t.site_id, t.amount, t.profit,
			   t.status, t.transaction_date, t.notes, t.created_at, t.updated_at,
			   e.full_name, s.name
		FROM transactions t
		JOIN employees e ON e.id = t.employee_id
		LEFT JOIN sites s ON s.id = t.site_id
		WHERE %s
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []transaction.Transaction
	for rows.Next() {
		var t transaction.Transaction
		if err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.CardID, &t.SiteID, &t.Amount, &t.Profit,
			&t.Status, &t.TransactionDate, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
			&t.EmployeeName, &t.SiteName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, totalCount, rows.Err()
}

func (r *ledgerRepository) UpdateStatus(ctx context.Context, id string, status transaction.TransactionStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE transactions
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, status).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return transaction.ErrTransactionNotFound
		}
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	return nil
}

func (r *ledgerRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// ========== LedgerSource (payroll) ==========

func (r *ledgerRepository) SumCompletedProfit(ctx context.Context, month string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)
	start, end := validator.MonthBounds(month)

	query := `
		SELECT COALESCE(SUM(profit), 0)
		FROM transactions
		WHERE status = 'completed' AND transaction_date >= $1 AND transaction_date < $2
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed profit: %w", err)
	}

	return total, nil
}

func (r *ledgerRepository) SumProfitByEmployee(ctx context.Context, month string) (map[string]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)
	start, end := validator.MonthBounds(month)

	query := `
		SELECT employee_id, COALESCE(SUM(profit), 0)
		FROM transactions
		WHERE status = 'completed' AND transaction_date >= $1 AND transaction_date < $2
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum profit by employee: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var employeeID string
		var profit decimal.Decimal
		if err := rows.Scan(&employeeID, &profit); err != nil {
			return nil, fmt.Errorf("failed to scan profit row: %w", err)
		}
		result[employeeID] = profit
	}

	return result, rows.Err()
}
