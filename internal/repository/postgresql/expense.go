package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/expense"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// expenseRepository backs expense CRUD and the payroll ExpenseSource.
type expenseRepository struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) *expenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expenses (month, amount_usd, description, recorded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, month, amount_usd, description, recorded_by, created_at, updated_at
	`

	var created expense.Expense
	err := q.QueryRow(ctx, query, e.Month, e.AmountUSD, e.Description, e.RecordedBy).Scan(
		&created.ID, &created.Month, &created.AmountUSD, &created.Description,
		&created.RecordedBy, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}

	return created, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, amount_usd, description, recorded_by, created_at, updated_at
		FROM expenses
		WHERE id = $1
	`

	var e expense.Expense
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Month, &e.AmountUSD, &e.Description, &e.RecordedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

func (r *expenseRepository) ListByMonth(ctx context.Context, month string) ([]expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, amount_usd, description, recorded_by, created_at, updated_at
		FROM expenses
		WHERE month = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(
			&e.ID, &e.Month, &e.AmountUSD, &e.Description, &e.RecordedBy, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (r *expenseRepository) Update(ctx context.Context, req expense.UpdateExpenseRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.AmountUSD != nil {
		setParts = append(setParts, fmt.Sprintf("amount_usd = $%d", argIdx))
		args = append(args, *req.AmountUSD)
		argIdx++
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE expenses
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.ErrExpenseNotFound
		}
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

// ========== ExpenseSource (payroll) ==========

func (r *expenseRepository) SumExpenses(ctx context.Context, month string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount_usd), 0)
		FROM expenses
		WHERE month = $1
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, month).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return total, nil
}
