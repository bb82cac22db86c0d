package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/bank"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
)

type bankRepository struct {
	db *database.DB
}

func NewBankRepository(db *database.DB) bank.BankRepository {
	return &bankRepository{db: db}
}

// ========== ACCOUNTS ==========

func (r *bankRepository) CreateAccount(ctx context.Context, account bank.Account) (bank.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bank_accounts (bank_name, holder_name, account_number, balance, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, bank_name, holder_name, account_number, balance, is_active, created_at, updated_at
	`

	var created bank.Account
	err := q.QueryRow(ctx, query,
		account.BankName, account.HolderName, account.AccountNumber, account.Balance, account.IsActive,
	).Scan(
		&created.ID, &created.BankName, &created.HolderName, &created.AccountNumber,
		&created.Balance, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_bank_account_number") {
			return bank.Account{}, bank.ErrAccountNumberExists
		}
		return bank.Account{}, fmt.Errorf("failed to create bank account: %w", err)
	}

	return created, nil
}

func (r *bankRepository) GetAccountByID(ctx context.Context, id string) (bank.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, bank_name, holder_name, account_number, balance, is_active, created_at, updated_at
		FROM bank_accounts
		WHERE id = $1
	`

	var a bank.Account
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.BankName, &a.HolderName, &a.AccountNumber,
		&a.Balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bank.Account{}, bank.ErrAccountNotFound
		}
		return bank.Account{}, fmt.Errorf("failed to get bank account: %w", err)
	}

	return a, nil
}

func (r *bankRepository) ListAccounts(ctx context.Context, activeOnly bool) ([]bank.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, bank_name, holder_name, account_number, balance, is_active, created_at, updated_at
		FROM bank_accounts
	`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY bank_name, holder_name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []bank.Account
	for rows.Next() {
		var a bank.Account
		if err := rows.Scan(
			&a.ID, &a.BankName, &a.HolderName, &a.AccountNumber,
			&a.Balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %w", err)
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (r *bankRepository) SetAccountActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE bank_accounts SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`, id, active).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bank.ErrAccountNotFound
		}
		return fmt.Errorf("failed to set bank account active: %w", err)
	}

	return nil
}

// ========== CARDS ==========

const cardSelect = `
	SELECT c.id, c.account_id, c.last_four, c.color, c.daily_limit, c.remaining_today,
		   c.employee_id, c.is_active, c.created_at, c.updated_at, a.bank_name, e.full_name
	FROM cards c
	JOIN bank_accounts a ON a.id = c.account_id
	LEFT JOIN employees e ON e.id = c.employee_id
`

func (r *bankRepository) CreateCard(ctx context.Context, card bank.Card) (bank.Card, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cards (account_id, last_four, color, daily_limit, remaining_today, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, account_id, last_four, color, daily_limit, remaining_today, employee_id, is_active, created_at, updated_at
	`

	var created bank.Card
	err := q.QueryRow(ctx, query,
		card.AccountID, card.LastFour, card.Color, card.DailyLimit, card.RemainingToday, card.IsActive,
	).Scan(
		&created.ID, &created.AccountID, &created.LastFour, &created.Color,
		&created.DailyLimit, &created.RemainingToday, &created.EmployeeID,
		&created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return bank.Card{}, fmt.Errorf("failed to create card: %w", err)
	}

	return created, nil
}

func (r *bankRepository) GetCardByID(ctx context.Context, id string) (bank.Card, error) {
	q := GetQuerier(ctx, r.db)

	var c bank.Card
	err := q.QueryRow(ctx, cardSelect+` WHERE c.id = $1`, id).Scan(
		&c.ID, &c.AccountID, &c.LastFour, &c.Color, &c.DailyLimit, &c.RemainingToday,
		&c.EmployeeID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.BankName, &c.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bank.Card{}, bank.ErrCardNotFound
		}
		return bank.Card{}, fmt.Errorf("failed to get card: %w", err)
	}

	return c, nil
}

func (r *bankRepository) ListCards(ctx context.Context, activeOnly bool) ([]bank.Card, error) {
	q := GetQuerier(ctx, r.db)

	query := cardSelect
	if activeOnly {
		query += " WHERE c.is_active = true"
	}
	query += " ORDER BY a.bank_name, c.last_four"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []bank.Card
	for rows.Next() {
		var c bank.Card
		if err := rows.Scan(
			&c.ID, &c.AccountID, &c.LastFour, &c.Color, &c.DailyLimit, &c.RemainingToday,
			&c.EmployeeID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.BankName, &c.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

func (r *bankRepository) AssignCard(ctx context.Context, cardID, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	// Assignment only succeeds on an unassigned, active card.
	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE cards SET employee_id = $2, updated_at = NOW()
		WHERE id = $1 AND employee_id IS NULL AND is_active = true
		RETURNING id
	`, cardID, employeeID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			card, getErr := r.GetCardByID(ctx, cardID)
			if getErr != nil {
				return getErr
			}
			if card.EmployeeID != nil {
				return bank.ErrCardAlreadyAssigned
			}
			return bank.ErrCardInactive
		}
		return fmt.Errorf("failed to assign card: %w", err)
	}

	return nil
}

func (r *bankRepository) UnassignCard(ctx context.Context, cardID string) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE cards SET employee_id = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`, cardID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bank.ErrCardNotFound
		}
		return fmt.Errorf("failed to unassign card: %w", err)
	}

	return nil
}

// DecrementRemaining burns one unit of a pink card's daily quota. The
// guard in the WHERE clause makes concurrent decrements safe.
func (r *bankRepository) DecrementRemaining(ctx context.Context, cardID string) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE cards SET remaining_today = remaining_today - 1, updated_at = NOW()
		WHERE id = $1 AND color = 'pink' AND is_active = true AND remaining_today > 0
		RETURNING id
	`, cardID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			card, getErr := r.GetCardByID(ctx, cardID)
			if getErr != nil {
				return getErr
			}
			if card.Color != bank.CardColorPink {
				return bank.ErrCardNotPinkQuotaOnly
			}
			if !card.IsActive {
				return bank.ErrCardInactive
			}
			return bank.ErrCardQuotaExhausted
		}
		return fmt.Errorf("failed to decrement card quota: %w", err)
	}

	return nil
}

// RestoreRemaining gives one quota unit back, used when the operation
// that consumed it fails afterwards. Capped at the daily limit.
func (r *bankRepository) RestoreRemaining(ctx context.Context, cardID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE cards SET remaining_today = LEAST(remaining_today + 1, daily_limit), updated_at = NOW()
		WHERE id = $1 AND color = 'pink'
	`, cardID)
	if err != nil {
		return fmt.Errorf("failed to restore card quota: %w", err)
	}

	return nil
}

// ResetDailyLimits restores remaining_today to daily_limit for every
// active pink card and reports how many rows changed.
func (r *bankRepository) ResetDailyLimits(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE cards SET remaining_today = daily_limit, updated_at = NOW()
		WHERE color = 'pink' AND is_active = true AND remaining_today <> daily_limit
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset daily limits: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
