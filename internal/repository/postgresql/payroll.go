package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/payroll"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
)

type payrollStore struct {
	db *database.DB
}

func NewPayrollStore(db *database.DB) payroll.PayrollStore {
	return &payrollStore{db: db}
}

// WriteCalculation inserts the calculation record and all salary rows in
// one transaction. Either the whole run is readable afterwards or none of
// it is.
func (r *payrollStore) WriteCalculation(ctx context.Context, record payroll.CalculationRecord, salaries []payroll.SalaryRecord) (payroll.CalculationRecord, error) {
	var written payroll.CalculationRecord

	err := WithTransaction(ctx, r.db, func(txCtx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO payroll_calculations (
				month, total_profit, total_expenses, net_profit,
				total_salary_fund, employee_count, average_salary, calculated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, month, total_profit, total_expenses, net_profit,
				total_salary_fund, employee_count, average_salary, calculated_by, created_at
		`
		err := tx.QueryRow(txCtx, query,
			record.Month, record.TotalProfit, record.TotalExpenses, record.NetProfit,
			record.TotalSalaryFund, record.EmployeeCount, record.AverageSalary, record.CalculatedBy,
		).Scan(
			&written.ID, &written.Month, &written.TotalProfit, &written.TotalExpenses, &written.NetProfit,
			&written.TotalSalaryFund, &written.EmployeeCount, &written.AverageSalary, &written.CalculatedBy, &written.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert calculation: %w", err)
		}

		salaryQuery := `
			INSERT INTO salary_records (
				calculation_id, employee_id, month, base_salary, bonus, total_salary, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		for _, s := range salaries {
			_, err := tx.Exec(txCtx, salaryQuery,
				written.ID, s.EmployeeID, s.Month, s.BaseSalary, s.Bonus, s.TotalSalary, s.Status,
			)
			if err != nil {
				return fmt.Errorf("failed to insert salary record for employee %s: %w", s.EmployeeID, err)
			}
		}

		return nil
	})
	if err != nil {
		return payroll.CalculationRecord{}, err
	}

	return written, nil
}

func (r *payrollStore) ListCalculations(ctx context.Context) ([]payroll.CalculationRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, total_profit, total_expenses, net_profit,
			   total_salary_fund, employee_count, average_salary, calculated_by, created_at
		FROM payroll_calculations
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var records []payroll.CalculationRecord
	for rows.Next() {
		var c payroll.CalculationRecord
		if err := rows.Scan(
			&c.ID, &c.Month, &c.TotalProfit, &c.TotalExpenses, &c.NetProfit,
			&c.TotalSalaryFund, &c.EmployeeCount, &c.AverageSalary, &c.CalculatedBy, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		records = append(records, c)
	}

	return records, rows.Err()
}

func (r *payrollStore) GetCalculationByID(ctx context.Context, id string) (payroll.CalculationRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, total_profit, total_expenses, net_profit,
			   total_salary_fund, employee_count, average_salary, calculated_by, created_at
		FROM payroll_calculations
		WHERE id = $1
	`

	var c payroll.CalculationRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Month, &c.TotalProfit, &c.TotalExpenses, &c.NetProfit,
		&c.TotalSalaryFund, &c.EmployeeCount, &c.AverageSalary, &c.CalculatedBy, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.CalculationRecord{}, payroll.ErrCalculationNotFound
		}
		return payroll.CalculationRecord{}, fmt.Errorf("failed to get calculation: %w", err)
	}

	return c, nil
}

func (r *payrollStore) ListSalaryRecords(ctx context.Context, month string) ([]payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.calculation_id, s.employee_id, s.month,
			   s.base_salary, s.bonus, s.total_salary, s.status, s.paid_at, s.paid_by,
			   s.created_at, e.full_name
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.month = $1
		ORDER BY s.created_at DESC, e.full_name
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []payroll.SalaryRecord
	for rows.Next() {
		var s payroll.SalaryRecord
		if err := rows.Scan(
			&s.ID, &s.CalculationID, &s.EmployeeID, &s.Month,
			&s.BaseSalary, &s.Bonus, &s.TotalSalary, &s.Status, &s.PaidAt, &s.PaidBy,
			&s.CreatedAt, &s.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, s)
	}

	return records, rows.Err()
}

func (r *payrollStore) MarkSalariesPaid(ctx context.Context, ids []string, paidBy string) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE salary_records
			SET status = 'paid', paid_at = NOW(), paid_by = $2
			WHERE id = $1 AND status = 'pending'
			RETURNING id
		`
		for _, id := range ids {
			var updatedID string
			err := tx.QueryRow(txCtx, query, id, paidBy).Scan(&updatedID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					// Either missing or already paid; distinguish for the caller.
					var exists bool
					if err := tx.QueryRow(txCtx, `SELECT EXISTS(SELECT 1 FROM salary_records WHERE id = $1)`, id).Scan(&exists); err != nil {
						return fmt.Errorf("failed to check salary record %s: %w", id, err)
					}
					if exists {
						return payroll.ErrSalaryAlreadyPaid
					}
					return payroll.ErrSalaryRecordNotFound
				}
				return fmt.Errorf("failed to mark salary record %s paid: %w", id, err)
			}
		}
		return nil
	})
}
