package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/employee"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/payroll"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
)

// employeeRepository backs the roster CRUD surface and the read-only
// RosterSource the payroll aggregator consumes.
type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) *employeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, full_name, email, role, percentage_rate, is_active, hired_at, deactivated_at, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FullName, &e.Email, &e.Role, &e.PercentageRate,
		&e.IsActive, &e.HiredAt, &e.DeactivatedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, employeeColumns)
	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO employees (full_name, email, role, percentage_rate, is_active, hired_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, employeeColumns)

	e, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.FullName, newEmployee.Email, newEmployee.Role,
		newEmployee.PercentageRate, newEmployee.IsActive, newEmployee.HiredAt,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_email") {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	argIdx := 2

	if req.FullName != nil {
		setParts = append(setParts, fmt.Sprintf("full_name = $%d", argIdx))
		args = append(args, *req.FullName)
		argIdx++
	}
	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, *req.Email)
		argIdx++
	}
	if req.Role != nil {
		setParts = append(setParts, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, *req.Role)
		argIdx++
	}
	if req.PercentageRate != nil {
		setParts = append(setParts, fmt.Sprintf("percentage_rate = $%d", argIdx))
		args = append(args, *req.PercentageRate)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		if strings.Contains(err.Error(), "uk_employee_email") {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET is_active = false, deactivated_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_active = true
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists); err != nil {
				return fmt.Errorf("failed to check employee: %w", err)
			}
			if exists {
				return employee.ErrEmployeeDeactivated
			}
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees`, employeeColumns)
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY full_name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.FullName, &e.Email, &e.Role, &e.PercentageRate,
			&e.IsActive, &e.HiredAt, &e.DeactivatedAt, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// ========== RosterSource (payroll) ==========

// ListActiveEmployees returns the roster snapshot for a payroll run. The
// month parameter is accepted for interface symmetry; the roster has no
// historical view, so the current active set is the snapshot.
func (r *employeeRepository) ListActiveEmployees(ctx context.Context, month string) ([]payroll.EmployeeFact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, role, percentage_rate, is_active
		FROM employees
		WHERE is_active = true
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var facts []payroll.EmployeeFact
	for rows.Next() {
		var f payroll.EmployeeFact
		var role string
		if err := rows.Scan(&f.EmployeeID, &f.FullName, &role, &f.PercentageRate, &f.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan employee fact: %w", err)
		}
		f.Role = user.Role(role)
		facts = append(facts, f)
	}

	return facts, rows.Err()
}
