package payroll

import (
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	Month string `json:"month"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is required"})
	} else if !validator.IsValidMonthKey(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must match YYYY-MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeSalaryResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Role         string          `json:"role"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Bonus        decimal.Decimal `json:"bonus"`
	TotalSalary  decimal.Decimal `json:"total_salary"`
}

// CalculationSummary is returned to the caller after a successful run.
type CalculationSummary struct {
	ID              string                   `json:"id"`
	Month           string                   `json:"month"`
	TotalProfit     decimal.Decimal          `json:"total_profit"`
	TotalExpenses   decimal.Decimal          `json:"total_expenses"`
	NetProfit       decimal.Decimal          `json:"net_profit"`
	TotalSalaryFund decimal.Decimal          `json:"total_salary_fund"`
	EmployeeCount   int                      `json:"employee_count"`
	AverageSalary   decimal.Decimal          `json:"average_salary"`
	CalculatedBy    string                   `json:"calculated_by"`
	CreatedAt       string                   `json:"created_at"`
	PerEmployee     []EmployeeSalaryResponse `json:"per_employee"`
}

type CalculationResponse struct {
	ID              string          `json:"id"`
	Month           string          `json:"month"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	TotalSalaryFund decimal.Decimal `json:"total_salary_fund"`
	EmployeeCount   int             `json:"employee_count"`
	AverageSalary   decimal.Decimal `json:"average_salary"`
	CalculatedBy    string          `json:"calculated_by"`
	CreatedAt       string          `json:"created_at"`
}

type SalaryRecordResponse struct {
	ID            string          `json:"id"`
	CalculationID string          `json:"calculation_id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	Month         string          `json:"month"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Bonus         decimal.Decimal `json:"bonus"`
	TotalSalary   decimal.Decimal `json:"total_salary"`
	Status        string          `json:"status"`
	PaidAt        *string         `json:"paid_at,omitempty"`
}

type MarkPaidRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
