package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerSource provides confirmed transaction profit for a month. Read-only.
type LedgerSource interface {
	// SumCompletedProfit sums profit over completed transactions whose
	// transaction_date falls within the month.
	SumCompletedProfit(ctx context.Context, month string) (decimal.Decimal, error)
	// SumProfitByEmployee returns the same sum grouped by employee id.
	SumProfitByEmployee(ctx context.Context, month string) (map[string]decimal.Decimal, error)
}

// ExpenseSource provides recorded expense totals for a month. Read-only.
type ExpenseSource interface {
	SumExpenses(ctx context.Context, month string) (decimal.Decimal, error)
}

// RosterSource provides the active employee snapshot. Read-only.
type RosterSource interface {
	ListActiveEmployees(ctx context.Context, month string) ([]EmployeeFact, error)
}

// PayrollStore persists calculation runs. WriteCalculation commits the
// record and all salary rows together or not at all.
type PayrollStore interface {
	WriteCalculation(ctx context.Context, record CalculationRecord, salaries []SalaryRecord) (CalculationRecord, error)
	ListCalculations(ctx context.Context) ([]CalculationRecord, error)
	GetCalculationByID(ctx context.Context, id string) (CalculationRecord, error)
	ListSalaryRecords(ctx context.Context, month string) ([]SalaryRecord, error)
	MarkSalariesPaid(ctx context.Context, ids []string, paidBy string) error
}
