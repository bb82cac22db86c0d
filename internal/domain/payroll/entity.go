package payroll

import (
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// CalculationRecord is one payroll run for a month. Runs are append-only:
// re-running a month inserts a new record, prior runs are never mutated.
type CalculationRecord struct {
	ID              string
	Month           string
	TotalProfit     decimal.Decimal
	TotalExpenses   decimal.Decimal
	NetProfit       decimal.Decimal
	TotalSalaryFund decimal.Decimal
	EmployeeCount   int
	AverageSalary   decimal.Decimal
	CalculatedBy    string
	CreatedAt       time.Time
}

// SalaryStatus enum
type SalaryStatus string

const (
	SalaryStatusPending SalaryStatus = "pending"
	SalaryStatusPaid    SalaryStatus = "paid"
)

// SalaryRecord is one employee's compensation line within a run.
type SalaryRecord struct {
	ID            string
	CalculationID string
	EmployeeID    string
	Month         string
	BaseSalary    decimal.Decimal
	Bonus         decimal.Decimal
	TotalSalary   decimal.Decimal
	Status        SalaryStatus
	PaidAt        *time.Time
	PaidBy        *string
	CreatedAt     time.Time

	// Joined fields
	EmployeeName *string
}

// EmployeeFact is the read-only roster snapshot the aggregator consumes.
type EmployeeFact struct {
	EmployeeID     string
	FullName       string
	Role           user.Role
	PercentageRate decimal.Decimal
	IsActive       bool
}
