package payroll

import "context"

type PayrollService interface {
	// Calculate runs the payroll aggregation for a month and persists one
	// CalculationRecord plus one SalaryRecord per active employee.
	Calculate(ctx context.Context, month string, actorID string) (CalculationSummary, error)

	ListCalculations(ctx context.Context) ([]CalculationResponse, error)
	GetCalculation(ctx context.Context, id string) (CalculationResponse, error)
	ListSalaryRecords(ctx context.Context, month string) ([]SalaryRecordResponse, error)
	MarkPaid(ctx context.Context, req MarkPaidRequest, actorID string) error
}
