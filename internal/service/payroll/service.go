package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/payroll"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	ledger   payroll.LedgerSource
	expenses payroll.ExpenseSource
	roster   payroll.RosterSource
	store    payroll.PayrollStore

	fundRatio   decimal.Decimal
	policy      payroll.RolePolicy
	activityLog activitylog.ActivityLogRepository
}

func NewPayrollService(
	ledger payroll.LedgerSource,
	expenses payroll.ExpenseSource,
	roster payroll.RosterSource,
	store payroll.PayrollStore,
	fundRatio decimal.Decimal,
	policy payroll.RolePolicy,
	activityLog activitylog.ActivityLogRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		ledger:      ledger,
		expenses:    expenses,
		roster:      roster,
		store:       store,
		fundRatio:   fundRatio,
		policy:      policy,
		activityLog: activityLog,
	}
}

// snapshot holds the three independent reads a run is computed from.
type snapshot struct {
	totalProfit      decimal.Decimal
	profitByEmployee map[string]decimal.Decimal
	totalExpenses    decimal.Decimal
	employees        []payroll.EmployeeFact
}

func (s *PayrollServiceImpl) Calculate(ctx context.Context, month string, actorID string) (payroll.CalculationSummary, error) {
	// Reject a malformed period key before any I/O.
	if !validator.IsValidMonthKey(month) {
		return payroll.CalculationSummary{}, fmt.Errorf("%w: %q", payroll.ErrInvalidMonth, month)
	}

	snap, err := s.fetchSnapshot(ctx, month)
	if err != nil {
		return payroll.CalculationSummary{}, fmt.Errorf("%w: %v", payroll.ErrSourceUnavailable, err)
	}

	netProfit := snap.totalProfit.Sub(snap.totalExpenses)

	// The fund floors at zero: a loss month allocates nothing to payroll.
	totalSalaryFund := decimal.Zero
	if netProfit.Sign() > 0 {
		totalSalaryFund = netProfit.Mul(s.fundRatio).Round(2)
	}

	salaries := s.buildSalaries(month, netProfit, totalSalaryFund, snap)

	employeeCount := len(snap.employees)
	averageSalary := decimal.Zero
	if employeeCount > 0 {
		totalSalaryFundPerEmployee := totalSalaryFund.Div(decimal.NewFromInt(int64(employeeCount)))
		averageSalary = totalSalaryFundPerEmployee.Round(2)
	}

	record := payroll.CalculationRecord{
		Month:           month,
		TotalProfit:     snap.totalProfit,
		TotalExpenses:   snap.totalExpenses,
		NetProfit:       netProfit,
		TotalSalaryFund: totalSalaryFund,
		EmployeeCount:   employeeCount,
		AverageSalary:   averageSalary,
		CalculatedBy:    actorID,
	}

	written, err := s.store.WriteCalculation(ctx, record, salaries)
	if err != nil {
		return payroll.CalculationSummary{}, fmt.Errorf("%w: %v", payroll.ErrWriteFailed, err)
	}

	detail := fmt.Sprintf("month %s, %d employees", month, employeeCount)
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionPayrollRun,
		EntityType: "payroll_calculation",
		EntityID:   &written.ID,
		Detail:     &detail,
	})

	return s.buildSummary(written, salaries, snap), nil
}

// fetchSnapshot issues the independent reads concurrently. The write in
// Calculate happens only after every read has succeeded.
func (s *PayrollServiceImpl) fetchSnapshot(ctx context.Context, month string) (snapshot, error) {
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.ledger.SumCompletedProfit(gctx, month)
		if err != nil {
			return fmt.Errorf("ledger profit sum: %w", err)
		}
		snap.totalProfit = total
		return nil
	})
	g.Go(func() error {
		byEmployee, err := s.ledger.SumProfitByEmployee(gctx, month)
		if err != nil {
			return fmt.Errorf("ledger profit by employee: %w", err)
		}
		snap.profitByEmployee = byEmployee
		return nil
	})
	g.Go(func() error {
		total, err := s.expenses.SumExpenses(gctx, month)
		if err != nil {
			return fmt.Errorf("expense sum: %w", err)
		}
		snap.totalExpenses = total
		return nil
	})
	g.Go(func() error {
		employees, err := s.roster.ListActiveEmployees(gctx, month)
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		snap.employees = employees
		return nil
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// buildSalaries derives one pending SalaryRecord per active employee. The
// batch is scaled down proportionally when the raw role formulas would
// exceed the salary fund, so the fund is a hard ceiling.
func (s *PayrollServiceImpl) buildSalaries(month string, netProfit, totalSalaryFund decimal.Decimal, snap snapshot) []payroll.SalaryRecord {
	salaries := make([]payroll.SalaryRecord, 0, len(snap.employees))
	rawTotal := decimal.Zero

	for _, emp := range snap.employees {
		baseSalary := s.policy.BaseSalary(emp.Role, netProfit)
		bonus := payroll.Bonus(snap.profitByEmployee[emp.EmployeeID], emp.PercentageRate)
		totalSalary := baseSalary.Add(bonus)
		rawTotal = rawTotal.Add(totalSalary)

		name := emp.FullName
		salaries = append(salaries, payroll.SalaryRecord{
			EmployeeID:   emp.EmployeeID,
			Month:        month,
			BaseSalary:   baseSalary,
			Bonus:        bonus,
			TotalSalary:  totalSalary,
			Status:       payroll.SalaryStatusPending,
			EmployeeName: &name,
		})
	}

	if rawTotal.GreaterThan(totalSalaryFund) && rawTotal.Sign() > 0 {
		scale := totalSalaryFund.Div(rawTotal)
		for i := range salaries {
			salaries[i].BaseSalary = salaries[i].BaseSalary.Mul(scale).RoundDown(2)
			salaries[i].Bonus = salaries[i].Bonus.Mul(scale).RoundDown(2)
			salaries[i].TotalSalary = salaries[i].BaseSalary.Add(salaries[i].Bonus)
		}
	}

	return salaries
}

func (s *PayrollServiceImpl) buildSummary(record payroll.CalculationRecord, salaries []payroll.SalaryRecord, snap snapshot) payroll.CalculationSummary {
	roleByID := make(map[string]string, len(snap.employees))
	for _, emp := range snap.employees {
		roleByID[emp.EmployeeID] = string(emp.Role)
	}

	perEmployee := make([]payroll.EmployeeSalaryResponse, 0, len(salaries))
	for _, sr := range salaries {
		name := ""
		if sr.EmployeeName != nil {
			name = *sr.EmployeeName
		}
		perEmployee = append(perEmployee, payroll.EmployeeSalaryResponse{
			EmployeeID:   sr.EmployeeID,
			EmployeeName: name,
			Role:         roleByID[sr.EmployeeID],
			BaseSalary:   sr.BaseSalary,
			Bonus:        sr.Bonus,
			TotalSalary:  sr.TotalSalary,
		})
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return payroll.CalculationSummary{
		ID:              record.ID,
		Month:           record.Month,
		TotalProfit:     record.TotalProfit,
		TotalExpenses:   record.TotalExpenses,
		NetProfit:       record.NetProfit,
		TotalSalaryFund: record.TotalSalaryFund,
		EmployeeCount:   record.EmployeeCount,
		AverageSalary:   record.AverageSalary,
		CalculatedBy:    record.CalculatedBy,
		CreatedAt:       createdAt.Format(time.RFC3339),
		PerEmployee:     perEmployee,
	}
}

func (s *PayrollServiceImpl) ListCalculations(ctx context.Context) ([]payroll.CalculationResponse, error) {
	records, err := s.store.ListCalculations(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.CalculationResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToCalculationResponse(r))
	}
	return result, nil
}

func (s *PayrollServiceImpl) GetCalculation(ctx context.Context, id string) (payroll.CalculationResponse, error) {
	record, err := s.store.GetCalculationByID(ctx, id)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}
	return mapToCalculationResponse(record), nil
}

func (s *PayrollServiceImpl) ListSalaryRecords(ctx context.Context, month string) ([]payroll.SalaryRecordResponse, error) {
	if !validator.IsValidMonthKey(month) {
		return nil, fmt.Errorf("%w: %q", payroll.ErrInvalidMonth, month)
	}

	records, err := s.store.ListSalaryRecords(ctx, month)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.SalaryRecordResponse, 0, len(records))
	for _, r := range records {
		var paidAtStr *string
		if r.PaidAt != nil {
			str := r.PaidAt.Format(time.RFC3339)
			paidAtStr = &str
		}
		name := ""
		if r.EmployeeName != nil {
			name = *r.EmployeeName
		}
		result = append(result, payroll.SalaryRecordResponse{
			ID:            r.ID,
			CalculationID: r.CalculationID,
			EmployeeID:    r.EmployeeID,
			EmployeeName:  name,
			Month:         r.Month,
			BaseSalary:    r.BaseSalary,
			Bonus:         r.Bonus,
			TotalSalary:   r.TotalSalary,
			Status:        string(r.Status),
			PaidAt:        paidAtStr,
		})
	}
	return result, nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest, actorID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.store.MarkSalariesPaid(ctx, req.RecordIDs, actorID); err != nil {
		return err
	}

	detail := fmt.Sprintf("%d salary records", len(req.RecordIDs))
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionSalariesPaid,
		EntityType: "salary_record",
		Detail:     &detail,
	})

	return nil
}

func mapToCalculationResponse(r payroll.CalculationRecord) payroll.CalculationResponse {
	return payroll.CalculationResponse{
		ID:              r.ID,
		Month:           r.Month,
		TotalProfit:     r.TotalProfit,
		TotalExpenses:   r.TotalExpenses,
		NetProfit:       r.NetProfit,
		TotalSalaryFund: r.TotalSalaryFund,
		EmployeeCount:   r.EmployeeCount,
		AverageSalary:   r.AverageSalary,
		CalculatedBy:    r.CalculatedBy,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}
