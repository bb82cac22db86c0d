package payroll

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/payroll"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== in-memory sources and store =====

type fakeLedger struct {
	totalProfit      decimal.Decimal
	profitByEmployee map[string]decimal.Decimal
	err              error
	calls            int
}

func (f *fakeLedger) SumCompletedProfit(ctx context.Context, month string) (decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.totalProfit, nil
}

func (f *fakeLedger) SumProfitByEmployee(ctx context.Context, month string) (map[string]decimal.Decimal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profitByEmployee, nil
}

type fakeExpenses struct {
	total decimal.Decimal
	err   error
}

func (f *fakeExpenses) SumExpenses(ctx context.Context, month string) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.total, nil
}

type fakeRoster struct {
	employees []payroll.EmployeeFact
	err       error
}

func (f *fakeRoster) ListActiveEmployees(ctx context.Context, month string) ([]payroll.EmployeeFact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.employees, nil
}

type fakeStore struct {
	writeErr     error
	calculations []payroll.CalculationRecord
	salaries     [][]payroll.SalaryRecord
}

func (f *fakeStore) WriteCalculation(ctx context.Context, record payroll.CalculationRecord, salaries []payroll.SalaryRecord) (payroll.CalculationRecord, error) {
	if f.writeErr != nil {
		return payroll.CalculationRecord{}, f.writeErr
	}
	record.ID = fmt.Sprintf("calc-%d", len(f.calculations)+1)
	f.calculations = append(f.calculations, record)
	f.salaries = append(f.salaries, salaries)
	return record, nil
}

func (f *fakeStore) ListCalculations(ctx context.Context) ([]payroll.CalculationRecord, error) {
	return f.calculations, nil
}

func (f *fakeStore) GetCalculationByID(ctx context.Context, id string) (payroll.CalculationRecord, error) {
	for _, c := range f.calculations {
		if c.ID == id {
			return c, nil
		}
	}
	return payroll.CalculationRecord{}, payroll.ErrCalculationNotFound
}

func (f *fakeStore) ListSalaryRecords(ctx context.Context, month string) ([]payroll.SalaryRecord, error) {
	var result []payroll.SalaryRecord
	for _, batch := range f.salaries {
		for _, sr := range batch {
			if sr.Month == month {
				result = append(result, sr)
			}
		}
	}
	return result, nil
}

func (f *fakeStore) MarkSalariesPaid(ctx context.Context, ids []string, paidBy string) error {
	return nil
}

type fakeActivityLog struct {
	entries []activitylog.Entry
}

func (f *fakeActivityLog) Append(ctx context.Context, entry activitylog.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivityLog) List(ctx context.Context, limit int) ([]activitylog.Entry, error) {
	return f.entries, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fourRoleRoster() []payroll.EmployeeFact {
	return []payroll.EmployeeFact{
		{EmployeeID: "e-ceo", FullName: "Alice", Role: user.RoleCEO, PercentageRate: decimal.Zero, IsActive: true},
		{EmployeeID: "e-mgr", FullName: "Bob", Role: user.RoleManager, PercentageRate: decimal.Zero, IsActive: true},
		{EmployeeID: "e-cfo", FullName: "Carol", Role: user.RoleCFO, PercentageRate: decimal.Zero, IsActive: true},
		{EmployeeID: "e-hr", FullName: "Dave", Role: user.RoleHR, PercentageRate: decimal.Zero, IsActive: true},
	}
}

func newTestService(ledger *fakeLedger, expenses *fakeExpenses, roster *fakeRoster, store *fakeStore) payroll.PayrollService {
	return NewPayrollService(ledger, expenses, roster, store, dec("0.30"), payroll.DefaultRolePolicy(), &fakeActivityLog{})
}

// ===== Calculate =====

func TestCalculate_InvalidMonth(t *testing.T) {
	ledger := &fakeLedger{}
	store := &fakeStore{}
	service := newTestService(ledger, &fakeExpenses{}, &fakeRoster{}, store)

	for _, month := range []string{"", "2025", "2025-13", "2025-1", "not-a-month"} {
		_, err := service.Calculate(context.Background(), month, "actor-1")
		assert.ErrorIs(t, err, payroll.ErrInvalidMonth, "month %q", month)
	}

	// Rejected before any source read or write.
	assert.Zero(t, ledger.calls)
	assert.Empty(t, store.calculations)
}

func TestCalculate_SourceUnavailable(t *testing.T) {
	ledger := &fakeLedger{err: errors.New("connection refused")}
	store := &fakeStore{}
	service := newTestService(ledger, &fakeExpenses{}, &fakeRoster{}, store)

	_, err := service.Calculate(context.Background(), "2025-06", "actor-1")

	assert.ErrorIs(t, err, payroll.ErrSourceUnavailable)
	assert.Empty(t, store.calculations, "nothing may be written when a read fails")
}

func TestCalculate_WriteFailed(t *testing.T) {
	store := &fakeStore{writeErr: errors.New("deadlock detected")}
	service := newTestService(
		&fakeLedger{totalProfit: dec("1000")},
		&fakeExpenses{total: dec("100")},
		&fakeRoster{employees: fourRoleRoster()},
		store,
	)

	_, err := service.Calculate(context.Background(), "2025-06", "actor-1")

	assert.ErrorIs(t, err, payroll.ErrWriteFailed)
	assert.Empty(t, store.calculations, "a failed write leaves no calculation readable")
	assert.Empty(t, store.salaries, "a failed write leaves no salary records readable")
}

func TestCalculate_ExampleMonth(t *testing.T) {
	// profit 10000, expenses 2000 -> net 8000, fund 8000*0.30 = 2400,
	// four employees -> average 600.
	store := &fakeStore{}
	service := newTestService(
		&fakeLedger{totalProfit: dec("10000")},
		&fakeExpenses{total: dec("2000")},
		&fakeRoster{employees: fourRoleRoster()},
		store,
	)

	summary, err := service.Calculate(context.Background(), "2025-06", "actor-1")
	require.NoError(t, err)

	assert.Equal(t, "2025-06", summary.Month)
	assert.True(t, summary.TotalProfit.Equal(dec("10000")), "total profit %s", summary.TotalProfit)
	assert.True(t, summary.TotalExpenses.Equal(dec("2000")))
	assert.True(t, summary.NetProfit.Equal(dec("8000")))
	assert.True(t, summary.TotalSalaryFund.Equal(dec("2400")), "fund %s", summary.TotalSalaryFund)
	assert.Equal(t, 4, summary.EmployeeCount)
	assert.True(t, summary.AverageSalary.Equal(dec("600")), "average %s", summary.AverageSalary)
	assert.Equal(t, "actor-1", summary.CalculatedBy)
	require.Len(t, summary.PerEmployee, 4)

	// Base salaries follow the role table: 10/10/5/5 percent of net.
	byID := map[string]decimal.Decimal{}
	for _, e := range summary.PerEmployee {
		byID[e.EmployeeID] = e.BaseSalary
	}
	assert.True(t, byID["e-ceo"].Equal(dec("800")))
	assert.True(t, byID["e-mgr"].Equal(dec("800")))
	assert.True(t, byID["e-cfo"].Equal(dec("400")))
	assert.True(t, byID["e-hr"].Equal(dec("400")))

	require.Len(t, store.calculations, 1)
	require.Len(t, store.salaries[0], 4)
	for _, sr := range store.salaries[0] {
		assert.Equal(t, payroll.SalaryStatusPending, sr.Status)
		assert.Equal(t, "2025-06", sr.Month)
	}
}

func TestCalculate_BonusAttribution(t *testing.T) {
	// An employee with a percentage rate earns a share of their own
	// completed-transaction profit on top of any base salary.
	roster := []payroll.EmployeeFact{
		{EmployeeID: "e-1", FullName: "Eve", Role: user.RoleEmployee, PercentageRate: dec("20"), IsActive: true},
	}
	service := newTestService(
		&fakeLedger{
			totalProfit:      dec("5000"),
			profitByEmployee: map[string]decimal.Decimal{"e-1": dec("1500")},
		},
		&fakeExpenses{total: dec("1000")},
		&fakeRoster{employees: roster},
		&fakeStore{},
	)

	summary, err := service.Calculate(context.Background(), "2025-06", "actor-1")
	require.NoError(t, err)

	require.Len(t, summary.PerEmployee, 1)
	e := summary.PerEmployee[0]
	assert.True(t, e.BaseSalary.IsZero(), "employee role has no base share")
	assert.True(t, e.Bonus.Equal(dec("300")), "20%% of 1500, got %s", e.Bonus)
	assert.True(t, e.TotalSalary.Equal(dec("300")))
}

func TestCalculate_LossMonthZeroFund(t *testing.T) {
	// Expenses above profit: the fund floors at zero and nobody is paid,
	// but the run is still recorded.
	store := &fakeStore{}
	service := newTestService(
		&fakeLedger{totalProfit: dec("1000")},
		&fakeExpenses{total: dec("3000")},
		&fakeRoster{employees: fourRoleRoster()},
		store,
	)

	summary, err := service.Calculate(context.Background(), "2025-06", "actor-1")
	require.NoError(t, err)

	assert.True(t, summary.NetProfit.Equal(dec("-2000")))
	assert.True(t, summary.TotalSalaryFund.IsZero())
	assert.True(t, summary.AverageSalary.IsZero())
	for _, e := range summary.PerEmployee {
		assert.True(t, e.TotalSalary.IsZero(), "employee %s", e.EmployeeID)
	}
	require.Len(t, store.calculations, 1)
}

func TestCalculate_EmptyRoster(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(
		&fakeLedger{totalProfit: dec("10000")},
		&fakeExpenses{total: dec("2000")},
		&fakeRoster{},
		store,
	)

	summary, err := service.Calculate(context.Background(), "2025-06", "actor-1")
	require.NoError(t, err)

	assert.Equal(t, 0, summary.EmployeeCount)
	assert.True(t, summary.AverageSalary.IsZero(), "no division by zero on an empty roster")
	assert.True(t, summary.TotalSalaryFund.Equal(dec("2400")), "fund is computed regardless")
	assert.Empty(t, summary.PerEmployee)
	require.Len(t, store.calculations, 1)
}

func TestCalculate_FundIsHardCeiling(t *testing.T) {
	// Raw role formulas plus bonuses exceed the fund; the batch is scaled
	// down so the paid total never passes the fund.
	roster := []payroll.EmployeeFact{
		{EmployeeID: "e-ceo", FullName: "Alice", Role: user.RoleCEO, PercentageRate: dec("25"), IsActive: true},
		{EmployeeID: "e-mgr", FullName: "Bob", Role: user.RoleManager, PercentageRate: dec("25"), IsActive: true},
	}
	service := newTestService(
		&fakeLedger{
			totalProfit: dec("10000"),
			profitByEmployee: map[string]decimal.Decimal{
				"e-ceo": dec("6000"),
				"e-mgr": dec("4000"),
			},
		},
		&fakeExpenses{total: dec("2000")},
		&fakeRoster{employees: roster},
		&fakeStore{},
	)

	summary, err := service.Calculate(context.Background(), "2025-06", "actor-1")
	require.NoError(t, err)

	// Raw: base 800+800, bonus 1500+1000 = 4100 > fund 2400.
	paidTotal := decimal.Zero
	for _, e := range summary.PerEmployee {
		paidTotal = paidTotal.Add(e.TotalSalary)
	}
	assert.True(t, paidTotal.LessThanOrEqual(summary.TotalSalaryFund),
		"paid %s exceeds fund %s", paidTotal, summary.TotalSalaryFund)
	// Scaling is proportional, not a truncation of the last record.
	assert.True(t, summary.PerEmployee[0].TotalSalary.GreaterThan(summary.PerEmployee[1].TotalSalary))
}

func TestCalculate_RepeatRunsAppend(t *testing.T) {
	// Re-running a month appends a second calculation with identical
	// figures; the first run is untouched.
	store := &fakeStore{}
	service := newTestService(
		&fakeLedger{totalProfit: dec("10000")},
		&fakeExpenses{total: dec("2000")},
		&fakeRoster{employees: fourRoleRoster()},
		store,
	)

	first, err := service.Calculate(context.Background(), "2025-06", "actor-1")
	require.NoError(t, err)
	second, err := service.Calculate(context.Background(), "2025-06", "actor-2")
	require.NoError(t, err)

	require.Len(t, store.calculations, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.TotalSalaryFund.Equal(second.TotalSalaryFund))
	assert.True(t, first.AverageSalary.Equal(second.AverageSalary))
	assert.True(t, store.calculations[0].NetProfit.Equal(store.calculations[1].NetProfit))
}

func TestCalculate_AppendsAuditEntry(t *testing.T) {
	log := &fakeActivityLog{}
	service := NewPayrollService(
		&fakeLedger{totalProfit: dec("10000")},
		&fakeExpenses{total: dec("2000")},
		&fakeRoster{employees: fourRoleRoster()},
		&fakeStore{},
		dec("0.30"), payroll.DefaultRolePolicy(), log,
	)

	summary, err := service.Calculate(context.Background(), "2025-06", "actor-1")
	require.NoError(t, err)

	require.Len(t, log.entries, 1)
	entry := log.entries[0]
	assert.Equal(t, activitylog.ActionPayrollRun, entry.Action)
	assert.Equal(t, "actor-1", entry.ActorID)
	require.NotNil(t, entry.EntityID)
	assert.Equal(t, summary.ID, *entry.EntityID)
}

func TestCalculate_NoAuditEntryOnFailedWrite(t *testing.T) {
	log := &fakeActivityLog{}
	service := NewPayrollService(
		&fakeLedger{totalProfit: dec("10000")},
		&fakeExpenses{total: dec("2000")},
		&fakeRoster{employees: fourRoleRoster()},
		&fakeStore{writeErr: errors.New("deadlock detected")},
		dec("0.30"), payroll.DefaultRolePolicy(), log,
	)

	_, err := service.Calculate(context.Background(), "2025-06", "actor-1")

	require.Error(t, err)
	assert.Empty(t, log.entries)
}

func TestMarkPaid_AppendsAuditEntry(t *testing.T) {
	log := &fakeActivityLog{}
	service := NewPayrollService(
		&fakeLedger{}, &fakeExpenses{}, &fakeRoster{}, &fakeStore{},
		dec("0.30"), payroll.DefaultRolePolicy(), log,
	)

	err := service.MarkPaid(context.Background(), payroll.MarkPaidRequest{
		RecordIDs: []string{"s-1", "s-2"},
	}, "actor-1")
	require.NoError(t, err)

	require.Len(t, log.entries, 1)
	assert.Equal(t, activitylog.ActionSalariesPaid, log.entries[0].Action)
	assert.Equal(t, "actor-1", log.entries[0].ActorID)
}

// ===== read paths =====

func TestListSalaryRecords_InvalidMonth(t *testing.T) {
	service := newTestService(&fakeLedger{}, &fakeExpenses{}, &fakeRoster{}, &fakeStore{})

	_, err := service.ListSalaryRecords(context.Background(), "06-2025")

	assert.ErrorIs(t, err, payroll.ErrInvalidMonth)
}

func TestGetCalculation_NotFound(t *testing.T) {
	service := newTestService(&fakeLedger{}, &fakeExpenses{}, &fakeRoster{}, &fakeStore{})

	_, err := service.GetCalculation(context.Background(), "missing")

	assert.ErrorIs(t, err, payroll.ErrCalculationNotFound)
}

func TestMarkPaid_EmptyRequest(t *testing.T) {
	service := newTestService(&fakeLedger{}, &fakeExpenses{}, &fakeRoster{}, &fakeStore{})

	err := service.MarkPaid(context.Background(), payroll.MarkPaidRequest{}, "actor-1")

	assert.Error(t, err)
}
