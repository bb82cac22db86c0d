package transaction

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/bank"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/employee"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/transaction"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== fakes =====

type fakeTransactionRepo struct {
	transactions map[string]transaction.Transaction
	nextID       int
	createErr    error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: map[string]transaction.Transaction{}}
}

func (f *fakeTransactionRepo) Create(ctx context.Context, t transaction.Transaction) (transaction.Transaction, error) {
	if f.createErr != nil {
		return transaction.Transaction{}, f.createErr
	}
	f.nextID++
	t.ID = fmt.Sprintf("tx-%d", f.nextID)
	t.CreatedAt = time.Now()
	f.transactions[t.ID] = t
	return t, nil
}

func (f *fakeTransactionRepo) GetByID(ctx context.Context, id string) (transaction.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok {
		return transaction.Transaction{}, transaction.ErrTransactionNotFound
	}
	return t, nil
}

func (f *fakeTransactionRepo) List(ctx context.Context, filter transaction.TransactionFilter) ([]transaction.Transaction, int64, error) {
	var result []transaction.Transaction
	for _, t := range f.transactions {
		result = append(result, t)
	}
	return result, int64(len(result)), nil
}

func (f *fakeTransactionRepo) UpdateStatus(ctx context.Context, id string, status transaction.TransactionStatus) error {
	t, ok := f.transactions[id]
	if !ok {
		return transaction.ErrTransactionNotFound
	}
	t.Status = status
	f.transactions[id] = t
	return nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.transactions[id]; !ok {
		return transaction.ErrTransactionNotFound
	}
	delete(f.transactions, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return nil, nil
}

type fakeBankRepo struct {
	cards map[string]bank.Card
}

func (f *fakeBankRepo) CreateAccount(ctx context.Context, a bank.Account) (bank.Account, error) {
	return a, nil
}
func (f *fakeBankRepo) GetAccountByID(ctx context.Context, id string) (bank.Account, error) {
	return bank.Account{}, bank.ErrAccountNotFound
}
func (f *fakeBankRepo) ListAccounts(ctx context.Context, activeOnly bool) ([]bank.Account, error) {
	return nil, nil
}
func (f *fakeBankRepo) SetAccountActive(ctx context.Context, id string, active bool) error {
	return nil
}
func (f *fakeBankRepo) CreateCard(ctx context.Context, c bank.Card) (bank.Card, error) { return c, nil }
func (f *fakeBankRepo) GetCardByID(ctx context.Context, id string) (bank.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return bank.Card{}, bank.ErrCardNotFound
	}
	return c, nil
}
func (f *fakeBankRepo) ListCards(ctx context.Context, activeOnly bool) ([]bank.Card, error) {
	return nil, nil
}
func (f *fakeBankRepo) AssignCard(ctx context.Context, cardID, employeeID string) error { return nil }
func (f *fakeBankRepo) UnassignCard(ctx context.Context, cardID string) error           { return nil }

func (f *fakeBankRepo) DecrementRemaining(ctx context.Context, cardID string) error {
	c, ok := f.cards[cardID]
	if !ok {
		return bank.ErrCardNotFound
	}
	if c.RemainingToday <= 0 {
		return bank.ErrCardQuotaExhausted
	}
	c.RemainingToday--
	f.cards[cardID] = c
	return nil
}

func (f *fakeBankRepo) RestoreRemaining(ctx context.Context, cardID string) error {
	c, ok := f.cards[cardID]
	if !ok {
		return bank.ErrCardNotFound
	}
	if c.RemainingToday < c.DailyLimit {
		c.RemainingToday++
		f.cards[cardID] = c
	}
	return nil
}

func (f *fakeBankRepo) ResetDailyLimits(ctx context.Context) (int, error) { return 0, nil }

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

// ===== helpers =====

func activeEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:       id,
		FullName: "Test Employee",
		Role:     user.RoleEmployee,
		IsActive: true,
	}
}

func validCreateRequest(employeeID string) transaction.CreateTransactionRequest {
	return transaction.CreateTransactionRequest{
		EmployeeID:      employeeID,
		Amount:          decimal.NewFromInt(100),
		Profit:          decimal.NewFromInt(10),
		TransactionDate: "2025-06-15",
	}
}

// ===== tests =====

func TestTransactionCreate_StartsPending(t *testing.T) {
	txRepo := newFakeTransactionRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{"e-1": activeEmployee("e-1")}}
	log := &fakeActivityLog{}
	service := NewTransactionService(txRepo, empRepo, &fakeBankRepo{}, log)

	created, err := service.Create(context.Background(), validCreateRequest("e-1"), "actor-1")
	require.NoError(t, err)

	assert.Equal(t, string(transaction.StatusPending), created.Status)
	assert.Len(t, log.entries, 1)
}

func TestTransactionCreate_InactiveEmployee(t *testing.T) {
	inactive := activeEmployee("e-1")
	inactive.IsActive = false
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{"e-1": inactive}}
	service := NewTransactionService(newFakeTransactionRepo(), empRepo, &fakeBankRepo{}, &fakeActivityLog{})

	_, err := service.Create(context.Background(), validCreateRequest("e-1"), "actor-1")

	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestTransactionCreate_PinkCardConsumesQuota(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{"e-1": activeEmployee("e-1")}}
	bankRepo := &fakeBankRepo{cards: map[string]bank.Card{
		"card-1": {ID: "card-1", Color: bank.CardColorPink, DailyLimit: 2, RemainingToday: 1, IsActive: true},
	}}
	service := NewTransactionService(newFakeTransactionRepo(), empRepo, bankRepo, &fakeActivityLog{})

	req := validCreateRequest("e-1")
	cardID := "card-1"
	req.CardID = &cardID

	_, err := service.Create(context.Background(), req, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, 0, bankRepo.cards["card-1"].RemainingToday)

	// Second use of the same card today hits the quota.
	_, err = service.Create(context.Background(), req, "actor-1")
	assert.ErrorIs(t, err, bank.ErrCardQuotaExhausted)
}

func TestTransactionCreate_QuotaRestoredOnInsertFailure(t *testing.T) {
	txRepo := newFakeTransactionRepo()
	txRepo.createErr = errors.New("connection reset")
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{"e-1": activeEmployee("e-1")}}
	bankRepo := &fakeBankRepo{cards: map[string]bank.Card{
		"card-1": {ID: "card-1", Color: bank.CardColorPink, DailyLimit: 2, RemainingToday: 2, IsActive: true},
	}}
	service := NewTransactionService(txRepo, empRepo, bankRepo, &fakeActivityLog{})

	req := validCreateRequest("e-1")
	cardID := "card-1"
	req.CardID = &cardID

	_, err := service.Create(context.Background(), req, "actor-1")
	require.Error(t, err)

	// The failed insert recorded nothing, so the quota unit comes back.
	assert.Equal(t, 2, bankRepo.cards["card-1"].RemainingToday)
	assert.Empty(t, txRepo.transactions)
}

func TestTransactionCreate_RegularCardUnmetered(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{"e-1": activeEmployee("e-1")}}
	bankRepo := &fakeBankRepo{cards: map[string]bank.Card{
		"card-1": {ID: "card-1", Color: bank.CardColorRegular, RemainingToday: 0, IsActive: true},
	}}
	service := NewTransactionService(newFakeTransactionRepo(), empRepo, bankRepo, &fakeActivityLog{})

	req := validCreateRequest("e-1")
	cardID := "card-1"
	req.CardID = &cardID

	_, err := service.Create(context.Background(), req, "actor-1")
	assert.NoError(t, err)
}

func TestTransactionUpdateStatus_PendingToCompleted(t *testing.T) {
	txRepo := newFakeTransactionRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{"e-1": activeEmployee("e-1")}}
	service := NewTransactionService(txRepo, empRepo, &fakeBankRepo{}, &fakeActivityLog{})

	created, err := service.Create(context.Background(), validCreateRequest("e-1"), "actor-1")
	require.NoError(t, err)

	err = service.UpdateStatus(context.Background(), transaction.UpdateStatusRequest{
		ID:     created.ID,
		Status: string(transaction.StatusCompleted),
	}, "actor-1")
	require.NoError(t, err)

	assert.Equal(t, transaction.StatusCompleted, txRepo.transactions[created.ID].Status)
}

func TestTransactionUpdateStatus_SettledIsImmutable(t *testing.T) {
	txRepo := newFakeTransactionRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{"e-1": activeEmployee("e-1")}}
	service := NewTransactionService(txRepo, empRepo, &fakeBankRepo{}, &fakeActivityLog{})

	created, err := service.Create(context.Background(), validCreateRequest("e-1"), "actor-1")
	require.NoError(t, err)
	require.NoError(t, service.UpdateStatus(context.Background(), transaction.UpdateStatusRequest{
		ID:     created.ID,
		Status: string(transaction.StatusCompleted),
	}, "actor-1"))

	err = service.UpdateStatus(context.Background(), transaction.UpdateStatusRequest{
		ID:     created.ID,
		Status: string(transaction.StatusFailed),
	}, "actor-1")

	assert.ErrorIs(t, err, transaction.ErrStatusNotTransitable)
}

func TestTransactionDelete_CompletedIsProtected(t *testing.T) {
	txRepo := newFakeTransactionRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{"e-1": activeEmployee("e-1")}}
	service := NewTransactionService(txRepo, empRepo, &fakeBankRepo{}, &fakeActivityLog{})

	created, err := service.Create(context.Background(), validCreateRequest("e-1"), "actor-1")
	require.NoError(t, err)
	require.NoError(t, service.UpdateStatus(context.Background(), transaction.UpdateStatusRequest{
		ID:     created.ID,
		Status: string(transaction.StatusCompleted),
	}, "actor-1"))

	err = service.Delete(context.Background(), created.ID, "actor-1")

	assert.ErrorIs(t, err, transaction.ErrAlreadyCompleted)
}
