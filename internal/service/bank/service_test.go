package bank

import (
	"context"
	"fmt"
	"testing"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/bank"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/employee"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBankRepo struct {
	accounts map[string]bank.Account
	cards    map[string]bank.Card
	nextID   int
}

func newFakeBankRepo() *fakeBankRepo {
	return &fakeBankRepo{
		accounts: map[string]bank.Account{},
		cards:    map[string]bank.Card{},
	}
}

func (f *fakeBankRepo) CreateAccount(ctx context.Context, a bank.Account) (bank.Account, error) {
	f.nextID++
	a.ID = fmt.Sprintf("acc-%d", f.nextID)
	f.accounts[a.ID] = a
	return a, nil
}

func (f *fakeBankRepo) GetAccountByID(ctx context.Context, id string) (bank.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return bank.Account{}, bank.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeBankRepo) ListAccounts(ctx context.Context, activeOnly bool) ([]bank.Account, error) {
	return nil, nil
}

func (f *fakeBankRepo) SetAccountActive(ctx context.Context, id string, active bool) error {
	a, ok := f.accounts[id]
	if !ok {
		return bank.ErrAccountNotFound
	}
	a.IsActive = active
	f.accounts[id] = a
	return nil
}

func (f *fakeBankRepo) CreateCard(ctx context.Context, c bank.Card) (bank.Card, error) {
	f.nextID++
	c.ID = fmt.Sprintf("card-%d", f.nextID)
	f.cards[c.ID] = c
	return c, nil
}

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

func (f *fakeBankRepo) AssignCard(ctx context.Context, cardID, employeeID string) error {
	c, ok := f.cards[cardID]
	if !ok {
		return bank.ErrCardNotFound
	}
	if c.EmployeeID != nil {
		return bank.ErrCardAlreadyAssigned
	}
	c.EmployeeID = &employeeID
	f.cards[cardID] = c
	return nil
}

func (f *fakeBankRepo) UnassignCard(ctx context.Context, cardID string) error {
	c, ok := f.cards[cardID]
	if !ok {
		return bank.ErrCardNotFound
	}
	c.EmployeeID = nil
	f.cards[cardID] = c
	return nil
}

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

func (f *fakeBankRepo) ResetDailyLimits(ctx context.Context) (int, error) {
	count := 0
	for id, c := range f.cards {
		if c.Color == bank.CardColorPink && c.IsActive && c.RemainingToday != c.DailyLimit {
			c.RemainingToday = c.DailyLimit
			f.cards[id] = c
			count++
		}
	}
	return count, nil
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

func TestCreateCard_StartsWithFullQuota(t *testing.T) {
	repo := newFakeBankRepo()
	account, err := repo.CreateAccount(context.Background(), bank.Account{BankName: "BCA", IsActive: true})
	require.NoError(t, err)

	service := NewBankService(repo, &fakeEmployeeRepo{}, &fakeActivityLog{})

	card, err := service.CreateCard(context.Background(), bank.CreateCardRequest{
		AccountID:  account.ID,
		LastFour:   "1234",
		Color:      string(bank.CardColorPink),
		DailyLimit: 5,
	}, "actor-1")
	require.NoError(t, err)

	assert.Equal(t, 5, card.DailyLimit)
	assert.Equal(t, 5, card.RemainingToday)
	assert.True(t, card.IsActive)
}

func TestCreateCard_UnknownAccount(t *testing.T) {
	service := NewBankService(newFakeBankRepo(), &fakeEmployeeRepo{}, &fakeActivityLog{})

	_, err := service.CreateCard(context.Background(), bank.CreateCardRequest{
		AccountID:  "missing",
		LastFour:   "1234",
		Color:      string(bank.CardColorRegular),
		DailyLimit: 0,
	}, "actor-1")

	assert.ErrorIs(t, err, bank.ErrAccountNotFound)
}

func TestAssignCard_InactiveEmployee(t *testing.T) {
	repo := newFakeBankRepo()
	repo.cards["card-1"] = bank.Card{ID: "card-1", IsActive: true}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e-1": {ID: "e-1", FullName: "Former Employee", Role: user.RoleEmployee, IsActive: false},
	}}
	service := NewBankService(repo, empRepo, &fakeActivityLog{})

	err := service.AssignCard(context.Background(), bank.AssignCardRequest{
		CardID:     "card-1",
		EmployeeID: "e-1",
	}, "actor-1")

	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestResetDailyLimits(t *testing.T) {
	repo := newFakeBankRepo()
	repo.cards["card-1"] = bank.Card{ID: "card-1", Color: bank.CardColorPink, DailyLimit: 5, RemainingToday: 0, IsActive: true}
	repo.cards["card-2"] = bank.Card{ID: "card-2", Color: bank.CardColorPink, DailyLimit: 3, RemainingToday: 1, IsActive: true}
	// Already full, inactive, or regular: untouched.
	repo.cards["card-3"] = bank.Card{ID: "card-3", Color: bank.CardColorPink, DailyLimit: 5, RemainingToday: 5, IsActive: true}
	repo.cards["card-4"] = bank.Card{ID: "card-4", Color: bank.CardColorPink, DailyLimit: 5, RemainingToday: 0, IsActive: false}
	repo.cards["card-5"] = bank.Card{ID: "card-5", Color: bank.CardColorRegular, DailyLimit: 0, RemainingToday: 0, IsActive: true}

	log := &fakeActivityLog{}
	service := NewBankService(repo, &fakeEmployeeRepo{}, log)

	result, err := service.ResetDailyLimits(context.Background(), "actor-1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.CardsReset)
	assert.Equal(t, 5, repo.cards["card-1"].RemainingToday)
	assert.Equal(t, 3, repo.cards["card-2"].RemainingToday)
	assert.Equal(t, 0, repo.cards["card-4"].RemainingToday)
	require.Len(t, log.entries, 1)
	assert.Equal(t, activitylog.ActionCardLimitsReset, log.entries[0].Action)
}
