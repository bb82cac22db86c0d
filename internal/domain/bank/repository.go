package bank

import "context"

type BankRepository interface {
	// Accounts
	CreateAccount(ctx context.Context, account Account) (Account, error)
	GetAccountByID(ctx context.Context, id string) (Account, error)
	ListAccounts(ctx context.Context, activeOnly bool) ([]Account, error)
	SetAccountActive(ctx context.Context, id string, active bool) error

	// Cards
	CreateCard(ctx context.Context, card Card) (Card, error)
	GetCardByID(ctx context.Context, id string) (Card, error)
	ListCards(ctx context.Context, activeOnly bool) ([]Card, error)
	AssignCard(ctx context.Context, cardID, employeeID string) error
	UnassignCard(ctx context.Context, cardID string) error
	DecrementRemaining(ctx context.Context, cardID string) error
	RestoreRemaining(ctx context.Context, cardID string) error
	ResetDailyLimits(ctx context.Context) (int, error)
}
