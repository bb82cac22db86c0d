package bank

import "context"

type BankService interface {
	// Accounts
	CreateAccount(ctx context.Context, req CreateAccountRequest, actorID string) (AccountResponse, error)
	ListAccounts(ctx context.Context, activeOnly bool) ([]AccountResponse, error)
	SetAccountActive(ctx context.Context, id string, active bool, actorID string) error

	// Cards
	CreateCard(ctx context.Context, req CreateCardRequest, actorID string) (CardResponse, error)
	GetCard(ctx context.Context, id string) (CardResponse, error)
	ListCards(ctx context.Context, activeOnly bool) ([]CardResponse, error)
	AssignCard(ctx context.Context, req AssignCardRequest, actorID string) error
	UnassignCard(ctx context.Context, cardID string, actorID string) error
	ResetDailyLimits(ctx context.Context, actorID string) (ResetResult, error)
}
