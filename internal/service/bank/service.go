package bank

import (
	"context"
	"fmt"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/bank"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/employee"
)

type BankServiceImpl struct {
	bankRepo     bank.BankRepository
	employeeRepo employee.EmployeeRepository
	activityLog  activitylog.ActivityLogRepository
}

func NewBankService(
	bankRepo bank.BankRepository,
	employeeRepo employee.EmployeeRepository,
	activityLog activitylog.ActivityLogRepository,
) bank.BankService {
	return &BankServiceImpl{
		bankRepo:     bankRepo,
		employeeRepo: employeeRepo,
		activityLog:  activityLog,
	}
}

func (s *BankServiceImpl) CreateAccount(ctx context.Context, req bank.CreateAccountRequest, actorID string) (bank.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return bank.AccountResponse{}, err
	}

	created, err := s.bankRepo.CreateAccount(ctx, bank.Account{
		BankName:      req.BankName,
		HolderName:    req.HolderName,
		AccountNumber: req.AccountNumber,
		Balance:       req.Balance,
		IsActive:      true,
	})
	if err != nil {
		return bank.AccountResponse{}, err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionCreate,
		EntityType: "bank_account",
		EntityID:   &created.ID,
	})

	return mapAccountToResponse(created), nil
}

func (s *BankServiceImpl) ListAccounts(ctx context.Context, activeOnly bool) ([]bank.AccountResponse, error) {
	accounts, err := s.bankRepo.ListAccounts(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	responses := make([]bank.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, mapAccountToResponse(a))
	}

	return responses, nil
}

func (s *BankServiceImpl) SetAccountActive(ctx context.Context, id string, active bool, actorID string) error {
	if err := s.bankRepo.SetAccountActive(ctx, id, active); err != nil {
		return err
	}

	detail := fmt.Sprintf("is_active=%t", active)
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "bank_account",
		EntityID:   &id,
		Detail:     &detail,
	})

	return nil
}

func (s *BankServiceImpl) CreateCard(ctx context.Context, req bank.CreateCardRequest, actorID string) (bank.CardResponse, error) {
	if err := req.Validate(); err != nil {
		return bank.CardResponse{}, err
	}

	// The account must exist before a card can hang off it.
	if _, err := s.bankRepo.GetAccountByID(ctx, req.AccountID); err != nil {
		return bank.CardResponse{}, err
	}

	created, err := s.bankRepo.CreateCard(ctx, bank.Card{
		AccountID:      req.AccountID,
		LastFour:       req.LastFour,
		Color:          bank.CardColor(req.Color),
		DailyLimit:     req.DailyLimit,
		RemainingToday: req.DailyLimit,
		IsActive:       true,
	})
	if err != nil {
		return bank.CardResponse{}, err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionCreate,
		EntityType: "card",
		EntityID:   &created.ID,
	})

	return mapCardToResponse(created), nil
}

func (s *BankServiceImpl) GetCard(ctx context.Context, id string) (bank.CardResponse, error) {
	card, err := s.bankRepo.GetCardByID(ctx, id)
	if err != nil {
		return bank.CardResponse{}, err
	}
	return mapCardToResponse(card), nil
}

func (s *BankServiceImpl) ListCards(ctx context.Context, activeOnly bool) ([]bank.CardResponse, error) {
	cards, err := s.bankRepo.ListCards(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	responses := make([]bank.CardResponse, 0, len(cards))
	for _, c := range cards {
		responses = append(responses, mapCardToResponse(c))
	}

	return responses, nil
}

func (s *BankServiceImpl) AssignCard(ctx context.Context, req bank.AssignCardRequest, actorID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if !e.IsActive {
		return employee.ErrEmployeeInactive
	}

	if err := s.bankRepo.AssignCard(ctx, req.CardID, req.EmployeeID); err != nil {
		return err
	}

	detail := fmt.Sprintf("assigned to %s", e.FullName)
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "card",
		EntityID:   &req.CardID,
		Detail:     &detail,
	})

	return nil
}

func (s *BankServiceImpl) UnassignCard(ctx context.Context, cardID string, actorID string) error {
	if err := s.bankRepo.UnassignCard(ctx, cardID); err != nil {
		return err
	}

	detail := "unassigned"
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "card",
		EntityID:   &cardID,
		Detail:     &detail,
	})

	return nil
}

// ResetDailyLimits restores every active pink card's remaining quota to
// its daily limit. Typically run at the start of each working day.
func (s *BankServiceImpl) ResetDailyLimits(ctx context.Context, actorID string) (bank.ResetResult, error) {
	count, err := s.bankRepo.ResetDailyLimits(ctx)
	if err != nil {
		return bank.ResetResult{}, err
	}

	detail := fmt.Sprintf("%d cards reset", count)
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionCardLimitsReset,
		EntityType: "card",
		Detail:     &detail,
	})

	return bank.ResetResult{CardsReset: count}, nil
}

func mapAccountToResponse(a bank.Account) bank.AccountResponse {
	return bank.AccountResponse{
		ID:            a.ID,
		BankName:      a.BankName,
		HolderName:    a.HolderName,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
	}
}

func mapCardToResponse(c bank.Card) bank.CardResponse {
	return bank.CardResponse{
		ID:             c.ID,
		AccountID:      c.AccountID,
		BankName:       c.BankName,
		LastFour:       c.LastFour,
		Color:          string(c.Color),
		DailyLimit:     c.DailyLimit,
		RemainingToday: c.RemainingToday,
		EmployeeID:     c.EmployeeID,
		EmployeeName:   c.EmployeeName,
		IsActive:       c.IsActive,
	}
}
