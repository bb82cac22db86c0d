package expense

import (
	"context"
	"fmt"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/expense"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

type ExpenseServiceImpl struct {
	expenseRepo expense.ExpenseRepository
	activityLog activitylog.ActivityLogRepository
}

func NewExpenseService(
	expenseRepo expense.ExpenseRepository,
	activityLog activitylog.ActivityLogRepository,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		expenseRepo: expenseRepo,
		activityLog: activityLog,
	}
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, req expense.CreateExpenseRequest, actorID string) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	created, err := s.expenseRepo.Create(ctx, expense.Expense{
		Month:       req.Month,
		AmountUSD:   req.AmountUSD,
		Description: req.Description,
		RecordedBy:  actorID,
	})
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionCreate,
		EntityType: "expense",
		EntityID:   &created.ID,
	})

	return mapToResponse(created), nil
}

func (s *ExpenseServiceImpl) GetByID(ctx context.Context, id string) (expense.ExpenseResponse, error) {
	e, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return mapToResponse(e), nil
}

func (s *ExpenseServiceImpl) ListByMonth(ctx context.Context, month string) ([]expense.ExpenseResponse, error) {
	if !validator.IsValidMonthKey(month) {
		return nil, validator.ValidationErrors{
			{Field: "month", Message: "must match YYYY-MM"},
		}
	}

	expenses, err := s.expenseRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, mapToResponse(e))
	}

	return responses, nil
}

func (s *ExpenseServiceImpl) Update(ctx context.Context, req expense.UpdateExpenseRequest, actorID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.expenseRepo.Update(ctx, req); err != nil {
		return err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "expense",
		EntityID:   &req.ID,
	})

	return nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, id string, actorID string) error {
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionDelete,
		EntityType: "expense",
		EntityID:   &id,
	})

	return nil
}

func mapToResponse(e expense.Expense) expense.ExpenseResponse {
	return expense.ExpenseResponse{
		ID:          e.ID,
		Month:       e.Month,
		AmountUSD:   e.AmountUSD,
		Description: e.Description,
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
