package transaction

import (
	"context"
	"fmt"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/bank"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/employee"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/transaction"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

type TransactionServiceImpl struct {
	transactionRepo transaction.TransactionRepository
	employeeRepo    employee.EmployeeRepository
	bankRepo        bank.BankRepository
	activityLog     activitylog.ActivityLogRepository
}

func NewTransactionService(
	transactionRepo transaction.TransactionRepository,
	employeeRepo employee.EmployeeRepository,
	bankRepo bank.BankRepository,
	activityLog activitylog.ActivityLogRepository,
) transaction.TransactionService {
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
		employeeRepo:    employeeRepo,
		bankRepo:        bankRepo,
		activityLog:     activityLog,
	}
}

func (s *TransactionServiceImpl) Create(ctx context.Context, req transaction.CreateTransactionRequest, actorID string) (transaction.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return transaction.TransactionResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return transaction.TransactionResponse{}, err
	}
	if !e.IsActive {
		return transaction.TransactionResponse{}, employee.ErrEmployeeInactive
	}

	// Running a pink card consumes one unit of its daily quota up front.
	quotaCardID := ""
	if req.CardID != nil {
		card, err := s.bankRepo.GetCardByID(ctx, *req.CardID)
		if err != nil {
			return transaction.TransactionResponse{}, err
		}
		if card.Color == bank.CardColorPink {
			if err := s.bankRepo.DecrementRemaining(ctx, card.ID); err != nil {
				return transaction.TransactionResponse{}, err
			}
			quotaCardID = card.ID
		}
	}

	txDate, _ := validator.IsValidDate(req.TransactionDate)
	created, err := s.transactionRepo.Create(ctx, transaction.Transaction{
		EmployeeID:      req.EmployeeID,
		CardID:          req.CardID,
		SiteID:          req.SiteID,
		Amount:          req.Amount,
		Profit:          req.Profit,
		Status:          transaction.StatusPending,
		TransactionDate: txDate,
		Notes:           req.Notes,
	})
	if err != nil {
		// No transaction was recorded, so the quota unit goes back.
		if quotaCardID != "" {
			if restoreErr := s.bankRepo.RestoreRemaining(ctx, quotaCardID); restoreErr != nil {
				return transaction.TransactionResponse{}, fmt.Errorf("%w (card quota not restored: %v)", err, restoreErr)
			}
		}
		return transaction.TransactionResponse{}, err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionCreate,
		EntityType: "transaction",
		EntityID:   &created.ID,
	})

	created.EmployeeName = &e.FullName
	return mapToResponse(created), nil
}

func (s *TransactionServiceImpl) GetByID(ctx context.Context, id string) (transaction.TransactionResponse, error) {
	t, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return transaction.TransactionResponse{}, err
	}
	return mapToResponse(t), nil
}

func (s *TransactionServiceImpl) List(ctx context.Context, filter transaction.TransactionFilter) (transaction.ListTransactionResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Month != nil && !validator.IsValidMonthKey(*filter.Month) {
		return transaction.ListTransactionResponse{}, validator.ValidationErrors{
			{Field: "month", Message: "must match YYYY-MM"},
		}
	}

	transactions, totalCount, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		return transaction.ListTransactionResponse{}, fmt.Errorf("failed to list transactions: %w", err)
	}

	responses := make([]transaction.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, mapToResponse(t))
	}

	return transaction.ListTransactionResponse{
		Data:       responses,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateStatus moves a pending transaction to completed or failed. A
// transaction that already settled keeps its state.
func (s *TransactionServiceImpl) UpdateStatus(ctx context.Context, req transaction.UpdateStatusRequest, actorID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := s.transactionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	next := transaction.TransactionStatus(req.Status)
	if current.Status == next {
		return nil
	}
	if current.Status != transaction.StatusPending {
		return transaction.ErrStatusNotTransitable
	}

	if err := s.transactionRepo.UpdateStatus(ctx, req.ID, next); err != nil {
		return err
	}

	detail := fmt.Sprintf("status %s -> %s", current.Status, next)
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "transaction",
		EntityID:   &req.ID,
		Detail:     &detail,
	})

	return nil
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, id string, actorID string) error {
	current, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Completed rows feed the monthly aggregation and stay immutable.
	if current.Status == transaction.StatusCompleted {
		return transaction.ErrAlreadyCompleted
	}

	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionDelete,
		EntityType: "transaction",
		EntityID:   &id,
	})

	return nil
}

func mapToResponse(t transaction.Transaction) transaction.TransactionResponse {
	resp := transaction.TransactionResponse{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		CardID:          t.CardID,
		SiteID:          t.SiteID,
		SiteName:        t.SiteName,
		Amount:          t.Amount,
		Profit:          t.Profit,
		Status:          string(t.Status),
		TransactionDate: t.TransactionDate.Format("2006-01-02"),
		Notes:           t.Notes,
	}
	if t.EmployeeName != nil {
		resp.EmployeeName = *t.EmployeeName
	}
	return resp
}
