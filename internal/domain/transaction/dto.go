package transaction

import (
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	EmployeeID      string          `json:"employee_id"`
	CardID          *string         `json:"card_id,omitempty"`
	SiteID          *string         `json:"site_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Profit          decimal.Decimal `json:"profit"`
	TransactionDate string          `json:"transaction_date"`
	Notes           *string         `json:"notes,omitempty"`
}

func (r *CreateTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.TransactionDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "transaction_date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	ID     string
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	switch TransactionStatus(r.Status) {
	case StatusPending, StatusCompleted, StatusFailed:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be pending, completed or failed"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransactionFilter struct {
	Month      *string
	Status     *string
	EmployeeID *string
	Page       int
	Limit      int
}

type TransactionResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	CardID          *string         `json:"card_id,omitempty"`
	SiteID          *string         `json:"site_id,omitempty"`
	SiteName        *string         `json:"site_name,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Profit          decimal.Decimal `json:"profit"`
	Status          string          `json:"status"`
	TransactionDate string          `json:"transaction_date"`
	Notes           *string         `json:"notes,omitempty"`
}

type ListTransactionResponse struct {
	Data       []TransactionResponse `json:"data"`
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
}
