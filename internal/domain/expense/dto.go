package expense

import (
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Month       string          `json:"month"`
	AmountUSD   decimal.Decimal `json:"amount_usd"`
	Description string          `json:"description"`
}

func (r *CreateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonthKey(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must match YYYY-MM"})
	}
	if r.AmountUSD.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount_usd", Message: "must be non-negative"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateExpenseRequest struct {
	ID          string
	AmountUSD   *decimal.Decimal `json:"amount_usd,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (r *UpdateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AmountUSD != nil && r.AmountUSD.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount_usd", Message: "must be non-negative"})
	}
	if r.Description != nil && validator.IsEmpty(*r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Month       string          `json:"month"`
	AmountUSD   decimal.Decimal `json:"amount_usd"`
	Description string          `json:"description"`
	RecordedBy  string          `json:"recorded_by"`
	CreatedAt   string          `json:"created_at"`
}
