package bank

import (
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	BankName      string          `json:"bank_name"`
	HolderName    string          `json:"holder_name"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

func (r *CreateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BankName) {
		errs = append(errs, validator.ValidationError{Field: "bank_name", Message: "is required"})
	}
	if validator.IsEmpty(r.HolderName) {
		errs = append(errs, validator.ValidationError{Field: "holder_name", Message: "is required"})
	}
	if validator.IsEmpty(r.AccountNumber) {
		errs = append(errs, validator.ValidationError{Field: "account_number", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AccountResponse struct {
	ID            string          `json:"id"`
	BankName      string          `json:"bank_name"`
	HolderName    string          `json:"holder_name"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"is_active"`
}

type CreateCardRequest struct {
	AccountID  string `json:"account_id"`
	LastFour   string `json:"last_four"`
	Color      string `json:"color"`
	DailyLimit int    `json:"daily_limit"`
}

func (r *CreateCardRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AccountID) {
		errs = append(errs, validator.ValidationError{Field: "account_id", Message: "is required"})
	}
	if !validator.IsValidCardLastFour(r.LastFour) {
		errs = append(errs, validator.ValidationError{Field: "last_four", Message: "must be the last four digits"})
	}
	if r.Color != string(CardColorPink) && r.Color != string(CardColorRegular) {
		errs = append(errs, validator.ValidationError{Field: "color", Message: "must be 'pink' or 'regular'"})
	}
	if r.DailyLimit < 0 {
		errs = append(errs, validator.ValidationError{Field: "daily_limit", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignCardRequest struct {
	CardID     string
	EmployeeID string `json:"employee_id"`
}

func (r *AssignCardRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CardResponse struct {
	ID             string  `json:"id"`
	AccountID      string  `json:"account_id"`
	BankName       *string `json:"bank_name,omitempty"`
	LastFour       string  `json:"last_four"`
	Color          string  `json:"color"`
	DailyLimit     int     `json:"daily_limit"`
	RemainingToday int     `json:"remaining_today"`
	EmployeeID     *string `json:"employee_id,omitempty"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	IsActive       bool    `json:"is_active"`
}

type ResetResult struct {
	CardsReset int `json:"cards_reset"`
}
