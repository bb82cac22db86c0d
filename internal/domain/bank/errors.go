package bank

import "errors"

var (
	ErrAccountNotFound      = errors.New("bank account not found")
	ErrAccountNumberExists  = errors.New("account number already registered")
	ErrCardNotFound         = errors.New("card not found")
	ErrCardInactive         = errors.New("card is inactive")
	ErrCardQuotaExhausted   = errors.New("card daily quota exhausted")
	ErrCardAlreadyAssigned  = errors.New("card already assigned to an employee")
	ErrInvalidDailyLimit    = errors.New("daily limit must be non-negative")
	ErrCardNotPinkQuotaOnly = errors.New("daily quota applies to pink cards only")
)
