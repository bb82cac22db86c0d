package payroll

import "errors"

var (
	// ErrInvalidMonth rejects a malformed period key before any I/O happens.
	ErrInvalidMonth = errors.New("month must match YYYY-MM")

	// ErrSourceUnavailable wraps a failed ledger, expense or roster read.
	// No write has happened when this is returned.
	ErrSourceUnavailable = errors.New("payroll source unavailable")

	// ErrWriteFailed wraps a failed or rolled-back calculation write. No
	// partial batch remains readable when this is returned.
	ErrWriteFailed = errors.New("payroll write failed")

	ErrCalculationNotFound  = errors.New("calculation not found")
	ErrSalaryRecordNotFound = errors.New("salary record not found")
	ErrSalaryAlreadyPaid    = errors.New("salary record already paid")
)
