package response

import (
	"errors"
	"net/http"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/auth"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/bank"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/employee"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/expense"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/master/site"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/payroll"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/transaction"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthDisabled):
		BadRequest(w, "Google sign-in is not configured", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, "Permission denied")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is inactive")
	case errors.Is(err, employee.ErrEmployeeDeactivated):
		Conflict(w, "Employee already deactivated")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered for another employee")
	case errors.Is(err, employee.ErrInvalidPercentage):
		BadRequest(w, "Percentage rate must be between 0 and 100", nil)

	// Bank domain errors
	case errors.Is(err, bank.ErrAccountNotFound):
		NotFound(w, "Bank account not found")
	case errors.Is(err, bank.ErrAccountNumberExists):
		Conflict(w, "Account number already registered")
	case errors.Is(err, bank.ErrCardNotFound):
		NotFound(w, "Card not found")
	case errors.Is(err, bank.ErrCardInactive):
		Conflict(w, "Card is inactive")
	case errors.Is(err, bank.ErrCardQuotaExhausted):
		Conflict(w, "Card daily quota exhausted")
	case errors.Is(err, bank.ErrCardAlreadyAssigned):
		Conflict(w, "Card already assigned to an employee")
	case errors.Is(err, bank.ErrCardNotPinkQuotaOnly):
		BadRequest(w, "Daily quota applies to pink cards only", nil)
	case errors.Is(err, bank.ErrInvalidDailyLimit):
		BadRequest(w, "Daily limit must be non-negative", nil)

	// Site domain errors
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")
	case errors.Is(err, site.ErrSiteNameExists):
		Conflict(w, "Site name already exists")

	// Transaction domain errors
	case errors.Is(err, transaction.ErrTransactionNotFound):
		NotFound(w, "Transaction not found")
	case errors.Is(err, transaction.ErrInvalidStatus):
		BadRequest(w, "Invalid transaction status", nil)
	case errors.Is(err, transaction.ErrAlreadyCompleted):
		Conflict(w, "Transaction already completed")
	case errors.Is(err, transaction.ErrStatusNotTransitable):
		Conflict(w, "Transaction status cannot change from its current state")

	// Expense domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Month must match YYYY-MM", nil)
	case errors.Is(err, payroll.ErrSourceUnavailable):
		ServiceUnavailable(w, "A data source is unavailable, try again later")
	case errors.Is(err, payroll.ErrWriteFailed):
		InternalServerError(w, "Failed to persist payroll calculation")
	case errors.Is(err, payroll.ErrCalculationNotFound):
		NotFound(w, "Payroll calculation not found")
	case errors.Is(err, payroll.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrSalaryAlreadyPaid):
		Conflict(w, "Salary records already paid")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
