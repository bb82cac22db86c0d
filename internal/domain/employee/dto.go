package employee

import (
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName       string          `json:"full_name"`
	Email          *string         `json:"email,omitempty"`
	Role           string          `json:"role"`
	PercentageRate decimal.Decimal `json:"percentage_rate"`
	HiredAt        *string         `json:"hired_at,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !user.IsValidRole(user.Role(r.Role)) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "is not a valid role"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email"})
	}
	if r.PercentageRate.IsNegative() || r.PercentageRate.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, validator.ValidationError{Field: "percentage_rate", Message: "must be between 0 and 100"})
	}
	if r.HiredAt != nil {
		if _, ok := validator.IsValidDate(*r.HiredAt); !ok {
			errs = append(errs, validator.ValidationError{Field: "hired_at", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string
	FullName       *string          `json:"full_name,omitempty"`
	Email          *string          `json:"email,omitempty"`
	Role           *string          `json:"role,omitempty"`
	PercentageRate *decimal.Decimal `json:"percentage_rate,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Role != nil && !user.IsValidRole(user.Role(*r.Role)) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "is not a valid role"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email"})
	}
	if r.PercentageRate != nil && (r.PercentageRate.IsNegative() || r.PercentageRate.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{Field: "percentage_rate", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	FullName       string          `json:"full_name"`
	Email          *string         `json:"email,omitempty"`
	Role           string          `json:"role"`
	PercentageRate decimal.Decimal `json:"percentage_rate"`
	IsActive       bool            `json:"is_active"`
	HiredAt        string          `json:"hired_at"`
}
