package employee

import (
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// Employee is a roster entry. PercentageRate is the employee's share of
// their own attributable transaction profit, used by the payroll run.
type Employee struct {
	ID             string
	FullName       string
	Email          *string
	Role           user.Role
	PercentageRate decimal.Decimal
	IsActive       bool
	HiredAt        time.Time
	DeactivatedAt  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
