package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a recorded cost keyed by the month it belongs to.
type Expense struct {
	ID          string
	Month       string
	AmountUSD   decimal.Decimal
	Description string
	RecordedBy  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
