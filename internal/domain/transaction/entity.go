package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus enum
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is a ledger row. Only completed transactions count toward the
// monthly profit aggregation.
type Transaction struct {
	ID              string
	EmployeeID      string
	CardID          *string
	SiteID          *string
	Amount          decimal.Decimal
	Profit          decimal.Decimal
	Status          TransactionStatus
	TransactionDate time.Time
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	SiteName     *string
}
