package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a managed bank account.
type Account struct {
	ID            string
	BankName      string
	HolderName    string
	AccountNumber string
	Balance       decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CardColor enum. Pink cards carry a daily usage quota that is reset each
// day; regular cards are unmetered.
type CardColor string

const (
	CardColorPink    CardColor = "pink"
	CardColorRegular CardColor = "regular"
)

// Card is a payment card tied to an account, optionally assigned to an
// employee. RemainingToday counts down as the card is used and is restored
// to DailyLimit by the reset operation.
type Card struct {
	ID             string
	AccountID      string
	LastFour       string
	Color          CardColor
	DailyLimit     int
	RemainingToday int
	EmployeeID     *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	BankName     *string
	EmployeeName *string
}
