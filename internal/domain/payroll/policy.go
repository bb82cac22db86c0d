package payroll

import (
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// RolePolicy maps a role to the fixed percentage of positive net profit it
// receives as base salary. Roles absent from the table are compensated on
// bonus only. Keeping the mapping in one table means the formula is never
// re-derived elsewhere.
type RolePolicy map[user.Role]decimal.Decimal

// DefaultRolePolicy returns the current business percentages.
func DefaultRolePolicy() RolePolicy {
	return RolePolicy{
		user.RoleCEO:     decimal.NewFromInt(10),
		user.RoleManager: decimal.NewFromInt(10),
		user.RoleCFO:     decimal.NewFromInt(5),
		user.RoleHR:      decimal.NewFromInt(5),
	}
}

// BasePercent returns the base-salary percentage for a role, zero when the
// role is bonus-only.
func (p RolePolicy) BasePercent(role user.Role) decimal.Decimal {
	if pct, ok := p[role]; ok {
		return pct
	}
	return decimal.Zero
}

var oneHundred = decimal.NewFromInt(100)

// BaseSalary computes the role's fixed share of net profit, floored at zero
// so a loss month never produces negative pay.
func (p RolePolicy) BaseSalary(role user.Role, netProfit decimal.Decimal) decimal.Decimal {
	if netProfit.Sign() <= 0 {
		return decimal.Zero
	}
	return netProfit.Mul(p.BasePercent(role)).Div(oneHundred).Round(2)
}

// Bonus computes the variable component: the employee's attributable profit
// scaled by their percentage rate. Floored at zero.
func Bonus(attributableProfit, percentageRate decimal.Decimal) decimal.Decimal {
	bonus := attributableProfit.Mul(percentageRate).Div(oneHundred).Round(2)
	if bonus.Sign() < 0 {
		return decimal.Zero
	}
	return bonus
}
