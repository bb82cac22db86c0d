package payroll

import (
	"testing"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRolePolicy_BasePercent(t *testing.T) {
	policy := DefaultRolePolicy()

	assert.True(t, policy.BasePercent(user.RoleCEO).Equal(decimal.NewFromInt(10)))
	assert.True(t, policy.BasePercent(user.RoleManager).Equal(decimal.NewFromInt(10)))
	assert.True(t, policy.BasePercent(user.RoleCFO).Equal(decimal.NewFromInt(5)))
	assert.True(t, policy.BasePercent(user.RoleHR).Equal(decimal.NewFromInt(5)))

	// Bonus-only roles have no base share.
	assert.True(t, policy.BasePercent(user.RoleEmployee).IsZero())
	assert.True(t, policy.BasePercent(user.RoleTester).IsZero())
	assert.True(t, policy.BasePercent(user.RoleAdmin).IsZero())
}

func TestRolePolicy_BaseSalary(t *testing.T) {
	policy := DefaultRolePolicy()
	net := decimal.NewFromInt(8000)

	assert.True(t, policy.BaseSalary(user.RoleCEO, net).Equal(decimal.NewFromInt(800)))
	assert.True(t, policy.BaseSalary(user.RoleCFO, net).Equal(decimal.NewFromInt(400)))
	assert.True(t, policy.BaseSalary(user.RoleEmployee, net).IsZero())
}

func TestRolePolicy_BaseSalary_NonPositiveNet(t *testing.T) {
	policy := DefaultRolePolicy()

	assert.True(t, policy.BaseSalary(user.RoleCEO, decimal.Zero).IsZero())
	assert.True(t, policy.BaseSalary(user.RoleCEO, decimal.NewFromInt(-5000)).IsZero(),
		"a loss month never produces negative pay")
}

func TestRolePolicy_BaseSalary_Rounding(t *testing.T) {
	policy := DefaultRolePolicy()
	net, _ := decimal.NewFromString("1234.567")

	// 10% of 1234.567 = 123.4567, rounded to cents.
	got := policy.BaseSalary(user.RoleCEO, net)
	want, _ := decimal.NewFromString("123.46")
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestBonus(t *testing.T) {
	profit := decimal.NewFromInt(1500)
	rate := decimal.NewFromInt(20)

	assert.True(t, Bonus(profit, rate).Equal(decimal.NewFromInt(300)))
	assert.True(t, Bonus(decimal.Zero, rate).IsZero())
	assert.True(t, Bonus(profit, decimal.Zero).IsZero())
}

func TestBonus_FlooredAtZero(t *testing.T) {
	loss := decimal.NewFromInt(-500)
	rate := decimal.NewFromInt(20)

	assert.True(t, Bonus(loss, rate).IsZero(), "negative attributable profit never claws back pay")
}
