package activitylog

import "time"

// Entry is one append-only audit row. Entries are never updated or deleted.
type Entry struct {
	ID         string
	ActorID    string
	ActorEmail *string
	Action     string
	EntityType string
	EntityID   *string
	Detail     *string
	CreatedAt  time.Time
}

// Well-known action names. Free-form strings are allowed but these cover
// the mutating operations the services record.
const (
	ActionLogin           = "auth.login"
	ActionLogout          = "auth.logout"
	ActionCreate          = "entity.create"
	ActionUpdate          = "entity.update"
	ActionDelete          = "entity.delete"
	ActionPayrollRun      = "payroll.calculate"
	ActionSalariesPaid    = "payroll.mark_paid"
	ActionCardLimitsReset = "bank.reset_daily_limits"
)
