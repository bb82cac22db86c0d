package user

import "time"

// User is an operator account on the dashboard. The Role claim on the
// access token is read from here at login time.
type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	FullName        string
	Role            Role
	EmployeeID      *string
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	LastLoginAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCEO      Role = "ceo"
	RoleCFO      Role = "cfo"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
	RoleTester   Role = "tester"
)

// ValidRoles lists every assignable role tag.
var ValidRoles = []Role{
	RoleAdmin, RoleCEO, RoleCFO, RoleManager, RoleHR, RoleEmployee, RoleTester,
}

func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if v == r {
			return true
		}
	}
	return false
}
