package user

// Permission is a named capability checked by the RequirePermission
// middleware. Role-to-capability mapping lives in this single table so
// access rules are never re-derived per handler.
type Permission string

const (
	PermissionManageUsers        Permission = "users:manage"
	PermissionManageEmployees    Permission = "employees:manage"
	PermissionViewEmployees      Permission = "employees:view"
	PermissionManageAccounts     Permission = "accounts:manage"
	PermissionViewAccounts       Permission = "accounts:view"
	PermissionManageTransactions Permission = "transactions:manage"
	PermissionViewTransactions   Permission = "transactions:view"
	PermissionManageExpenses     Permission = "expenses:manage"
	PermissionRunPayroll         Permission = "payroll:run"
	PermissionViewPayroll        Permission = "payroll:view"
	PermissionMarkSalariesPaid   Permission = "payroll:pay"
	PermissionViewDashboard      Permission = "dashboard:view"
	PermissionViewActivityLog    Permission = "activitylog:view"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionManageUsers,
		PermissionManageEmployees, PermissionViewEmployees,
		PermissionManageAccounts, PermissionViewAccounts,
		PermissionManageTransactions, PermissionViewTransactions,
		PermissionManageExpenses,
		PermissionRunPayroll, PermissionViewPayroll, PermissionMarkSalariesPaid,
		PermissionViewDashboard, PermissionViewActivityLog,
	},
	RoleCEO: {
		PermissionViewEmployees,
		PermissionViewAccounts,
		PermissionViewTransactions,
		PermissionManageExpenses,
		PermissionRunPayroll, PermissionViewPayroll, PermissionMarkSalariesPaid,
		PermissionViewDashboard, PermissionViewActivityLog,
	},
	RoleCFO: {
		PermissionViewEmployees,
		PermissionViewAccounts,
		PermissionViewTransactions,
		PermissionManageExpenses,
		PermissionRunPayroll, PermissionViewPayroll, PermissionMarkSalariesPaid,
		PermissionViewDashboard,
	},
	RoleManager: {
		PermissionViewEmployees,
		PermissionManageAccounts, PermissionViewAccounts,
		PermissionManageTransactions, PermissionViewTransactions,
		PermissionViewPayroll,
		PermissionViewDashboard,
	},
	RoleHR: {
		PermissionManageEmployees, PermissionViewEmployees,
		PermissionViewPayroll,
		PermissionViewDashboard,
	},
	RoleEmployee: {
		PermissionViewAccounts,
		PermissionViewTransactions,
		PermissionViewDashboard,
	},
	RoleTester: {
		PermissionViewAccounts,
		PermissionViewTransactions,
	},
}

// HasPermission reports whether role carries the given permission.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
