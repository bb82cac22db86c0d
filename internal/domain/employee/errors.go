package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeInactive    = errors.New("employee is inactive")
	ErrEmailExists         = errors.New("email already registered for another employee")
	ErrInvalidPercentage   = errors.New("percentage rate must be between 0 and 100")
	ErrEmployeeDeactivated = errors.New("employee already deactivated")
)
