package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrUserAlreadyLinked  = errors.New("user already has an employee record")
	ErrManagerNotFound    = errors.New("reporting manager not found")
	ErrManagerCycle       = errors.New("reporting manager assignment would create a cycle")
	ErrAccessDenied       = errors.New("access to this employee record is denied")
)
