package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user already exists with this email")
	ErrAdminRequired      = errors.New("admin privilege required")
	ErrHRAccessRequired   = errors.New("hr or admin privilege required")
	ErrAccountDeactivated = errors.New("account is deactivated")
)
