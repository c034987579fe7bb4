package user

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail includes the password hash for credential checks.
	GetByEmail(ctx context.Context, email string) (*User, error)

	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
}
