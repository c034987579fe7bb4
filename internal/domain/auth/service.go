package auth

import "context"

type AuthService interface {
	// Register creates a new user account and issues a token pair.
	Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)

	Profile(ctx context.Context, userID string) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*UserResponse, error)

	// ChangePassword verifies the current password before replacing it.
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error
}
