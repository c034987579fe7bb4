package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hrstack/hrms-backend-go/internal/domain/auth"
	"github.com/hrstack/hrms-backend-go/internal/domain/user"
	"github.com/hrstack/hrms-backend-go/internal/pkg/jwt"
)

type authServiceImpl struct {
	userRepo user.UserRepository
	jwt      jwt.Service
	logger   *slog.Logger
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service, logger *slog.Logger) auth.AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		jwt:      jwtService,
		logger:   logger,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID, "role", u.Role)

	return s.issueTokens(ctx, u)
}

func (s *authServiceImpl) Login(ctx context.Context, req *auth.LoginRequest) (*auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, user.ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		// The login itself succeeded; only log the stamp failure.
		s.logger.WarnContext(ctx, "failed to update last login", "user_id", u.ID, "error", err)
	}
	u.LastLoginAt = &now

	return s.issueTokens(ctx, u)
}

func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.TokenResponse, error) {
	userID, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, user.ErrAccountDeactivated
	}

	return s.issueTokens(ctx, u)
}

func (s *authServiceImpl) Profile(ctx context.Context, userID string) (*auth.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID string, req *auth.UpdateProfileRequest) (*auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := toUserResponse(u)
	return &resp, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID string, req *auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

func (s *authServiceImpl) issueTokens(ctx context.Context, u *user.User) (*auth.TokenResponse, error) {
	accessToken, accessExp, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	return &auth.TokenResponse{
		User:                  toUserResponse(u),
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

func toUserResponse(u *user.User) auth.UserResponse {
	var lastLogin *string
	if u.LastLoginAt != nil {
		s := u.LastLoginAt.Format(time.RFC3339)
		lastLogin = &s
	}
	return auth.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		EmployeeID:  u.EmployeeID,
		IsActive:    u.IsActive,
		LastLoginAt: lastLogin,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
