package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/auth"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo    user.UserRepository
	jwtService  jwt.Service
	activityLog activitylog.ActivityLogRepository
}

func NewAuthService(
	userRepo user.UserRepository,
	jwtService jwt.Service,
	activityLog activitylog.ActivityLogRepository,
) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		jwtService:  jwtService,
		activityLog: activityLog,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPairResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPairResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenPairResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	if u.PasswordHash == nil {
		// OAuth-only account, no password to compare against.
		return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.TokenPairResponse{}, user.ErrUserInactive
	}

	return s.issueTokens(ctx, u)
}

func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email, providerID, fullName string) (auth.TokenPairResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenPairResponse{}, fmt.Errorf("failed to load user: %w", err)
		}

		// First Google sign-in provisions a viewer-level account.
		provider := "google"
		u, err = s.userRepo.Create(ctx, user.User{
			Email:           email,
			FullName:        fullName,
			Role:            user.RoleEmployee,
			OAuthProvider:   &provider,
			OAuthProviderID: &providerID,
			IsActive:        true,
		})
		if err != nil {
			return auth.TokenPairResponse{}, fmt.Errorf("failed to provision user: %w", err)
		}
	}

	if !u.IsActive {
		return auth.TokenPairResponse{}, user.ErrUserInactive
	}

	return s.issueTokens(ctx, u)
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPairResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenPairResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenPairResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenPairResponse{}, fmt.Errorf("failed to load user: %w", err)
	}
	if !u.IsActive {
		return auth.TokenPairResponse{}, user.ErrUserInactive
	}

	// Rotate: the presented token is single-use.
	s.jwtService.RevokeToken(refreshToken)

	return s.tokenPair(u)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	userID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		// An unparseable token has nothing to revoke.
		return nil
	}

	s.jwtService.RevokeToken(refreshToken)

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    userID,
		Action:     activitylog.ActionLogout,
		EntityType: "user",
		EntityID:   &userID,
	})

	return nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (auth.MeResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.MeResponse{}, err
	}

	return auth.MeResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
	}, nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenPairResponse, error) {
	pair, err := s.tokenPair(u)
	if err != nil {
		return auth.TokenPairResponse{}, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, u.ID); err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to record login: %w", err)
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    u.ID,
		Action:     activitylog.ActionLogin,
		EntityType: "user",
		EntityID:   &u.ID,
	})

	return pair, nil
}

func (s *AuthServiceImpl) tokenPair(u user.User) (auth.TokenPairResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenPairResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
	}, nil
}
