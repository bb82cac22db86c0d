package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)
	LoginWithGoogle(ctx context.Context, email, providerID, fullName string) (TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID string) (MeResponse, error)
}
