package service

import (
	"context"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
)

type AuthService interface {
	Register(ctx context.Context, r dto.RegisterRequest) (*dto.MessageResponse, error)
	Verify(ctx context.Context, r dto.VerifyRequest) (*dto.Session, error)
	ResendVerification(ctx context.Context, r dto.ResendRequest) (*dto.MessageResponse, error)
	Login(ctx context.Context, r dto.LoginRequest) (*dto.Session, error)
	GoogleLogin(ctx context.Context, r dto.GoogleRequest) (*dto.Session, error)
	// Refresh re-signs a session for an authenticated user without rotating it.
	Refresh(ctx context.Context, user *domain.User) (*dto.Session, error)
	// Logout invalidates the session behind token, if it is still valid.
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token to its user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
