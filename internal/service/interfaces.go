package service

import (
	"context"

	"github.com/applymate/applymate-backend/internal/domain"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	Logout(ctx context.Context, userID string) (*MessageResult, error)
	SendVerificationOtp(ctx context.Context, userID, email, firstName string) (*MessageResult, error)
	VerifyEmail(ctx context.Context, userID, otp string) (*MessageResult, error)
	ResendVerificationOtp(ctx context.Context, email string) (*MessageResult, error)
	ForgotPassword(ctx context.Context, email string) (*MessageResult, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetCurrentUser(ctx context.Context, userID string) (*domain.Profile, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*MessageResult, error)
	DeleteAccount(ctx context.Context, userID string) (*MessageResult, error)
}
