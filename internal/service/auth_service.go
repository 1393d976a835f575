package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/applymate/applymate-backend/internal/domain"
	"github.com/applymate/applymate-backend/internal/observability"
	"github.com/applymate/applymate-backend/internal/repository"
	"github.com/applymate/applymate-backend/internal/security"
	"github.com/applymate/applymate-backend/internal/validate"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailNotVerified       = errors.New("email verification required")
	ErrEmailAlreadyVerified   = errors.New("email already verified")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrTokenInvalid           = security.ErrTokenInvalid

	// ErrDependencyFailure tags store, cache and notifier errors. They are
	// never retried here; each one fails the single request it belongs to.
	ErrDependencyFailure = errors.New("dependency failure")
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type RegisterResult struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Otp         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type MessageResult struct {
	Message string `json:"message"`
}

// forgotPasswordMessage is returned whether or not the account exists. Both
// branches must stay byte-identical; this is the anti-enumeration contract,
// not a convenience.
const forgotPasswordMessage = "If email exists, OTP has been sent"

type AuthService struct {
	userRepo repository.UserRepository
	ledger   *OtpLedger
	tokenSvc *TokenService
	notifier OtpNotifier
}

func NewAuthService(userRepo repository.UserRepository, ledger *OtpLedger, tokenSvc *TokenService, notifier OtpNotifier) *AuthService {
	return &AuthService{userRepo: userRepo, ledger: ledger, tokenSvc: tokenSvc, notifier: notifier}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	email := normalizeEmail(req.Email)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: find user: %v", ErrDependencyFailure, err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("%w: create user: %v", ErrDependencyFailure, err)
	}

	if _, err := s.SendVerificationOtp(ctx, user.ID, user.Email, user.FirstName); err != nil {
		return nil, err
	}

	observability.Audit(ctx, "auth.register", "user_id", user.ID)
	return &RegisterResult{
		Message: "Registration successful. Please check your email for verification code.",
		UserID:  user.ID,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: find user: %v", ErrDependencyFailure, err)
	}
	ok, err := security.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}
	pair, err := s.tokenSvc.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	observability.Audit(ctx, "auth.login", "user_id", user.ID)
	return pair, nil
}

// Logout revokes the user's active refresh session. Access tokens already in
// the wild remain valid until their signed expiry.
func (s *AuthService) Logout(ctx context.Context, userID string) (*MessageResult, error) {
	if err := s.tokenSvc.Revoke(ctx, userID); err != nil {
		return nil, fmt.Errorf("%w: revoke session: %v", ErrDependencyFailure, err)
	}
	observability.Audit(ctx, "auth.logout", "user_id", userID)
	return &MessageResult{Message: "Logged out successfully"}, nil
}

func (s *AuthService) SendVerificationOtp(ctx context.Context, userID, email, firstName string) (*MessageResult, error) {
	if firstName == "" {
		if user, err := s.userRepo.FindByID(userID); err == nil {
			firstName = user.FirstName
		}
	}
	code, err := s.ledger.Issue(ctx, userID, domain.OtpPurposeEmailVerification)
	if err != nil {
		return nil, fmt.Errorf("%w: issue otp: %v", ErrDependencyFailure, err)
	}
	if err := s.notifier.SendOtp(ctx, OtpNotification{
		Email:     email,
		Code:      code,
		Purpose:   domain.OtpPurposeEmailVerification,
		FirstName: firstName,
	}); err != nil {
		return nil, fmt.Errorf("%w: send otp: %v", ErrDependencyFailure, err)
	}
	return &MessageResult{Message: "OTP sent to email"}, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, userID, otp string) (*MessageResult, error) {
	if err := s.ledger.ValidateAndConsume(ctx, userID, domain.OtpPurposeEmailVerification, otp); err != nil {
		if errors.Is(err, ErrOtpInvalidOrExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}
	if err := s.userRepo.MarkEmailVerified(userID); err != nil {
		return nil, fmt.Errorf("%w: mark verified: %v", ErrDependencyFailure, err)
	}
	observability.Audit(ctx, "auth.verify_email", "user_id", userID)
	return &MessageResult{Message: "Email verified successfully"}, nil
}

func (s *AuthService) ResendVerificationOtp(ctx context.Context, email string) (*MessageResult, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", ErrDependencyFailure, err)
	}
	if user.IsEmailVerified {
		return nil, ErrEmailAlreadyVerified
	}
	if _, err := s.SendVerificationOtp(ctx, user.ID, user.Email, user.FirstName); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "OTP resent successfully"}, nil
}

// ForgotPassword returns the same message whether or not the account exists.
// Only the existing-account branch issues a code and dispatches mail.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*MessageResult, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return &MessageResult{Message: forgotPasswordMessage}, nil
		}
		return nil, fmt.Errorf("%w: find user: %v", ErrDependencyFailure, err)
	}

	code, err := s.ledger.Issue(ctx, user.ID, domain.OtpPurposePasswordReset)
	if err != nil {
		return nil, fmt.Errorf("%w: issue otp: %v", ErrDependencyFailure, err)
	}
	if err := s.notifier.SendOtp(ctx, OtpNotification{
		Email:     user.Email,
		Code:      code,
		Purpose:   domain.OtpPurposePasswordReset,
		FirstName: user.FirstName,
	}); err != nil {
		return nil, fmt.Errorf("%w: send otp: %v", ErrDependencyFailure, err)
	}
	return &MessageResult{Message: forgotPasswordMessage}, nil
}

// ResetPassword reports the same failure for a missing user and a wrong code;
// the response must not reveal which half of the check failed.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrOtpInvalidOrExpired
		}
		return nil, fmt.Errorf("%w: find user: %v", ErrDependencyFailure, err)
	}
	if err := s.ledger.ValidateAndConsume(ctx, user.ID, domain.OtpPurposePasswordReset, req.Otp); err != nil {
		if errors.Is(err, ErrOtpInvalidOrExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return nil, fmt.Errorf("%w: update password: %v", ErrDependencyFailure, err)
	}
	observability.Audit(ctx, "auth.reset_password", "user_id", user.ID)
	return &MessageResult{Message: "Password reset successful"}, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	pair, userID, err := s.tokenSvc.Rotate(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrTokenInvalid) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}
	observability.Audit(ctx, "auth.refresh", "user_id", userID)
	return pair, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", ErrDependencyFailure, err)
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*MessageResult, error) {
	if err := validate.Struct(struct {
		Password string `validate:"required,password"`
	}{Password: newPassword}); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", ErrDependencyFailure, err)
	}
	ok, err := security.VerifyPassword(user.PasswordHash, currentPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if currentPassword == newPassword {
		return nil, fmt.Errorf("%w: new password must differ from current password", ErrInvalidRequest)
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdatePassword(userID, hash); err != nil {
		return nil, fmt.Errorf("%w: update password: %v", ErrDependencyFailure, err)
	}
	observability.Audit(ctx, "auth.change_password", "user_id", userID)
	return &MessageResult{Message: "Password changed successfully"}, nil
}

// DeleteAccount removes the user and revokes their refresh session. The
// state is terminal; no further operations are valid for the id.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) (*MessageResult, error) {
	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: delete user: %v", ErrDependencyFailure, err)
	}
	if err := s.tokenSvc.Revoke(ctx, userID); err != nil {
		return nil, fmt.Errorf("%w: revoke session: %v", ErrDependencyFailure, err)
	}
	observability.Audit(ctx, "auth.delete_account", "user_id", userID)
	return &MessageResult{Message: "Account deleted successfully"}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
