package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/applymate/applymate-backend/internal/domain"
	"github.com/applymate/applymate-backend/internal/repository"
	"github.com/applymate/applymate-backend/internal/security"
)

var ErrOtpInvalidOrExpired = errors.New("invalid or expired OTP")

// OtpLedger writes OTP state to two places: the ephemeral store that
// authorizes validation, and a durable audit row. The two writes are not
// transactional; a crash in between fails safe because only the cache entry
// can authorize anything.
type OtpLedger struct {
	store OtpStore
	audit repository.OtpCodeRepository
	ttl   time.Duration
}

func NewOtpLedger(store OtpStore, audit repository.OtpCodeRepository, ttl time.Duration) *OtpLedger {
	return &OtpLedger{store: store, audit: audit, ttl: ttl}
}

// Issue generates a fresh code, makes it the only live one for the
// (purpose, user) key and appends an audit row. Returns the code for
// dispatch.
func (l *OtpLedger) Issue(ctx context.Context, userID string, purpose domain.OtpPurpose) (string, error) {
	code, err := security.GenerateOtp()
	if err != nil {
		return "", err
	}
	if err := l.store.Put(ctx, purpose, userID, code, l.ttl); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	record := &domain.OtpCode{
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().UTC().Add(l.ttl),
	}
	if err := l.audit.Create(record); err != nil {
		return "", fmt.Errorf("audit otp: %w", err)
	}
	return code, nil
}

// ValidateAndConsume checks the supplied code against the live entry and
// deletes it in the same operation. At most one caller can succeed per
// issued code.
func (l *OtpLedger) ValidateAndConsume(ctx context.Context, userID string, purpose domain.OtpPurpose, code string) error {
	ok, err := l.store.CheckAndConsume(ctx, purpose, userID, code)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if !ok {
		return ErrOtpInvalidOrExpired
	}
	if err := l.audit.MarkUsed(userID, purpose); err != nil {
		return fmt.Errorf("mark otp used: %w", err)
	}
	return nil
}
