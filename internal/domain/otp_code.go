package domain

import (
	"fmt"
	"time"
)

// OtpPurpose is a closed enumeration. Sending, validating and auditing all
// switch on it, so a new purpose fails loudly everywhere instead of silently
// sharing a cache key.
type OtpPurpose string

const (
	OtpPurposeEmailVerification OtpPurpose = "EMAIL_VERIFICATION"
	OtpPurposePasswordReset     OtpPurpose = "PASSWORD_RESET"
)

func (p OtpPurpose) Valid() bool {
	switch p {
	case OtpPurposeEmailVerification, OtpPurposePasswordReset:
		return true
	default:
		return false
	}
}

// CacheSlot is the key segment scoping ephemeral entries per purpose.
func (p OtpPurpose) CacheSlot() (string, error) {
	switch p {
	case OtpPurposeEmailVerification:
		return "verify", nil
	case OtpPurposePasswordReset:
		return "reset", nil
	default:
		return "", fmt.Errorf("unknown otp purpose %q", string(p))
	}
}

// OtpCode is the durable audit row written alongside every ephemeral entry.
// It is never read back to authorize a request; the cache entry is the sole
// source of truth for validity.
type OtpCode struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:36;not null;index:idx_otp_codes_user_purpose" json:"user_id"`
	Code      string     `gorm:"size:6;not null" json:"-"`
	Purpose   OtpPurpose `gorm:"size:32;not null;index:idx_otp_codes_user_purpose" json:"purpose"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	Used      bool       `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time  `json:"created_at"`
}
