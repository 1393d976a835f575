package repository

import (
	"github.com/applymate/applymate-backend/internal/domain"

	"gorm.io/gorm"
)

// OtpCodeRepository is a write-mostly audit log. Nothing here authorizes a
// request; the ephemeral store does.
type OtpCodeRepository interface {
	Create(code *domain.OtpCode) error
	MarkUsed(userID string, purpose domain.OtpPurpose) error
	ListByUserPurpose(userID string, purpose domain.OtpPurpose) ([]domain.OtpCode, error)
}

type GormOtpCodeRepository struct{ db *gorm.DB }

func NewOtpCodeRepository(db *gorm.DB) OtpCodeRepository { return &GormOtpCodeRepository{db: db} }

func (r *GormOtpCodeRepository) Create(code *domain.OtpCode) error {
	return r.db.Create(code).Error
}

// MarkUsed flips every unused row for the user and purpose. Matching all of
// them mirrors the issue path, where a reissued code supersedes older ones.
func (r *GormOtpCodeRepository) MarkUsed(userID string, purpose domain.OtpPurpose) error {
	return r.db.Model(&domain.OtpCode{}).
		Where("user_id = ? AND purpose = ? AND used = ?", userID, purpose, false).
		Update("used", true).Error
}

func (r *GormOtpCodeRepository) ListByUserPurpose(userID string, purpose domain.OtpPurpose) ([]domain.OtpCode, error) {
	var codes []domain.OtpCode
	err := r.db.Where("user_id = ? AND purpose = ?", userID, purpose).
		Order("created_at DESC").Find(&codes).Error
	return codes, err
}
