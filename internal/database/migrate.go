package database

import (
	"github.com/applymate/applymate-backend/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.OtpCode{},
	)
}
