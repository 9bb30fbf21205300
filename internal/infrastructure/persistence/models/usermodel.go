package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/reque-io/reque/internal/shared/constants"
)

// UserModel is the persistence shape of the user aggregate. It is the
// anti-corruption layer between domain and database.
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	UUID      string `gorm:"uniqueIndex;not null;size:36"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Name      string `gorm:"not null;size:100"`
	AvatarURL string `gorm:"size:500"`
	Role      string `gorm:"not null;default:user;size:20;index"`
	Status    string `gorm:"not null;default:pending;size:20;index"`
	Version   int    `gorm:"not null;default:1"`

	PasswordHash               *string `gorm:"size:255"`
	EmailVerifiedAt            *time.Time
	EmailVerificationTokenHash *string `gorm:"size:64;index:idx_users_verification_token"`
	EmailVerificationExpiresAt *time.Time
	PasswordResetTokenHash     *string `gorm:"size:64;index:idx_users_reset_token"`
	PasswordResetExpiresAt     *time.Time
	LastPasswordChangeAt       *time.Time
	FailedLoginAttempts        int `gorm:"not null;default:0"`
	LockedUntil                *time.Time
	LastLoginAt                *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate fills column defaults GORM would otherwise leave zero-valued.
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.Status == "" {
		u.Status = "pending"
	}
	if u.Version == 0 {
		u.Version = 1
	}
	return nil
}
