package models

import (
	"time"

	"github.com/reque-io/reque/internal/shared/constants"
)

// SessionModel stores one signed-in device. Only the refresh token hash is
// persisted; access tokens are stateless.
type SessionModel struct {
	ID               string    `gorm:"primarykey;size:64"`
	UserID           uint      `gorm:"not null;index"`
	DeviceName       string    `gorm:"size:255"`
	DeviceType       string    `gorm:"size:50"`
	IPAddress        string    `gorm:"size:45"`
	UserAgent        string    `gorm:"size:512"`
	RefreshTokenHash string    `gorm:"size:64;index"`
	ExpiresAt        time.Time `gorm:"not null;index"`
	LastActivityAt   time.Time `gorm:"not null"`
	CreatedAt        time.Time
}

func (SessionModel) TableName() string {
	return constants.TableSessions
}
