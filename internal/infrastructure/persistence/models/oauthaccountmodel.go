package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/reque-io/reque/internal/shared/constants"
)

// OAuthAccountModel links a local user to an external provider identity.
// The (provider, provider_user_id) pair is unique across all users.
type OAuthAccountModel struct {
	ID                uint   `gorm:"primarykey"`
	UserID            uint   `gorm:"not null;index:idx_oauth_user_id"`
	Provider          string `gorm:"not null;size:50;uniqueIndex:idx_provider_user"`
	ProviderUserID    string `gorm:"not null;size:255;uniqueIndex:idx_provider_user;column:provider_user_id"`
	ProviderEmail     string `gorm:"size:255"`
	ProviderUsername  string `gorm:"size:100"`
	ProviderAvatarURL string `gorm:"size:500;column:provider_avatar_url"`
	ProfileData       datatypes.JSON
	LastLoginAt       *time.Time
	LoginCount        uint `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (OAuthAccountModel) TableName() string {
	return constants.TableOAuthAccounts
}
