package user

import (
	"context"
	"fmt"
	"time"

	"github.com/reque-io/reque/internal/shared/biztime"
)

// OAuthAccount links a local account to an identity at an external provider.
// A user can hold one link per provider.
type OAuthAccount struct {
	ID                uint
	UserID            uint
	Provider          string
	ProviderUserID    string
	ProviderEmail     string
	ProviderUsername  string
	ProviderAvatarURL string
	ProfileData       map[string]interface{}
	LastLoginAt       *time.Time
	LoginCount        uint
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewOAuthAccount(userID uint, provider, providerUserID, providerEmail string) (*OAuthAccount, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}
	if providerUserID == "" {
		return nil, fmt.Errorf("provider user ID is required")
	}

	now := biztime.NowUTC()
	return &OAuthAccount{
		UserID:         userID,
		Provider:       provider,
		ProviderUserID: providerUserID,
		ProviderEmail:  providerEmail,
		LoginCount:     1,
		LastLoginAt:    &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (o *OAuthAccount) RecordLogin() {
	o.LoginCount++
	now := biztime.NowUTC()
	o.LastLoginAt = &now
	o.UpdatedAt = now
}

// RefreshProfile replaces the stored provider snapshot with the identity
// returned on the latest login.
func (o *OAuthAccount) RefreshProfile(email, username, avatarURL string, profile map[string]interface{}) {
	o.ProviderEmail = email
	o.ProviderUsername = username
	o.ProviderAvatarURL = avatarURL
	o.ProfileData = profile
	o.UpdatedAt = biztime.NowUTC()
}

type OAuthAccountRepository interface {
	Create(ctx context.Context, account *OAuthAccount) error
	GetByProviderAndUserID(ctx context.Context, provider, providerUserID string) (*OAuthAccount, error)
	GetByUserID(ctx context.Context, userID uint) ([]*OAuthAccount, error)
	Update(ctx context.Context, account *OAuthAccount) error
	Delete(ctx context.Context, id uint) error
}
