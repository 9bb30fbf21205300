package http

import (
	"context"
	"time"

	"github.com/reque-io/reque/internal/application/user/usecases"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/infrastructure/auth"
	"github.com/reque-io/reque/internal/infrastructure/cache"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/config"
)

// jwtServiceAdapter bridges the concrete JWT service to the token port the
// auth use cases consume.
type jwtServiceAdapter struct {
	*auth.JWTService
}

func (a *jwtServiceAdapter) Generate(userUUID string, sessionID string, role authorization.UserRole) (*usecases.TokenPair, error) {
	pair, err := a.JWTService.Generate(userUUID, sessionID, role)
	if err != nil {
		return nil, err
	}
	return &usecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (a *jwtServiceAdapter) ValidateRefreshToken(token string) (*usecases.RefreshTokenClaims, error) {
	claims, err := a.JWTService.VerifyRefreshToken(token)
	if err != nil {
		return nil, err
	}
	return &usecases.RefreshTokenClaims{
		UserUUID:  claims.UserUUID,
		SessionID: claims.SessionID,
	}, nil
}

// oauthClientAdapter converts provider user info into the use case shape.
type oauthClientAdapter struct {
	client interface {
		GetAuthURL(state string) (string, string, error)
		ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error)
		GetUserInfo(ctx context.Context, accessToken string) (*auth.OAuthUserInfo, error)
	}
}

func (a *oauthClientAdapter) GetAuthURL(state string) (string, string, error) {
	return a.client.GetAuthURL(state)
}

func (a *oauthClientAdapter) ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error) {
	return a.client.ExchangeCode(ctx, code, codeVerifier)
}

func (a *oauthClientAdapter) GetUserInfo(ctx context.Context, accessToken string) (*usecases.OAuthUserInfo, error) {
	info, err := a.client.GetUserInfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return &usecases.OAuthUserInfo{
		Provider:      info.Provider,
		ProviderID:    info.ProviderID,
		Email:         info.Email,
		Name:          info.Name,
		AvatarURL:     info.Picture,
		EmailVerified: info.EmailVerified,
		RawProfile:    info.RawProfile,
	}, nil
}

// oauthStateStoreAdapter bridges the Redis state store to the use case port.
type oauthStateStoreAdapter struct {
	store *cache.RedisOAuthStateStore
}

func (a *oauthStateStoreAdapter) Set(ctx context.Context, state string, info usecases.OAuthState) error {
	return a.store.Set(ctx, state, info.Provider, info.CodeVerifier)
}

func (a *oauthStateStoreAdapter) Consume(ctx context.Context, state string) (*usecases.OAuthState, error) {
	record, err := a.store.Consume(ctx, state)
	if err != nil {
		return nil, err
	}
	return &usecases.OAuthState{
		Provider:     record.Provider,
		CodeVerifier: record.CodeVerifier,
	}, nil
}

// configPolicyProvider derives the account security policy from the loaded
// configuration.
type configPolicyProvider struct {
	policy *user.SecurityPolicy
}

func newConfigPolicyProvider(authCfg config.AuthConfig) *configPolicyProvider {
	policy := user.DefaultSecurityPolicy()
	if authCfg.Lockout.MaxFailedAttempts > 0 {
		policy.MaxFailedLogins = authCfg.Lockout.MaxFailedAttempts
	}
	if authCfg.Lockout.LockMinutes > 0 {
		policy.LockoutDuration = time.Duration(authCfg.Lockout.LockMinutes) * time.Minute
	}
	if authCfg.Token.VerificationExpiresHours > 0 {
		policy.VerificationTokenTTL = time.Duration(authCfg.Token.VerificationExpiresHours) * time.Hour
	}
	if authCfg.Token.ResetExpiresMinutes > 0 {
		policy.ResetTokenTTL = time.Duration(authCfg.Token.ResetExpiresMinutes) * time.Minute
	}
	return &configPolicyProvider{policy: policy}
}

func (p *configPolicyProvider) GetSecurityPolicy(_ context.Context) *user.SecurityPolicy {
	return p.policy
}
