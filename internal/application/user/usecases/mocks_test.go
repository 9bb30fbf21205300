package usecases

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/logger"
)

type mockUserRepository struct {
	CreateFunc                      func(ctx context.Context, u *user.User) error
	UpdateFunc                      func(ctx context.Context, u *user.User) error
	GetByIDFunc                     func(ctx context.Context, id uint) (*user.User, error)
	GetByIDsFunc                    func(ctx context.Context, ids []uint) ([]*user.User, error)
	GetByUUIDFunc                   func(ctx context.Context, userUUID string) (*user.User, error)
	GetByEmailFunc                  func(ctx context.Context, email string) (*user.User, error)
	GetByVerificationTokenHashFunc  func(ctx context.Context, tokenHash string) (*user.User, error)
	GetByPasswordResetTokenHashFunc func(ctx context.Context, tokenHash string) (*user.User, error)
	ExistsByEmailFunc               func(ctx context.Context, email string) (bool, error)
	ListFunc                        func(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error)
	ListAssignableFunc              func(ctx context.Context) ([]*user.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByUUID(ctx context.Context, userUUID string) (*user.User, error) {
	if m.GetByUUIDFunc != nil {
		return m.GetByUUIDFunc(ctx, userUUID)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByVerificationTokenHash(ctx context.Context, tokenHash string) (*user.User, error) {
	if m.GetByVerificationTokenHashFunc != nil {
		return m.GetByVerificationTokenHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByPasswordResetTokenHash(ctx context.Context, tokenHash string) (*user.User, error) {
	if m.GetByPasswordResetTokenHashFunc != nil {
		return m.GetByPasswordResetTokenHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ListAssignable(ctx context.Context) ([]*user.User, error) {
	if m.ListAssignableFunc != nil {
		return m.ListAssignableFunc(ctx)
	}
	return nil, nil
}

type mockSessionRepository struct {
	CreateFunc                func(ctx context.Context, session *user.Session) error
	GetByIDFunc               func(ctx context.Context, sessionID string) (*user.Session, error)
	GetByUserIDFunc           func(ctx context.Context, userID uint) ([]*user.Session, error)
	GetByRefreshTokenHashFunc func(ctx context.Context, refreshTokenHash string) (*user.Session, error)
	UpdateFunc                func(ctx context.Context, session *user.Session) error
	DeleteFunc                func(ctx context.Context, sessionID string) error
	DeleteByUserIDFunc        func(ctx context.Context, userID uint) error
	DeleteExpiredFunc         func(ctx context.Context) error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *user.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByUserID(ctx context.Context, userID uint) ([]*user.Session, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*user.Session, error) {
	if m.GetByRefreshTokenHashFunc != nil {
		return m.GetByRefreshTokenHashFunc(ctx, refreshTokenHash)
	}
	return nil, nil
}

func (m *mockSessionRepository) Update(ctx context.Context, session *user.Session) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return nil
}

type mockOAuthAccountRepository struct {
	CreateFunc                 func(ctx context.Context, account *user.OAuthAccount) error
	GetByProviderAndUserIDFunc func(ctx context.Context, provider, providerUserID string) (*user.OAuthAccount, error)
	GetByUserIDFunc            func(ctx context.Context, userID uint) ([]*user.OAuthAccount, error)
	UpdateFunc                 func(ctx context.Context, account *user.OAuthAccount) error
	DeleteFunc                 func(ctx context.Context, id uint) error
}

func (m *mockOAuthAccountRepository) Create(ctx context.Context, account *user.OAuthAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil
}

func (m *mockOAuthAccountRepository) GetByProviderAndUserID(ctx context.Context, provider, providerUserID string) (*user.OAuthAccount, error) {
	if m.GetByProviderAndUserIDFunc != nil {
		return m.GetByProviderAndUserIDFunc(ctx, provider, providerUserID)
	}
	return nil, nil
}

func (m *mockOAuthAccountRepository) GetByUserID(ctx context.Context, userID uint) ([]*user.OAuthAccount, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockOAuthAccountRepository) Update(ctx context.Context, account *user.OAuthAccount) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	return nil
}

func (m *mockOAuthAccountRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockPasswordHasher hashes by prefixing, so tests can seed stored hashes
// without bcrypt.
type mockPasswordHasher struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(password, hash string) error
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockPasswordHasher) Verify(password, hash string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(password, hash)
	}
	if hash != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type mockJWTService struct {
	GenerateFunc             func(userUUID string, sessionID string, role authorization.UserRole) (*TokenPair, error)
	ValidateRefreshTokenFunc func(token string) (*RefreshTokenClaims, error)
}

func (m *mockJWTService) Generate(userUUID string, sessionID string, role authorization.UserRole) (*TokenPair, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userUUID, sessionID, role)
	}
	return &TokenPair{
		AccessToken:  "access-" + sessionID,
		RefreshToken: "refresh-" + sessionID,
		ExpiresIn:    900,
	}, nil
}

func (m *mockJWTService) ValidateRefreshToken(token string) (*RefreshTokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return &RefreshTokenClaims{}, nil
}

type mockEmailService struct {
	SendVerificationEmailFunc    func(ctx context.Context, to, token string) error
	SendPasswordResetEmailFunc   func(ctx context.Context, to, token string) error
	SendPasswordChangedEmailFunc func(ctx context.Context, to string) error
}

func (m *mockEmailService) SendVerificationEmail(ctx context.Context, to, token string) error {
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(ctx, to, token)
	}
	return nil
}

func (m *mockEmailService) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(ctx, to, token)
	}
	return nil
}

func (m *mockEmailService) SendPasswordChangedEmail(ctx context.Context, to string) error {
	if m.SendPasswordChangedEmailFunc != nil {
		return m.SendPasswordChangedEmailFunc(ctx, to)
	}
	return nil
}

type mockPolicyProvider struct {
	GetSecurityPolicyFunc func(ctx context.Context) *user.SecurityPolicy
}

func (m *mockPolicyProvider) GetSecurityPolicy(ctx context.Context) *user.SecurityPolicy {
	if m.GetSecurityPolicyFunc != nil {
		return m.GetSecurityPolicyFunc(ctx)
	}
	return user.DefaultSecurityPolicy()
}

type mockOAuthClient struct {
	GetAuthURLFunc   func(state string) (string, string, error)
	ExchangeCodeFunc func(ctx context.Context, code, codeVerifier string) (string, error)
	GetUserInfoFunc  func(ctx context.Context, accessToken string) (*OAuthUserInfo, error)
}

func (m *mockOAuthClient) GetAuthURL(state string) (string, string, error) {
	if m.GetAuthURLFunc != nil {
		return m.GetAuthURLFunc(state)
	}
	return "https://provider.example/oauth/authorize?state=" + state, "test-code-verifier", nil
}

func (m *mockOAuthClient) ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error) {
	if m.ExchangeCodeFunc != nil {
		return m.ExchangeCodeFunc(ctx, code, codeVerifier)
	}
	return "provider-access-token", nil
}

func (m *mockOAuthClient) GetUserInfo(ctx context.Context, accessToken string) (*OAuthUserInfo, error) {
	if m.GetUserInfoFunc != nil {
		return m.GetUserInfoFunc(ctx, accessToken)
	}
	return &OAuthUserInfo{
		Provider:      "google",
		ProviderID:    "google-uid-1",
		Email:         "oauth.user@example.com",
		Name:          "Robin Oak",
		EmailVerified: true,
		RawProfile:    map[string]interface{}{"id": "google-uid-1", "locale": "en"},
	}, nil
}

type mockOAuthStateStore struct {
	SetFunc     func(ctx context.Context, state string, info OAuthState) error
	ConsumeFunc func(ctx context.Context, state string) (*OAuthState, error)
}

func (m *mockOAuthStateStore) Set(ctx context.Context, state string, info OAuthState) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, state, info)
	}
	return nil
}

func (m *mockOAuthStateStore) Consume(ctx context.Context, state string) (*OAuthState, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, state)
	}
	return &OAuthState{Provider: "google", CodeVerifier: "test-code-verifier"}, nil
}

type mockEventDispatcher struct {
	PublishFunc    func(event events.DomainEvent) error
	PublishAllFunc func(evts []events.DomainEvent) error
}

func (m *mockEventDispatcher) Publish(event events.DomainEvent) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *mockEventDispatcher) PublishAll(evts []events.DomainEvent) error {
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(evts)
	}
	return nil
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	FatalFunc  func(msg string, args ...any)
	DebugwFunc func(msg string, keysAndValues ...any)
	InfowFunc  func(msg string, keysAndValues ...any)
	WarnwFunc  func(msg string, keysAndValues ...any)
	ErrorwFunc func(msg string, keysAndValues ...any)
	FatalwFunc func(msg string, keysAndValues ...any)
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) Fatal(msg string, args ...any) {
	if m.FatalFunc != nil {
		m.FatalFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Infow(msg string, keysAndValues ...any) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...any) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Fatalw(msg string, keysAndValues ...any) {
	if m.FatalwFunc != nil {
		m.FatalwFunc(msg, keysAndValues...)
	}
}
