package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
)

// EmailService delivers the account lifecycle mails. Implementations live in
// infrastructure; failures are logged by callers and never fail the
// triggering operation.
type EmailService interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
	SendPasswordResetEmail(ctx context.Context, to, token string) error
	SendPasswordChangedEmail(ctx context.Context, to string) error
}

// TokenPair is one minted access/refresh pair. ExpiresIn is the access token
// lifetime in seconds.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RefreshTokenClaims is the subset of refresh token claims the rotation flow
// needs.
type RefreshTokenClaims struct {
	UserUUID  string
	SessionID string
}

// JWTService mints and validates the HS256 token pairs. Claims carry the
// user UUID, session ID, role, and token type.
type JWTService interface {
	Generate(userUUID string, sessionID string, role authorization.UserRole) (*TokenPair, error)
	ValidateRefreshToken(token string) (*RefreshTokenClaims, error)
}

// SecurityPolicyProvider resolves the lockout and token TTL policy, usually
// from configuration.
type SecurityPolicyProvider interface {
	GetSecurityPolicy(ctx context.Context) *user.SecurityPolicy
}

type RegisterWithPasswordExecutor interface {
	Execute(ctx context.Context, cmd RegisterWithPasswordCommand) (*RegisterWithPasswordResult, error)
}

type VerifyEmailExecutor interface {
	Execute(ctx context.Context, cmd VerifyEmailCommand) error
}

type LoginWithPasswordExecutor interface {
	Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*AuthResult, error)
}

type InitiateOAuthLoginExecutor interface {
	Execute(ctx context.Context, cmd InitiateOAuthLoginCommand) (*InitiateOAuthLoginResult, error)
}

type HandleOAuthCallbackExecutor interface {
	Execute(ctx context.Context, cmd HandleOAuthCallbackCommand) (*OAuthCallbackResult, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, cmd LogoutCommand) error
}

type ListSessionsExecutor interface {
	Execute(ctx context.Context, query ListSessionsQuery) ([]dto.SessionDTO, error)
}

type RevokeSessionExecutor interface {
	Execute(ctx context.Context, cmd RevokeSessionCommand) error
}

type GetCurrentUserExecutor interface {
	Execute(ctx context.Context, query GetCurrentUserQuery) (*dto.UserDTO, error)
}

type UpdateProfileExecutor interface {
	Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error)
}

type ChangePasswordExecutor interface {
	Execute(ctx context.Context, cmd ChangePasswordCommand) error
}

type RequestPasswordResetExecutor interface {
	Execute(ctx context.Context, cmd RequestPasswordResetCommand) error
}

type ResetPasswordExecutor interface {
	Execute(ctx context.Context, cmd ResetPasswordCommand) error
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error)
}

type ChangeUserRoleExecutor interface {
	Execute(ctx context.Context, cmd ChangeUserRoleCommand) (*dto.UserDTO, error)
}

type ChangeUserStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeUserStatusCommand) (*dto.UserDTO, error)
}

type ListAssignableUsersExecutor interface {
	Execute(ctx context.Context, query ListAssignableUsersQuery) ([]dto.AssignableUserDTO, error)
}
