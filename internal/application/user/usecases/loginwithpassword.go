package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/application/user/helpers"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/config"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type LoginWithPasswordCommand struct {
	Email      string
	Password   string
	RememberMe bool
	DeviceName string
	DeviceType string
	IPAddress  string
	UserAgent  string
}

// AuthResult is the shared outcome of password and OAuth sign-ins.
type AuthResult struct {
	User         dto.UserDTO
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	SessionID    string
}

// LoginWithPasswordUseCase verifies credentials and issues a session with a
// JWT pair. Failures before the password check answer with the same generic
// message so the endpoint cannot be used to probe for accounts.
type LoginWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	jwtService     JWTService
	authHelper     *helpers.AuthHelper
	policyProvider SecurityPolicyProvider
	sessionConfig  config.SessionConfig
	logger         logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	passwordHasher user.PasswordHasher,
	jwtService JWTService,
	authHelper *helpers.AuthHelper,
	policyProvider SecurityPolicyProvider,
	sessionConfig config.SessionConfig,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		jwtService:     jwtService,
		authHelper:     authHelper,
		policyProvider: policyProvider,
		sessionConfig:  sessionConfig,
		logger:         logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewInvalidCredentialsError()
		}
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if existingUser.IsLocked(biztime.NowUTC()) {
		uc.logger.Warnw("login attempt on locked account", "user_id", existingUser.ID())
		return nil, errors.NewAccountLockedError()
	}

	// OAuth-only accounts have no password; answer as for a wrong one.
	if !existingUser.HasPassword() {
		return nil, errors.NewInvalidCredentialsError()
	}

	policy := uc.securityPolicy(ctx)
	if err := existingUser.VerifyPassword(cmd.Password, uc.passwordHasher, policy); err != nil {
		uc.authHelper.SaveLoginOutcome(ctx, existingUser)
		uc.logger.Warnw("failed login attempt",
			"user_id", existingUser.ID(),
			"failed_attempts", existingUser.FailedLoginAttempts(),
		)
		return nil, errors.NewInvalidCredentialsError()
	}

	// Account state is reported only after the caller proved the password.
	if existingUser.RequiresVerification() {
		return nil, errors.NewAccountInactiveError("please verify your email address before signing in")
	}
	if !existingUser.CanPerformActions() {
		return nil, errors.NewAccountInactiveError()
	}

	sessionDuration := time.Duration(uc.sessionConfig.DefaultExpDays) * 24 * time.Hour
	if cmd.RememberMe {
		sessionDuration = time.Duration(uc.sessionConfig.RememberExpDays) * 24 * time.Hour
	}

	issued, err := uc.authHelper.IssueSession(
		ctx,
		existingUser,
		helpers.DeviceInfo{
			DeviceName: cmd.DeviceName,
			DeviceType: cmd.DeviceType,
			IPAddress:  cmd.IPAddress,
			UserAgent:  cmd.UserAgent,
		},
		sessionDuration,
		func(userUUID, sessionID string) (string, string, int64, error) {
			tokens, err := uc.jwtService.Generate(userUUID, sessionID, existingUser.Role())
			if err != nil {
				return "", "", 0, err
			}
			return tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresIn, nil
		},
	)
	if err != nil {
		return nil, err
	}

	existingUser.RecordLogin()
	uc.authHelper.SaveLoginOutcome(ctx, existingUser)

	uc.logger.Infow("user logged in", "user_id", existingUser.ID(), "session_id", issued.Session.ID)

	return &AuthResult{
		User:         dto.ToUserDTO(existingUser),
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
		ExpiresIn:    issued.ExpiresIn,
		SessionID:    issued.Session.ID,
	}, nil
}

func (uc *LoginWithPasswordUseCase) securityPolicy(ctx context.Context) *user.SecurityPolicy {
	if uc.policyProvider != nil {
		if policy := uc.policyProvider.GetSecurityPolicy(ctx); policy != nil {
			return policy
		}
	}
	return user.DefaultSecurityPolicy()
}
