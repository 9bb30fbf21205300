package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/application/user/helpers"
	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/config"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type HandleOAuthCallbackCommand struct {
	Provider   string
	Code       string
	State      string
	DeviceName string
	DeviceType string
	IPAddress  string
	UserAgent  string
}

type OAuthCallbackResult struct {
	AuthResult
	IsNewUser bool
}

// HandleOAuthCallbackUseCase finishes the provider redirect: verify the
// state, trade the code for an identity, link or create the local account,
// and issue a session. Accounts born here are active immediately when the
// provider vouches for the email.
type HandleOAuthCallbackUseCase struct {
	userRepo       user.Repository
	oauthRepo      user.OAuthAccountRepository
	googleClient   OAuthClient
	githubClient   OAuthClient
	stateStore     OAuthStateStore
	jwtService     JWTService
	emailService   EmailService
	policyProvider SecurityPolicyProvider
	authHelper     *helpers.AuthHelper
	dispatcher     events.EventPublisher
	sessionConfig  config.SessionConfig
	logger         logger.Interface
}

func NewHandleOAuthCallbackUseCase(
	userRepo user.Repository,
	oauthRepo user.OAuthAccountRepository,
	googleClient OAuthClient,
	githubClient OAuthClient,
	stateStore OAuthStateStore,
	jwtService JWTService,
	emailService EmailService,
	policyProvider SecurityPolicyProvider,
	authHelper *helpers.AuthHelper,
	dispatcher events.EventPublisher,
	sessionConfig config.SessionConfig,
	logger logger.Interface,
) *HandleOAuthCallbackUseCase {
	return &HandleOAuthCallbackUseCase{
		userRepo:       userRepo,
		oauthRepo:      oauthRepo,
		googleClient:   googleClient,
		githubClient:   githubClient,
		stateStore:     stateStore,
		jwtService:     jwtService,
		emailService:   emailService,
		policyProvider: policyProvider,
		authHelper:     authHelper,
		dispatcher:     dispatcher,
		sessionConfig:  sessionConfig,
		logger:         logger,
	}
}

func (uc *HandleOAuthCallbackUseCase) Execute(ctx context.Context, cmd HandleOAuthCallbackCommand) (*OAuthCallbackResult, error) {
	state, err := uc.stateStore.Consume(ctx, cmd.State)
	if err != nil {
		uc.logger.Warnw("invalid or expired OAuth state", "provider", cmd.Provider, "error", err)
		return nil, errors.NewUnauthorizedError("invalid or expired state parameter")
	}
	// The state is bound to the provider it was minted for.
	if state.Provider != cmd.Provider {
		uc.logger.Warnw("OAuth state provider mismatch",
			"expected", state.Provider, "got", cmd.Provider)
		return nil, errors.NewUnauthorizedError("invalid or expired state parameter")
	}

	client, err := selectOAuthClient(cmd.Provider, uc.googleClient, uc.githubClient)
	if err != nil {
		return nil, err
	}

	accessToken, err := client.ExchangeCode(ctx, cmd.Code, state.CodeVerifier)
	if err != nil {
		uc.logger.Errorw("failed to exchange code", "error", err, "provider", cmd.Provider)
		return nil, errors.NewOAuthError(cmd.Provider, "exchange")
	}

	userInfo, err := client.GetUserInfo(ctx, accessToken)
	if err != nil {
		uc.logger.Errorw("failed to get user info", "error", err, "provider", cmd.Provider)
		return nil, errors.NewOAuthError(cmd.Provider, "userinfo")
	}

	existingUser, isNewUser, err := uc.resolveAccount(ctx, cmd.Provider, userInfo)
	if err != nil {
		return nil, err
	}

	if existingUser.RequiresVerification() {
		return nil, errors.NewAccountInactiveError("please verify your email address before signing in")
	}
	if !existingUser.CanPerformActions() {
		return nil, errors.NewAccountInactiveError()
	}

	sessionDuration := time.Duration(uc.sessionConfig.DefaultExpDays) * 24 * time.Hour
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

	uc.logger.Infow("OAuth login successful",
		"user_id", existingUser.ID(), "provider", cmd.Provider, "is_new_user", isNewUser)

	return &OAuthCallbackResult{
		AuthResult: AuthResult{
			User:         dto.ToUserDTO(existingUser),
			AccessToken:  issued.AccessToken,
			RefreshToken: issued.RefreshToken,
			ExpiresIn:    issued.ExpiresIn,
			SessionID:    issued.Session.ID,
		},
		IsNewUser: isNewUser,
	}, nil
}

// resolveAccount finds the local account for a provider identity, linking or
// creating one as needed.
func (uc *HandleOAuthCallbackUseCase) resolveAccount(ctx context.Context, provider string, userInfo *OAuthUserInfo) (*user.User, bool, error) {
	account, err := uc.oauthRepo.GetByProviderAndUserID(ctx, provider, userInfo.ProviderID)
	if err != nil && !errors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to get oauth account", "error", err, "provider", provider)
		return nil, false, fmt.Errorf("failed to get oauth account: %w", err)
	}

	if account != nil {
		existingUser, err := uc.userRepo.GetByID(ctx, account.UserID)
		if err != nil {
			uc.logger.Errorw("failed to get linked user", "error", err, "user_id", account.UserID)
			return nil, false, fmt.Errorf("failed to get user: %w", err)
		}

		account.RefreshProfile(userInfo.Email, userInfo.Name, userInfo.AvatarURL, userInfo.RawProfile)
		account.RecordLogin()
		if err := uc.oauthRepo.Update(ctx, account); err != nil {
			uc.logger.Warnw("failed to update oauth account", "error", err, "oauth_account_id", account.ID)
		}
		return existingUser, false, nil
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, userInfo.Email)
	if err != nil && !errors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, false, fmt.Errorf("failed to get user by email: %w", err)
	}

	isNewUser := false
	if existingUser == nil {
		existingUser, err = uc.createFromProvider(ctx, userInfo)
		if err != nil {
			return nil, false, err
		}
		isNewUser = true
	}

	link, err := user.NewOAuthAccount(existingUser.ID(), provider, userInfo.ProviderID, userInfo.Email)
	if err != nil {
		uc.logger.Errorw("failed to build oauth link", "error", err)
		return nil, false, fmt.Errorf("failed to link oauth account: %w", err)
	}
	link.ProviderUsername = userInfo.Name
	link.ProviderAvatarURL = userInfo.AvatarURL
	link.ProfileData = userInfo.RawProfile

	if err := uc.oauthRepo.Create(ctx, link); err != nil {
		uc.logger.Errorw("failed to save oauth link", "error", err, "user_id", existingUser.ID())
		return nil, false, fmt.Errorf("failed to link oauth account: %w", err)
	}

	return existingUser, isNewUser, nil
}

func (uc *HandleOAuthCallbackUseCase) createFromProvider(ctx context.Context, userInfo *OAuthUserInfo) (*user.User, error) {
	email, err := vo.NewEmail(userInfo.Email)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("provider returned an invalid email: %v", err))
	}
	name := providerDisplayName(userInfo.Provider, userInfo.Name)

	var newUser *user.User
	if userInfo.EmailVerified {
		newUser, err = user.NewVerifiedUser(email, name, authorization.RoleUser)
	} else {
		newUser, err = user.NewUser(email, name, authorization.RoleUser)
	}
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if userInfo.AvatarURL != "" {
		avatarURL := userInfo.AvatarURL
		if err := newUser.UpdateProfile(nil, &avatarURL); err != nil {
			uc.logger.Warnw("failed to set provider avatar", "error", err)
		}
	}

	// Providers that do not vouch for the email leave the account pending;
	// the regular verification mail completes the signup.
	var verificationToken *vo.Token
	if !userInfo.EmailVerified {
		policy := uc.securityPolicy(ctx)
		verificationToken, err = newUser.GenerateEmailVerificationToken(policy.VerificationTokenTTL)
		if err != nil {
			uc.logger.Errorw("failed to generate verification token", "error", err)
			return nil, fmt.Errorf("failed to generate verification token: %w", err)
		}
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.authHelper.GrantAdminIfFirst(ctx, newUser)

	event := user.NewUserRegisteredEvent(
		newUser.ID(),
		newUser.Email().String(),
		newUser.Name().String(),
		newUser.Role().String(),
	)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish user registered event", "error", err, "user_id", newUser.ID())
	}

	if verificationToken != nil {
		if err := uc.emailService.SendVerificationEmail(ctx, newUser.Email().String(), verificationToken.String()); err != nil {
			uc.logger.Warnw("failed to send verification email", "error", err, "user_id", newUser.ID())
		}
	}

	return newUser, nil
}

func (uc *HandleOAuthCallbackUseCase) securityPolicy(ctx context.Context) *user.SecurityPolicy {
	if uc.policyProvider != nil {
		if policy := uc.policyProvider.GetSecurityPolicy(ctx); policy != nil {
			return policy
		}
	}
	return user.DefaultSecurityPolicy()
}

var nameSanitizer = strings.NewReplacer("_", " ", "-", " ")

// providerDisplayName coerces a provider display name into the local Name
// rules, falling back to a neutral label when nothing usable survives.
func providerDisplayName(provider, raw string) *vo.Name {
	cleaned := make([]rune, 0, len(raw))
	for _, r := range nameSanitizer.Replace(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == ' ', r == '\'', r == '.':
			cleaned = append(cleaned, r)
		}
	}
	candidate := strings.Join(strings.Fields(string(cleaned)), " ")

	if name, err := vo.NewName(candidate); err == nil {
		return name
	}

	caser := cases.Title(language.English)
	fallback, _ := vo.NewName(caser.String(provider) + " User")
	return fallback
}
