package usecases

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

// OAuthUserInfo is the provider-neutral identity a client returns after the
// code exchange. RawProfile carries the provider's profile payload as
// returned, for the linked-account snapshot.
type OAuthUserInfo struct {
	Provider      string
	ProviderID    string
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
	RawProfile    map[string]interface{}
}

// OAuthClient wraps one provider's authorization-code flow with PKCE. The
// code verifier returned by GetAuthURL must be presented again at exchange.
type OAuthClient interface {
	GetAuthURL(state string) (authURL string, codeVerifier string, err error)
	ExchangeCode(ctx context.Context, code, codeVerifier string) (accessToken string, err error)
	GetUserInfo(ctx context.Context, accessToken string) (*OAuthUserInfo, error)
}

// OAuthState is the server-side record of one in-flight authorization.
type OAuthState struct {
	Provider     string
	CodeVerifier string
}

// OAuthStateStore holds pending states with a TTL. Consume is destructive; a
// state is good for exactly one callback.
type OAuthStateStore interface {
	Set(ctx context.Context, state string, info OAuthState) error
	Consume(ctx context.Context, state string) (*OAuthState, error)
}

type InitiateOAuthLoginCommand struct {
	Provider string
}

type InitiateOAuthLoginResult struct {
	AuthURL string
	State   string
}

// InitiateOAuthLoginUseCase starts the redirect dance: mint a state, get the
// provider URL, and park the PKCE verifier server-side until the callback.
type InitiateOAuthLoginUseCase struct {
	googleClient OAuthClient
	githubClient OAuthClient
	stateStore   OAuthStateStore
	logger       logger.Interface
}

func NewInitiateOAuthLoginUseCase(
	googleClient OAuthClient,
	githubClient OAuthClient,
	stateStore OAuthStateStore,
	logger logger.Interface,
) *InitiateOAuthLoginUseCase {
	return &InitiateOAuthLoginUseCase{
		googleClient: googleClient,
		githubClient: githubClient,
		stateStore:   stateStore,
		logger:       logger,
	}
}

func (uc *InitiateOAuthLoginUseCase) Execute(ctx context.Context, cmd InitiateOAuthLoginCommand) (*InitiateOAuthLoginResult, error) {
	client, err := selectOAuthClient(cmd.Provider, uc.googleClient, uc.githubClient)
	if err != nil {
		return nil, err
	}

	state, err := generateState()
	if err != nil {
		uc.logger.Errorw("failed to generate state", "error", err)
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	authURL, codeVerifier, err := client.GetAuthURL(state)
	if err != nil {
		uc.logger.Errorw("failed to build auth URL", "error", err, "provider", cmd.Provider)
		return nil, fmt.Errorf("failed to build auth URL: %w", err)
	}

	if err := uc.stateStore.Set(ctx, state, OAuthState{Provider: cmd.Provider, CodeVerifier: codeVerifier}); err != nil {
		uc.logger.Errorw("failed to store OAuth state", "error", err, "provider", cmd.Provider)
		return nil, fmt.Errorf("failed to store state: %w", err)
	}

	uc.logger.Infow("OAuth login initiated", "provider", cmd.Provider)

	return &InitiateOAuthLoginResult{
		AuthURL: authURL,
		State:   state,
	}, nil
}

func selectOAuthClient(provider string, google, github OAuthClient) (OAuthClient, error) {
	switch provider {
	case "google":
		return google, nil
	case "github":
		return github, nil
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported OAuth provider: %s", provider))
	}
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
