package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/reque-io/reque/internal/application/user/helpers"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/config"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RefreshTokenUseCase rotates a session's token pair. The presented refresh
// token must both carry a valid signature and hash to a live session row, so
// a revoked session kills the token even before its JWT expiry.
type RefreshTokenUseCase struct {
	userRepo      user.Repository
	sessionRepo   user.SessionRepository
	jwtService    JWTService
	authHelper    *helpers.AuthHelper
	sessionConfig config.SessionConfig
	logger        logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	jwtService JWTService,
	authHelper *helpers.AuthHelper,
	sessionConfig config.SessionConfig,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		jwtService:    jwtService,
		authHelper:    authHelper,
		sessionConfig: sessionConfig,
		logger:        logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	claims, err := uc.jwtService.ValidateRefreshToken(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	session, err := uc.sessionRepo.GetByRefreshTokenHash(ctx, uc.authHelper.HashToken(cmd.RefreshToken))
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewTokenInvalidError("refresh token")
		}
		uc.logger.Errorw("failed to get session by refresh token", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	// The stored hash already authenticated the token; the claim check guards
	// against a token that was re-bound to another session.
	if session.ID != claims.SessionID {
		uc.logger.Warnw("refresh token session mismatch",
			"session_id", session.ID, "claim_session_id", claims.SessionID)
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	now := biztime.NowUTC()
	if session.IsExpired(now) {
		if err := uc.sessionRepo.Delete(ctx, session.ID); err != nil {
			uc.logger.Warnw("failed to delete expired session", "error", err, "session_id", session.ID)
		}
		return nil, errors.NewSessionExpiredError()
	}

	existingUser, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewTokenInvalidError("refresh token")
		}
		uc.logger.Errorw("failed to get user", "error", err, "user_id", session.UserID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !existingUser.CanPerformActions() {
		uc.logger.Warnw("refresh rejected for inactive account",
			"user_id", existingUser.ID(), "status", existingUser.Status())
		return nil, errors.NewAccountInactiveError()
	}

	tokens, err := uc.jwtService.Generate(existingUser.UUID(), session.ID, existingUser.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "error", err, "user_id", existingUser.ID())
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// Sliding expiry; a remember-me session is never shortened.
	expiresAt := now.Add(time.Duration(uc.sessionConfig.DefaultExpDays) * 24 * time.Hour)
	if session.ExpiresAt.After(expiresAt) {
		expiresAt = session.ExpiresAt
	}
	session.Rotate(uc.authHelper.HashToken(tokens.RefreshToken), expiresAt)

	if err := uc.sessionRepo.Update(ctx, session); err != nil {
		uc.logger.Errorw("failed to update session", "error", err, "session_id", session.ID)
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	uc.logger.Infow("token refreshed", "user_id", existingUser.ID(), "session_id", session.ID)

	return &RefreshTokenResult{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}
