package usecases

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type RevokeSessionCommand struct {
	UserID    uint
	SessionID string
}

// RevokeSessionUseCase signs out one of the caller's own devices. The session
// must belong to the caller; session IDs are unguessable but an explicit
// ownership check keeps a leaked ID from revoking someone else's device.
type RevokeSessionUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewRevokeSessionUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *RevokeSessionUseCase {
	return &RevokeSessionUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *RevokeSessionUseCase) Execute(ctx context.Context, cmd RevokeSessionCommand) error {
	if cmd.UserID == 0 {
		return errors.NewUnauthorizedError("authentication required")
	}
	if cmd.SessionID == "" {
		return errors.NewValidationError("session ID is required")
	}

	session, err := uc.sessionRepo.GetByID(ctx, cmd.SessionID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewNotFoundError("session not found")
		}
		uc.logger.Errorw("failed to load session", "error", err, "session_id", cmd.SessionID)
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	if session.UserID != cmd.UserID {
		return errors.NewNotFoundError("session not found")
	}

	if err := uc.sessionRepo.Delete(ctx, cmd.SessionID); err != nil {
		uc.logger.Errorw("failed to delete session", "error", err, "session_id", cmd.SessionID)
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	uc.logger.Infow("session revoked", "user_id", cmd.UserID, "session_id", cmd.SessionID)
	return nil
}
