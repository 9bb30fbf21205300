package usecases

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type LogoutCommand struct {
	SessionID string
}

// LogoutUseCase revokes one session. Logging out an already-gone session is
// a success; the client outcome is identical.
type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.SessionID == "" {
		return errors.NewUnauthorizedError("authentication required")
	}

	if err := uc.sessionRepo.Delete(ctx, cmd.SessionID); err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Infow("logout for unknown session", "session_id", cmd.SessionID)
			return nil
		}
		uc.logger.Errorw("failed to delete session", "error", err, "session_id", cmd.SessionID)
		return fmt.Errorf("failed to logout: %w", err)
	}

	uc.logger.Infow("user logged out", "session_id", cmd.SessionID)
	return nil
}
