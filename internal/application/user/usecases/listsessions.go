package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type ListSessionsQuery struct {
	UserID uint
}

// ListSessionsUseCase returns the caller's signed-in devices. Expired rows
// waiting for cleanup are filtered out rather than shown as live sessions.
type ListSessionsUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewListSessionsUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *ListSessionsUseCase {
	return &ListSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context, query ListSessionsQuery) ([]dto.SessionDTO, error) {
	if query.UserID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	sessions, err := uc.sessionRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list sessions", "error", err, "user_id", query.UserID)
		return nil, errors.NewInternalError("failed to list sessions")
	}

	now := biztime.NowUTC()
	live := make([]*user.Session, 0, len(sessions))
	for _, s := range sessions {
		if !s.IsExpired(now) {
			live = append(live, s)
		}
	}

	return dto.ToSessionDTOs(live), nil
}
