package usecases

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type ChangeUserStatusCommand struct {
	ActorID uint
	UserID  uint
	Status  string
}

// ChangeUserStatusUseCase activates or suspends an account. Suspension
// revokes every session immediately; access tokens ride out their few
// remaining minutes but no refresh survives.
type ChangeUserStatusUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	dispatcher  events.EventPublisher
	logger      logger.Interface
}

func NewChangeUserStatusUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	dispatcher events.EventPublisher,
	logger logger.Interface,
) *ChangeUserStatusUseCase {
	return &ChangeUserStatusUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

func (uc *ChangeUserStatusUseCase) Execute(ctx context.Context, cmd ChangeUserStatusCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing change user status use case",
		"actor_id", cmd.ActorID, "user_id", cmd.UserID, "status", cmd.Status)

	actor, err := requireAdmin(ctx, uc.userRepo, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	status, err := vo.NewStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.UserID == actor.ID() && status == vo.StatusSuspended {
		return nil, errors.NewForbiddenError("admins cannot suspend their own account")
	}

	target, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := target.ChangeStatus(status); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, target); err != nil {
		uc.logger.Errorw("failed to save status change", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to save status change: %w", err)
	}

	if status == vo.StatusSuspended {
		if err := uc.sessionRepo.DeleteByUserID(ctx, target.ID()); err != nil {
			uc.logger.Warnw("failed to revoke sessions of suspended user",
				"error", err, "user_id", target.ID())
		}

		event := user.NewUserSuspendedEvent(target.ID(), target.Email().String())
		if err := uc.dispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish user suspended event", "error", err, "user_id", target.ID())
		}
	}

	uc.logger.Infow("user status changed",
		"user_id", cmd.UserID, "status", status, "changed_by", cmd.ActorID)

	result := dto.ToUserDTO(target)
	return &result, nil
}
