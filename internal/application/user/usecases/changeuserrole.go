package usecases

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type ChangeUserRoleCommand struct {
	ActorID uint
	UserID  uint
	Role    string
}

// ChangeUserRoleUseCase moves an account between the four roles. An admin
// cannot demote themselves; that path locks a deployment out of its own
// admin panel.
type ChangeUserRoleUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewChangeUserRoleUseCase(userRepo user.Repository, logger logger.Interface) *ChangeUserRoleUseCase {
	return &ChangeUserRoleUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ChangeUserRoleUseCase) Execute(ctx context.Context, cmd ChangeUserRoleCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing change user role use case",
		"actor_id", cmd.ActorID, "user_id", cmd.UserID, "role", cmd.Role)

	actor, err := requireAdmin(ctx, uc.userRepo, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	newRole := authorization.UserRole(cmd.Role)
	if !newRole.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid role: %s", cmd.Role))
	}

	if cmd.UserID == actor.ID() && newRole != authorization.RoleAdmin {
		return nil, errors.NewForbiddenError("admins cannot change their own role")
	}

	target, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := target.ChangeRole(newRole); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, target); err != nil {
		uc.logger.Errorw("failed to save role change", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to save role change: %w", err)
	}

	uc.logger.Infow("user role changed",
		"user_id", cmd.UserID, "role", newRole, "changed_by", cmd.ActorID)

	result := dto.ToUserDTO(target)
	return &result, nil
}
