package usecases

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type ListAssignableUsersQuery struct {
	ActorID uint
}

// ListAssignableUsersUseCase feeds the assignment picker: active team
// members and admins. Staff only; others never see the roster.
type ListAssignableUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListAssignableUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListAssignableUsersUseCase {
	return &ListAssignableUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListAssignableUsersUseCase) Execute(ctx context.Context, query ListAssignableUsersQuery) ([]dto.AssignableUserDTO, error) {
	actor, err := requireActiveActor(ctx, uc.userRepo, query.ActorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role().IsStaff() {
		return nil, errors.NewForbiddenError("only staff can browse assignable users")
	}

	users, err := uc.userRepo.ListAssignable(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list assignable users", "error", err)
		return nil, fmt.Errorf("failed to list assignable users: %w", err)
	}

	return dto.ToAssignableUserDTOs(users), nil
}
