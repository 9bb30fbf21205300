package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type GetCurrentUserQuery struct {
	ActorID uint
}

// GetCurrentUserUseCase returns the signed-in user's own profile. Suspended
// accounts still see who they are; they just cannot act.
type GetCurrentUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetCurrentUserUseCase(userRepo user.Repository, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, query GetCurrentUserQuery) (*dto.UserDTO, error) {
	if query.ActorID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	existingUser, err := uc.userRepo.GetByID(ctx, query.ActorID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("unknown user")
		}
		uc.logger.Errorw("failed to get user", "error", err, "user_id", query.ActorID)
		return nil, err
	}

	result := dto.ToUserDTO(existingUser)
	return &result, nil
}
