package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

const maxAvatarURLLength = 500

type UpdateProfileCommand struct {
	ActorID   uint
	Name      *string
	AvatarURL *string
}

// UpdateProfileUseCase lets a user change their own display name and avatar.
// Email and role are not profile fields and have their own flows.
type UpdateProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing update profile use case", "user_id", cmd.ActorID)

	if cmd.Name == nil && cmd.AvatarURL == nil {
		return nil, errors.NewValidationError("nothing to update")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	var name *vo.Name
	if cmd.Name != nil {
		name, err = vo.NewName(*cmd.Name)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	var avatarURL *string
	if cmd.AvatarURL != nil {
		trimmed := strings.TrimSpace(*cmd.AvatarURL)
		if len(trimmed) > maxAvatarURLLength {
			return nil, errors.NewValidationError(fmt.Sprintf("avatar URL cannot exceed %d characters", maxAvatarURLLength))
		}
		// An empty string clears the avatar.
		if trimmed != "" && !strings.HasPrefix(trimmed, "https://") && !strings.HasPrefix(trimmed, "http://") {
			return nil, errors.NewValidationError("avatar URL must be an http(s) URL")
		}
		avatarURL = &trimmed
	}

	if err := actor.UpdateProfile(name, avatarURL); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, actor); err != nil {
		uc.logger.Errorw("failed to save profile", "error", err, "user_id", cmd.ActorID)
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	uc.logger.Infow("profile updated", "user_id", cmd.ActorID)

	result := dto.ToUserDTO(actor)
	return &result, nil
}
