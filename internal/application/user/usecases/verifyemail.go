package usecases

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils/logutil"
)

type VerifyEmailCommand struct {
	Token string
}

// VerifyEmailUseCase consumes a verification token and activates the pending
// account. Lookup runs against the token hash; the raw value never touches
// storage.
type VerifyEmailUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewVerifyEmailUseCase(userRepo user.Repository, logger logger.Interface) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, cmd VerifyEmailCommand) error {
	token, err := vo.NewTokenFromValue(cmd.Token)
	if err != nil {
		return errors.NewValidationError("invalid or expired verification token")
	}

	existingUser, err := uc.userRepo.GetByVerificationTokenHash(ctx, token.Hash())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("invalid or expired verification token")
		}
		uc.logger.Errorw("failed to get user by verification token",
			"error", err, "token_prefix", logutil.TruncateForLog(cmd.Token, 8))
		return fmt.Errorf("failed to look up verification token: %w", err)
	}

	if err := existingUser.VerifyEmail(cmd.Token); err != nil {
		uc.logger.Warnw("email verification rejected", "error", err, "user_id", existingUser.ID())
		return errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, existingUser); err != nil {
		uc.logger.Errorw("failed to update user", "error", err, "user_id", existingUser.ID())
		return fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("email verified", "user_id", existingUser.ID(), "status", existingUser.Status())
	return nil
}
