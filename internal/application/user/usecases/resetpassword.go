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

type ResetPasswordCommand struct {
	Token       string
	NewPassword string
}

// ResetPasswordUseCase consumes a reset token and replaces the password.
// Every session dies with the old password; whoever holds the mailbox signs
// in fresh.
type ResetPasswordUseCase struct {
	userRepo       user.Repository
	sessionRepo    user.SessionRepository
	passwordHasher user.PasswordHasher
	emailService   EmailService
	logger         logger.Interface
}

func NewResetPasswordUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	passwordHasher user.PasswordHasher,
	emailService EmailService,
	logger logger.Interface,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		passwordHasher: passwordHasher,
		emailService:   emailService,
		logger:         logger,
	}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) error {
	token, err := vo.NewTokenFromValue(cmd.Token)
	if err != nil {
		return errors.NewValidationError("invalid or expired reset token")
	}

	existingUser, err := uc.userRepo.GetByPasswordResetTokenHash(ctx, token.Hash())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("invalid or expired reset token")
		}
		uc.logger.Errorw("failed to get user by reset token",
			"error", err, "token_prefix", logutil.TruncateForLog(cmd.Token, 8))
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	newPassword, err := vo.NewPassword(cmd.NewPassword)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := existingUser.ResetPassword(cmd.Token, newPassword, uc.passwordHasher); err != nil {
		uc.logger.Warnw("password reset rejected", "error", err, "user_id", existingUser.ID())
		return errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, existingUser); err != nil {
		uc.logger.Errorw("failed to update user", "error", err, "user_id", existingUser.ID())
		return fmt.Errorf("failed to update user: %w", err)
	}

	if err := uc.sessionRepo.DeleteByUserID(ctx, existingUser.ID()); err != nil {
		uc.logger.Warnw("failed to revoke sessions", "error", err, "user_id", existingUser.ID())
	}

	if err := uc.emailService.SendPasswordChangedEmail(ctx, existingUser.Email().String()); err != nil {
		uc.logger.Warnw("failed to send password changed email", "error", err, "user_id", existingUser.ID())
	}

	uc.logger.Infow("password reset", "user_id", existingUser.ID())
	return nil
}
