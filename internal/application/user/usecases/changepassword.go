package usecases

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/application/user/helpers"
	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type ChangePasswordCommand struct {
	ActorID         uint
	SessionID       string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordUseCase replaces the caller's password after proving the
// current one. Every other session is revoked so a leaked refresh token dies
// with the old password; the calling session stays alive.
type ChangePasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	emailService   EmailService
	authHelper     *helpers.AuthHelper
	logger         logger.Interface
}

func NewChangePasswordUseCase(
	userRepo user.Repository,
	passwordHasher user.PasswordHasher,
	emailService EmailService,
	authHelper *helpers.AuthHelper,
	logger logger.Interface,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		emailService:   emailService,
		authHelper:     authHelper,
		logger:         logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	uc.logger.Infow("executing change password use case", "user_id", cmd.ActorID)

	actor, err := requireActiveActor(ctx, uc.userRepo, cmd.ActorID)
	if err != nil {
		return err
	}

	if !actor.HasPassword() {
		return errors.NewPasswordNotSetError()
	}
	if cmd.CurrentPassword == cmd.NewPassword {
		return errors.NewValidationError("new password must be different from the current one")
	}

	newPassword, err := vo.NewPassword(cmd.NewPassword)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	// A nil policy keeps the wrong-guess counter off the login lockout; the
	// caller already holds an authenticated session.
	if err := actor.VerifyPassword(cmd.CurrentPassword, uc.passwordHasher, nil); err != nil {
		uc.logger.Warnw("change password rejected", "user_id", cmd.ActorID)
		return errors.NewValidationError("current password is incorrect")
	}

	if err := actor.SetPassword(newPassword, uc.passwordHasher); err != nil {
		uc.logger.Errorw("failed to set password", "error", err, "user_id", cmd.ActorID)
		return fmt.Errorf("failed to set password: %w", err)
	}

	if err := uc.userRepo.Update(ctx, actor); err != nil {
		uc.logger.Errorw("failed to save user", "error", err, "user_id", cmd.ActorID)
		return fmt.Errorf("failed to save user: %w", err)
	}

	uc.authHelper.RevokeOtherSessions(ctx, actor.ID(), cmd.SessionID)

	if err := uc.emailService.SendPasswordChangedEmail(ctx, actor.Email().String()); err != nil {
		uc.logger.Warnw("failed to send password changed email", "error", err, "user_id", cmd.ActorID)
	}

	uc.logger.Infow("password changed", "user_id", cmd.ActorID)
	return nil
}
