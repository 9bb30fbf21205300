package usecases

import (
	"context"
	"fmt"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/application/user/helpers"
	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils/logutil"
)

type RegisterWithPasswordCommand struct {
	Email    string
	Password string
	Name     string
}

type RegisterWithPasswordResult struct {
	User dto.UserDTO
}

// RegisterWithPasswordUseCase creates a pending account and mails the
// verification token. The first account in the store is promoted to admin so
// a fresh deployment can be administered.
type RegisterWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	emailService   EmailService
	policyProvider SecurityPolicyProvider
	authHelper     *helpers.AuthHelper
	dispatcher     events.EventPublisher
	logger         logger.Interface
}

func NewRegisterWithPasswordUseCase(
	userRepo user.Repository,
	passwordHasher user.PasswordHasher,
	emailService EmailService,
	policyProvider SecurityPolicyProvider,
	authHelper *helpers.AuthHelper,
	dispatcher events.EventPublisher,
	logger logger.Interface,
) *RegisterWithPasswordUseCase {
	return &RegisterWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		emailService:   emailService,
		policyProvider: policyProvider,
		authHelper:     authHelper,
		dispatcher:     dispatcher,
		logger:         logger,
	}
}

func (uc *RegisterWithPasswordUseCase) Execute(ctx context.Context, cmd RegisterWithPasswordCommand) (*RegisterWithPasswordResult, error) {
	uc.logger.Infow("executing register with password use case", "email", logutil.MaskEmail(cmd.Email))

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	name, err := vo.NewName(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("an account with this email already exists")
	}

	newUser, err := user.NewUser(email, name, authorization.RoleUser)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := newUser.SetPassword(password, uc.passwordHasher); err != nil {
		uc.logger.Errorw("failed to set password", "error", err)
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	policy := uc.securityPolicy(ctx)
	token, err := newUser.GenerateEmailVerificationToken(policy.VerificationTokenTTL)
	if err != nil {
		uc.logger.Errorw("failed to generate verification token", "error", err)
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("an account with this email already exists")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.authHelper.GrantAdminIfFirst(ctx, newUser)

	event := user.NewUserRegisteredEvent(
		newUser.ID(),
		newUser.Email().String(),
		newUser.Name().String(),
		newUser.Role().String(),
	)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish user registered event", "error", err, "user_id", newUser.ID())
	}

	if err := uc.emailService.SendVerificationEmail(ctx, newUser.Email().String(), token.String()); err != nil {
		uc.logger.Warnw("failed to send verification email", "error", err, "user_id", newUser.ID())
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "role", newUser.Role())

	return &RegisterWithPasswordResult{User: dto.ToUserDTO(newUser)}, nil
}

func (uc *RegisterWithPasswordUseCase) securityPolicy(ctx context.Context) *user.SecurityPolicy {
	if uc.policyProvider != nil {
		if policy := uc.policyProvider.GetSecurityPolicy(ctx); policy != nil {
			return policy
		}
	}
	return user.DefaultSecurityPolicy()
}
