package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

const (
	// resetRequestWindow is the minimum spacing between reset mails per email.
	resetRequestWindow = 1 * time.Minute
	// resetLimiterCleanupInterval is how often stale limiter entries are dropped.
	resetLimiterCleanupInterval = 10 * time.Minute
)

type RequestPasswordResetCommand struct {
	Email string
}

// RequestPasswordResetUseCase mails a single-use reset token. The response
// is identical whether or not the email exists, so the endpoint cannot be
// used to enumerate accounts.
type RequestPasswordResetUseCase struct {
	userRepo       user.Repository
	emailService   EmailService
	policyProvider SecurityPolicyProvider
	logger         logger.Interface

	limiterMu   sync.Mutex
	limiter     map[string]time.Time
	lastCleanup time.Time
}

func NewRequestPasswordResetUseCase(
	userRepo user.Repository,
	emailService EmailService,
	policyProvider SecurityPolicyProvider,
	logger logger.Interface,
) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{
		userRepo:       userRepo,
		emailService:   emailService,
		policyProvider: policyProvider,
		logger:         logger,
		limiter:        make(map[string]time.Time),
		lastCleanup:    biztime.NowUTC(),
	}
}

func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, cmd RequestPasswordResetCommand) error {
	if err := uc.checkRateLimit(cmd.Email); err != nil {
		return err
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to get user by email", "error", err)
		} else {
			uc.logger.Infow("password reset requested for unknown email")
		}
		return nil
	}

	if !existingUser.HasPassword() {
		uc.logger.Infow("password reset requested for OAuth-only account", "user_id", existingUser.ID())
		return nil
	}

	policy := uc.securityPolicy(ctx)
	token, err := existingUser.GeneratePasswordResetToken(policy.ResetTokenTTL)
	if err != nil {
		uc.logger.Errorw("failed to generate reset token", "error", err, "user_id", existingUser.ID())
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := uc.userRepo.Update(ctx, existingUser); err != nil {
		uc.logger.Errorw("failed to update user", "error", err, "user_id", existingUser.ID())
		return fmt.Errorf("failed to update user: %w", err)
	}

	if err := uc.emailService.SendPasswordResetEmail(ctx, existingUser.Email().String(), token.String()); err != nil {
		uc.logger.Warnw("failed to send password reset email", "error", err, "user_id", existingUser.ID())
	}

	uc.recordRequest(cmd.Email)
	uc.logger.Infow("password reset requested", "user_id", existingUser.ID())
	return nil
}

func (uc *RequestPasswordResetUseCase) checkRateLimit(email string) error {
	uc.limiterMu.Lock()
	defer uc.limiterMu.Unlock()

	now := biztime.NowUTC()
	if now.Sub(uc.lastCleanup) > resetLimiterCleanupInterval {
		uc.cleanupLocked(now)
		uc.lastCleanup = now
	}

	if last, ok := uc.limiter[email]; ok && now.Sub(last) < resetRequestWindow {
		return errors.NewValidationError("please wait before requesting another password reset")
	}
	return nil
}

func (uc *RequestPasswordResetUseCase) recordRequest(email string) {
	uc.limiterMu.Lock()
	defer uc.limiterMu.Unlock()
	uc.limiter[email] = biztime.NowUTC()
}

// cleanupLocked drops limiter entries old enough to be irrelevant. Caller
// holds limiterMu.
func (uc *RequestPasswordResetUseCase) cleanupLocked(now time.Time) {
	for email, last := range uc.limiter {
		if now.Sub(last) > resetLimiterCleanupInterval {
			delete(uc.limiter, email)
		}
	}
}

func (uc *RequestPasswordResetUseCase) securityPolicy(ctx context.Context) *user.SecurityPolicy {
	if uc.policyProvider != nil {
		if policy := uc.policyProvider.GetSecurityPolicy(ctx); policy != nil {
			return policy
		}
	}
	return user.DefaultSecurityPolicy()
}
