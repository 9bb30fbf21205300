package helpers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/logger"
)

// DeviceInfo describes the client a session is bound to.
type DeviceInfo struct {
	DeviceName string
	DeviceType string
	IPAddress  string
	UserAgent  string
}

// IssuedSession pairs a freshly persisted session with the tokens minted for
// it. The raw refresh token exists only here; the session row keeps a hash.
type IssuedSession struct {
	Session      *user.Session
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenGenerator mints the JWT pair for a session. Passed as a closure so
// this package stays free of the JWT service dependency.
type TokenGenerator func(userUUID, sessionID string) (accessToken, refreshToken string, expiresIn int64, err error)

// AuthHelper bundles the session and credential plumbing every login-style
// usecase repeats.
type AuthHelper struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewAuthHelper(userRepo user.Repository, sessionRepo user.SessionRepository, logger logger.Interface) *AuthHelper {
	return &AuthHelper{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// HashToken returns the SHA-256 hex digest under which refresh tokens are
// stored and looked up.
func (h *AuthHelper) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// IsFirstUser reports whether the store holds exactly one account. Called
// right after a create, it identifies the bootstrap user.
func (h *AuthHelper) IsFirstUser(ctx context.Context) (bool, error) {
	filter := user.ListFilter{}
	filter.Page = 1
	filter.PageSize = 1
	_, total, err := h.userRepo.List(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return total == 1, nil
}

// GrantAdminIfFirst promotes the bootstrap account to admin so a fresh
// deployment is never without one. Failures only warn; registration must not
// break over the promotion.
func (h *AuthHelper) GrantAdminIfFirst(ctx context.Context, u *user.User) bool {
	isFirst, err := h.IsFirstUser(ctx)
	if err != nil {
		h.logger.Warnw("failed to check for first user", "error", err, "user_id", u.ID())
		return false
	}
	if !isFirst {
		return false
	}

	if err := u.ChangeRole(authorization.RoleAdmin); err != nil {
		h.logger.Warnw("failed to grant admin role", "error", err, "user_id", u.ID())
		return false
	}
	if err := h.userRepo.Update(ctx, u); err != nil {
		h.logger.Warnw("failed to save admin promotion", "error", err, "user_id", u.ID())
		return false
	}

	h.logger.Infow("admin role granted to first user", "user_id", u.ID())
	return true
}

// IssueSession creates a session for the user, mints its token pair, and
// persists the session with the refresh token hash filled in.
func (h *AuthHelper) IssueSession(
	ctx context.Context,
	u *user.User,
	device DeviceInfo,
	duration time.Duration,
	generate TokenGenerator,
) (*IssuedSession, error) {
	expiresAt := biztime.NowUTC().Add(duration)
	session, err := user.NewSession(
		u.ID(),
		device.DeviceName,
		device.DeviceType,
		device.IPAddress,
		device.UserAgent,
		expiresAt,
	)
	if err != nil {
		h.logger.Errorw("failed to create session", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, refreshToken, expiresIn, err := generate(u.UUID(), session.ID)
	if err != nil {
		h.logger.Errorw("failed to generate tokens", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	session.RefreshTokenHash = h.HashToken(refreshToken)

	if err := h.sessionRepo.Create(ctx, session); err != nil {
		h.logger.Errorw("failed to save session", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &IssuedSession{
		Session:      session,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// SaveLoginOutcome persists lockout counters and login stamps. These are
// advisory, so a persistence failure only warns.
func (h *AuthHelper) SaveLoginOutcome(ctx context.Context, u *user.User) {
	if err := h.userRepo.Update(ctx, u); err != nil {
		h.logger.Warnw("failed to save login state", "error", err, "user_id", u.ID())
	}
}

// RevokeOtherSessions deletes every session of the user except keepSessionID.
// Used after a password change so stolen refresh tokens stop working.
func (h *AuthHelper) RevokeOtherSessions(ctx context.Context, userID uint, keepSessionID string) {
	sessions, err := h.sessionRepo.GetByUserID(ctx, userID)
	if err != nil {
		h.logger.Warnw("failed to list sessions for revocation", "error", err, "user_id", userID)
		return
	}
	for _, s := range sessions {
		if s.ID == keepSessionID {
			continue
		}
		if err := h.sessionRepo.Delete(ctx, s.ID); err != nil {
			h.logger.Warnw("failed to revoke session", "error", err, "session_id", s.ID)
		}
	}
}
