package user

import (
	"fmt"
	"time"

	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/biztime"
)

// PasswordHasher abstracts the hash algorithm so the aggregate never touches
// bcrypt directly.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

func (u *User) SetPassword(password *vo.Password, hasher PasswordHasher) error {
	if password == nil {
		return fmt.Errorf("password cannot be nil")
	}

	hash, err := hasher.Hash(password.String())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := biztime.NowUTC()
	u.passwordHash = &hash
	u.lastPasswordChangeAt = &now
	u.touch()
	return nil
}

// VerifyPassword checks the plaintext password against the stored hash. A
// mismatch counts toward the lockout threshold; a match clears it.
func (u *User) VerifyPassword(plainPassword string, hasher PasswordHasher, policy *SecurityPolicy) error {
	if !u.HasPassword() {
		return fmt.Errorf("user has no password set")
	}

	if err := hasher.Verify(plainPassword, *u.passwordHash); err != nil {
		u.recordFailedLogin(policy)
		return fmt.Errorf("invalid password")
	}

	u.resetFailedLogins()
	return nil
}

// GenerateEmailVerificationToken issues a fresh verification token. Only the
// hash is kept on the aggregate; the raw token is returned for delivery.
func (u *User) GenerateEmailVerificationToken(ttl time.Duration) (*vo.Token, error) {
	token, err := vo.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	hash := token.Hash()
	expiresAt := biztime.NowUTC().Add(ttl)
	u.emailVerificationTokenHash = &hash
	u.emailVerificationExpiresAt = &expiresAt
	u.touch()
	return token, nil
}

// VerifyEmail consumes a verification token, marks the email verified and
// activates a pending account.
func (u *User) VerifyEmail(plainToken string) error {
	if u.IsEmailVerified() {
		return fmt.Errorf("email is already verified")
	}
	if u.emailVerificationTokenHash == nil {
		return fmt.Errorf("no verification token found")
	}
	if u.emailVerificationExpiresAt == nil || biztime.NowUTC().After(*u.emailVerificationExpiresAt) {
		return fmt.Errorf("verification token has expired")
	}

	token, err := vo.NewTokenFromValue(plainToken)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Verify(*u.emailVerificationTokenHash) {
		return fmt.Errorf("invalid verification token")
	}

	now := biztime.NowUTC()
	u.emailVerifiedAt = &now
	u.emailVerificationTokenHash = nil
	u.emailVerificationExpiresAt = nil

	if u.status.IsPending() {
		return u.Activate()
	}
	u.touch()
	return nil
}

// GeneratePasswordResetToken issues a fresh reset token, replacing any
// outstanding one.
func (u *User) GeneratePasswordResetToken(ttl time.Duration) (*vo.Token, error) {
	token, err := vo.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	hash := token.Hash()
	expiresAt := biztime.NowUTC().Add(ttl)
	u.passwordResetTokenHash = &hash
	u.passwordResetExpiresAt = &expiresAt
	u.touch()
	return token, nil
}

// ResetPassword consumes a reset token and replaces the password. It also
// clears any login lockout so the user can sign in right away.
func (u *User) ResetPassword(plainToken string, newPassword *vo.Password, hasher PasswordHasher) error {
	if u.passwordResetTokenHash == nil {
		return fmt.Errorf("no password reset token found")
	}
	if u.passwordResetExpiresAt == nil || biztime.NowUTC().After(*u.passwordResetExpiresAt) {
		return fmt.Errorf("password reset token has expired")
	}

	token, err := vo.NewTokenFromValue(plainToken)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Verify(*u.passwordResetTokenHash) {
		return fmt.Errorf("invalid reset token")
	}

	if err := u.SetPassword(newPassword, hasher); err != nil {
		return fmt.Errorf("failed to set new password: %w", err)
	}

	u.passwordResetTokenHash = nil
	u.passwordResetExpiresAt = nil
	u.failedLoginAttempts = 0
	u.lockedUntil = nil
	return nil
}

func (u *User) RecordFailedLogin(policy *SecurityPolicy) {
	u.recordFailedLogin(policy)
}

func (u *User) recordFailedLogin(policy *SecurityPolicy) {
	u.failedLoginAttempts++
	if policy != nil && policy.MaxFailedLogins > 0 && u.failedLoginAttempts >= policy.MaxFailedLogins {
		lockedUntil := biztime.NowUTC().Add(policy.LockoutDuration)
		u.lockedUntil = &lockedUntil
	}
	u.touch()
}

func (u *User) resetFailedLogins() {
	if u.failedLoginAttempts > 0 || u.lockedUntil != nil {
		u.failedLoginAttempts = 0
		u.lockedUntil = nil
		u.touch()
	}
}

// RecordLogin stamps a successful sign-in.
func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
	u.touch()
}

func (u *User) IsLocked(now time.Time) bool {
	if u.lockedUntil == nil {
		return false
	}
	return now.Before(*u.lockedUntil)
}

func (u *User) FailedLoginAttempts() int {
	return u.failedLoginAttempts
}

func (u *User) HasPassword() bool {
	return u.passwordHash != nil && *u.passwordHash != ""
}

func (u *User) IsEmailVerified() bool {
	return u.emailVerifiedAt != nil
}
