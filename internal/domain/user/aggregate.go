package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/biztime"
)

// User is the account aggregate root. The numeric id is internal to
// persistence; the uuid is the stable identifier exposed on the API and in
// token claims.
type User struct {
	id          uint
	uuid        string
	email       *vo.Email
	name        *vo.Name
	avatarURL   string
	role        authorization.UserRole
	status      vo.Status
	version     int
	baseVersion int // version of the persisted row this aggregate was built from
	createdAt   time.Time
	updatedAt   time.Time

	passwordHash               *string
	emailVerifiedAt            *time.Time
	emailVerificationTokenHash *string
	emailVerificationExpiresAt *time.Time
	passwordResetTokenHash     *string
	passwordResetExpiresAt     *time.Time
	lastPasswordChangeAt       *time.Time
	failedLoginAttempts        int
	lockedUntil                *time.Time
	lastLoginAt                *time.Time
}

// NewUser creates an account that still has to verify its email address.
func NewUser(email *vo.Email, name *vo.Name, role authorization.UserRole) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		uuid:      uuid.New().String(),
		email:     email,
		name:      name,
		role:      role,
		status:    vo.StatusPending,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewVerifiedUser creates an already-active account. Used for OAuth sign-ups
// where the provider has verified the email address.
func NewVerifiedUser(email *vo.Email, name *vo.Name, role authorization.UserRole) (*User, error) {
	u, err := NewUser(email, name, role)
	if err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	u.status = vo.StatusActive
	u.emailVerifiedAt = &now
	return u, nil
}

func ReconstructUser(
	id uint,
	userUUID string,
	email *vo.Email,
	name *vo.Name,
	avatarURL string,
	role authorization.UserRole,
	status vo.Status,
	version int,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if userUUID == "" {
		return nil, fmt.Errorf("user UUID is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &User{
		id:          id,
		uuid:        userUUID,
		email:       email,
		name:        name,
		avatarURL:   avatarURL,
		role:        role,
		status:      status,
		version:     version,
		baseVersion: version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// AuthData carries the credential columns between the aggregate and the
// persistence mapper so they never leak through getters.
type AuthData struct {
	PasswordHash               *string
	EmailVerifiedAt            *time.Time
	EmailVerificationTokenHash *string
	EmailVerificationExpiresAt *time.Time
	PasswordResetTokenHash     *string
	PasswordResetExpiresAt     *time.Time
	LastPasswordChangeAt       *time.Time
	FailedLoginAttempts        int
	LockedUntil                *time.Time
	LastLoginAt                *time.Time
}

func ReconstructUserWithAuth(
	id uint,
	userUUID string,
	email *vo.Email,
	name *vo.Name,
	avatarURL string,
	role authorization.UserRole,
	status vo.Status,
	version int,
	createdAt, updatedAt time.Time,
	auth *AuthData,
) (*User, error) {
	u, err := ReconstructUser(id, userUUID, email, name, avatarURL, role, status, version, createdAt, updatedAt)
	if err != nil {
		return nil, err
	}

	if auth != nil {
		u.passwordHash = auth.PasswordHash
		u.emailVerifiedAt = auth.EmailVerifiedAt
		u.emailVerificationTokenHash = auth.EmailVerificationTokenHash
		u.emailVerificationExpiresAt = auth.EmailVerificationExpiresAt
		u.passwordResetTokenHash = auth.PasswordResetTokenHash
		u.passwordResetExpiresAt = auth.PasswordResetExpiresAt
		u.lastPasswordChangeAt = auth.LastPasswordChangeAt
		u.failedLoginAttempts = auth.FailedLoginAttempts
		u.lockedUntil = auth.LockedUntil
		u.lastLoginAt = auth.LastLoginAt
	}

	return u, nil
}

func (u *User) GetAuthData() *AuthData {
	return &AuthData{
		PasswordHash:               u.passwordHash,
		EmailVerifiedAt:            u.emailVerifiedAt,
		EmailVerificationTokenHash: u.emailVerificationTokenHash,
		EmailVerificationExpiresAt: u.emailVerificationExpiresAt,
		PasswordResetTokenHash:     u.passwordResetTokenHash,
		PasswordResetExpiresAt:     u.passwordResetExpiresAt,
		LastPasswordChangeAt:       u.lastPasswordChangeAt,
		FailedLoginAttempts:        u.failedLoginAttempts,
		LockedUntil:                u.lockedUntil,
		LastLoginAt:                u.lastLoginAt,
	}
}

func (u *User) ID() uint                     { return u.id }
func (u *User) UUID() string                 { return u.uuid }
func (u *User) Email() *vo.Email             { return u.email }
func (u *User) Name() *vo.Name               { return u.name }
func (u *User) AvatarURL() string            { return u.avatarURL }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) Status() vo.Status            { return u.status }
func (u *User) Version() int                 { return u.version }
func (u *User) BaseVersion() int             { return u.baseVersion }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }
func (u *User) LastLoginAt() *time.Time      { return u.lastLoginAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// SyncVersion records the current version as persisted. Repositories call it
// after a successful write so the next update matches the stored row.
func (u *User) SyncVersion() {
	u.baseVersion = u.version
}

// UpdateProfile changes the display name and avatar. Nil arguments keep the
// current value so callers can update one field at a time.
func (u *User) UpdateProfile(name *vo.Name, avatarURL *string) error {
	if name == nil && avatarURL == nil {
		return fmt.Errorf("nothing to update")
	}
	if name != nil {
		u.name = name
	}
	if avatarURL != nil {
		u.avatarURL = *avatarURL
	}
	u.touch()
	return nil
}

func (u *User) ChangeRole(newRole authorization.UserRole) error {
	if !newRole.IsValid() {
		return fmt.Errorf("invalid role: %s", newRole)
	}
	if u.role == newRole {
		return fmt.Errorf("user already has role %s", newRole)
	}
	u.role = newRole
	u.touch()
	return nil
}

// ChangeStatus moves the account along the lifecycle graph. Session
// revocation on suspension is handled by the caller.
func (u *User) ChangeStatus(next vo.Status) error {
	if !next.IsValid() {
		return fmt.Errorf("invalid status: %s", next)
	}
	if u.status == next {
		return fmt.Errorf("user is already %s", next)
	}
	if !u.status.CanTransitionTo(next) {
		return fmt.Errorf("cannot transition from %s to %s", u.status, next)
	}
	u.status = next
	u.touch()
	return nil
}

// Activate marks the account active, typically after email verification.
func (u *User) Activate() error {
	return u.ChangeStatus(vo.StatusActive)
}

func (u *User) CanPerformActions() bool {
	return u.status.CanPerformActions()
}

func (u *User) RequiresVerification() bool {
	return u.status.RequiresVerification()
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
	u.version++
}
