package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/application/user/helpers"
	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/config"
	"github.com/reque-io/reque/internal/shared/errors"
)

// testPassword hashes to "hashed:"+testPassword under the mock hasher.
const testPassword = "CorrectHorse1"

// rawTestToken is a well-formed raw token for verification and reset flows.
var rawTestToken = strings.Repeat("ab", 32)

func tokenHash(t *testing.T, raw string) string {
	t.Helper()
	token, err := vo.NewTokenFromValue(raw)
	require.NoError(t, err)
	return token.Hash()
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func testEmail(id uint) string {
	return fmt.Sprintf("user%d@example.com", id)
}

func newAuthUser(t *testing.T, id uint, role authorization.UserRole, status vo.Status, auth *user.AuthData) *user.User {
	t.Helper()

	email, err := vo.NewEmail(testEmail(id))
	require.NoError(t, err)
	name, err := vo.NewName(fmt.Sprintf("User %c", 'A'+rune(id%26)))
	require.NoError(t, err)

	u, err := user.ReconstructUserWithAuth(
		id,
		fmt.Sprintf("00000000-0000-0000-0000-%012d", id),
		email,
		name,
		"",
		role,
		status,
		1,
		time.Now().Add(-24*time.Hour),
		time.Now().Add(-24*time.Hour),
		auth,
	)
	require.NoError(t, err)
	return u
}

func newActiveUser(t *testing.T, id uint, role authorization.UserRole) *user.User {
	t.Helper()
	return newAuthUser(t, id, role, vo.StatusActive, nil)
}

// newPasswordUser builds a verified, active account whose password is
// testPassword under the mock hasher.
func newPasswordUser(t *testing.T, id uint, role authorization.UserRole) *user.User {
	t.Helper()
	hash := "hashed:" + testPassword
	verifiedAt := time.Now().Add(-48 * time.Hour)
	return newAuthUser(t, id, role, vo.StatusActive, &user.AuthData{
		PasswordHash:    &hash,
		EmailVerifiedAt: &verifiedAt,
	})
}

// newPendingUser builds an unverified account holding rawTestToken as its
// pending verification token.
func newPendingUser(t *testing.T, id uint, tokenExpiresAt time.Time) *user.User {
	t.Helper()
	hash := "hashed:" + testPassword
	verificationHash := tokenHash(t, rawTestToken)
	return newAuthUser(t, id, authorization.RoleUser, vo.StatusPending, &user.AuthData{
		PasswordHash:               &hash,
		EmailVerificationTokenHash: &verificationHash,
		EmailVerificationExpiresAt: &tokenExpiresAt,
	})
}

// newResetUser builds an active account holding rawTestToken as its pending
// password reset token.
func newResetUser(t *testing.T, id uint, tokenExpiresAt time.Time) *user.User {
	t.Helper()
	hash := "hashed:" + testPassword
	verifiedAt := time.Now().Add(-48 * time.Hour)
	resetHash := tokenHash(t, rawTestToken)
	return newAuthUser(t, id, authorization.RoleUser, vo.StatusActive, &user.AuthData{
		PasswordHash:           &hash,
		EmailVerifiedAt:        &verifiedAt,
		PasswordResetTokenHash: &resetHash,
		PasswordResetExpiresAt: &tokenExpiresAt,
	})
}

// userRepoWith serves the given users by ID and email and reports unknown
// lookups the way the real repository does.
func userRepoWith(users ...*user.User) *mockUserRepository {
	byID := make(map[uint]*user.User, len(users))
	byEmail := make(map[string]*user.User, len(users))
	for _, u := range users {
		byID[u.ID()] = u
		byEmail[u.Email().String()] = u
	}
	return &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			if u, ok := byID[id]; ok {
				return u, nil
			}
			return nil, errors.NewNotFoundError("user not found")
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			if u, ok := byEmail[email]; ok {
				return u, nil
			}
			return nil, errors.NewNotFoundError("user not found")
		},
	}
}

func newTestSession(userID uint, sessionID, refreshTokenHash string, expiresAt time.Time) *user.Session {
	created := time.Now().Add(-time.Hour)
	return &user.Session{
		ID:               sessionID,
		UserID:           userID,
		DeviceName:       "Laptop",
		DeviceType:       "desktop",
		IPAddress:        "203.0.113.10",
		UserAgent:        "test-agent",
		RefreshTokenHash: refreshTokenHash,
		ExpiresAt:        expiresAt,
		LastActivityAt:   created,
		CreatedAt:        created,
	}
}

func newTestAuthHelper(userRepo user.Repository, sessionRepo user.SessionRepository) *helpers.AuthHelper {
	return helpers.NewAuthHelper(userRepo, sessionRepo, &mockLogger{})
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{DefaultExpDays: 7, RememberExpDays: 30}
}

func strPtr(s string) *string { return &s }
