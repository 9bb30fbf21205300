package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/user"
	uservo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
)

func newTestUser(t *testing.T, id uint, role authorization.UserRole, status uservo.Status) *user.User {
	t.Helper()

	email, err := uservo.NewEmail(fmt.Sprintf("user%d@example.com", id))
	require.NoError(t, err)
	name, err := uservo.NewName(fmt.Sprintf("User %c", 'A'+rune(id%26)))
	require.NoError(t, err)

	u, err := user.ReconstructUser(
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
	)
	require.NoError(t, err)
	return u
}

func newActiveUser(t *testing.T, id uint, role authorization.UserRole) *user.User {
	t.Helper()
	return newTestUser(t, id, role, uservo.StatusActive)
}

func newTestRequest(t *testing.T, id uint, status vo.Status, creatorID uint, assigneeID *uint) *request.Request {
	t.Helper()

	var completedAt *time.Time
	if status == vo.StatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	req, err := request.ReconstructRequest(
		id,
		fmt.Sprintf("REQ-20240101-%04d", id),
		"Replace the lobby badge reader",
		"The reader on the east entrance drops every other scan.",
		status,
		vo.PriorityNormal,
		nil,
		creatorID,
		assigneeID,
		1,
		time.Now().Add(-2*time.Hour),
		time.Now().Add(-1*time.Hour),
		completedAt,
	)
	require.NoError(t, err)
	return req
}

// userRepoWith serves the given users by ID and reports unknown IDs the way
// the real repository does.
func userRepoWith(users ...*user.User) *mockUserRepository {
	byID := make(map[uint]*user.User, len(users))
	for _, u := range users {
		byID[u.ID()] = u
	}
	return &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			if u, ok := byID[id]; ok {
				return u, nil
			}
			return nil, errors.NewNotFoundError("user not found")
		},
	}
}

func uintPtr(v uint) *uint { return &v }
