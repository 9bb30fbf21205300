package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/errors"
)

func TestListSessionsUseCase_Execute_FiltersExpiredSessions(t *testing.T) {
	now := biztime.NowUTC()

	sessionRepo := &mockSessionRepository{
		GetByUserIDFunc: func(ctx context.Context, userID uint) ([]*user.Session, error) {
			return []*user.Session{
				{ID: "live", UserID: 1, DeviceName: "Firefox on Linux", ExpiresAt: now.Add(time.Hour)},
				{ID: "stale", UserID: 1, DeviceName: "Old phone", ExpiresAt: now.Add(-time.Hour)},
			}, nil
		},
	}

	useCase := NewListSessionsUseCase(sessionRepo, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ListSessionsQuery{UserID: 1})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "live", result[0].ID)
	assert.Equal(t, "Firefox on Linux", result[0].DeviceName)
}

func TestListSessionsUseCase_Execute_RequiresUser(t *testing.T) {
	useCase := NewListSessionsUseCase(&mockSessionRepository{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ListSessionsQuery{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestRevokeSessionUseCase_Execute_Success(t *testing.T) {
	var deletedID string
	sessionRepo := &mockSessionRepository{
		GetByIDFunc: func(ctx context.Context, sessionID string) (*user.Session, error) {
			return &user.Session{ID: sessionID, UserID: 1}, nil
		},
		DeleteFunc: func(ctx context.Context, sessionID string) error {
			deletedID = sessionID
			return nil
		},
	}

	useCase := NewRevokeSessionUseCase(sessionRepo, &mockLogger{})

	err := useCase.Execute(context.Background(), RevokeSessionCommand{UserID: 1, SessionID: "sess-2"})

	require.NoError(t, err)
	assert.Equal(t, "sess-2", deletedID)
}

func TestRevokeSessionUseCase_Execute_OtherUsersSessionLooksAbsent(t *testing.T) {
	sessionRepo := &mockSessionRepository{
		GetByIDFunc: func(ctx context.Context, sessionID string) (*user.Session, error) {
			return &user.Session{ID: sessionID, UserID: 42}, nil
		},
		DeleteFunc: func(ctx context.Context, sessionID string) error {
			t.Fatal("delete must not be called for a foreign session")
			return nil
		},
	}

	useCase := NewRevokeSessionUseCase(sessionRepo, &mockLogger{})

	err := useCase.Execute(context.Background(), RevokeSessionCommand{UserID: 1, SessionID: "sess-9"})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRevokeSessionUseCase_Execute_UnknownSession(t *testing.T) {
	sessionRepo := &mockSessionRepository{
		GetByIDFunc: func(ctx context.Context, sessionID string) (*user.Session, error) {
			return nil, errors.NewNotFoundError("session not found")
		},
	}

	useCase := NewRevokeSessionUseCase(sessionRepo, &mockLogger{})

	err := useCase.Execute(context.Background(), RevokeSessionCommand{UserID: 1, SessionID: "gone"})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
