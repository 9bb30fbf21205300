package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
)

func TestChangeUserStatusUseCase_Execute_SuspensionRevokesSessions(t *testing.T) {
	admin := newActiveUser(t, 1, authorization.RoleAdmin)
	target := newActiveUser(t, 5, authorization.RoleUser)
	userRepo := userRepoWith(admin, target)

	var revokedUserID uint
	sessionRepo := &mockSessionRepository{
		DeleteByUserIDFunc: func(ctx context.Context, userID uint) error {
			revokedUserID = userID
			return nil
		},
	}

	var publishedEvent events.DomainEvent
	dispatcher := &mockEventDispatcher{
		PublishFunc: func(event events.DomainEvent) error {
			publishedEvent = event
			return nil
		},
	}

	useCase := NewChangeUserStatusUseCase(userRepo, sessionRepo, dispatcher, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ChangeUserStatusCommand{
		ActorID: 1,
		UserID:  5,
		Status:  "suspended",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "suspended", result.Status)
	assert.Equal(t, vo.StatusSuspended, target.Status())
	assert.Equal(t, uint(5), revokedUserID)

	require.NotNil(t, publishedEvent)
	assert.Equal(t, user.EventTypeUserSuspended, publishedEvent.GetEventType())
}

func TestChangeUserStatusUseCase_Execute_ReactivationKeepsSessionsAlone(t *testing.T) {
	admin := newActiveUser(t, 1, authorization.RoleAdmin)
	target := newAuthUser(t, 5, authorization.RoleUser, vo.StatusSuspended, nil)
	userRepo := userRepoWith(admin, target)

	revoked := false
	sessionRepo := &mockSessionRepository{
		DeleteByUserIDFunc: func(ctx context.Context, userID uint) error {
			revoked = true
			return nil
		},
	}

	useCase := NewChangeUserStatusUseCase(userRepo, sessionRepo, &mockEventDispatcher{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ChangeUserStatusCommand{
		ActorID: 1,
		UserID:  5,
		Status:  "active",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "active", result.Status)
	assert.False(t, revoked)
}

func TestChangeUserStatusUseCase_Execute_SelfSuspensionBlocked(t *testing.T) {
	admin := newActiveUser(t, 1, authorization.RoleAdmin)
	userRepo := userRepoWith(admin)

	useCase := NewChangeUserStatusUseCase(userRepo, &mockSessionRepository{}, &mockEventDispatcher{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ChangeUserStatusCommand{
		ActorID: 1,
		UserID:  1,
		Status:  "suspended",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "admins cannot suspend their own account")
	assert.Equal(t, vo.StatusActive, admin.Status())
}

func TestChangeUserStatusUseCase_Execute_NonAdminForbidden(t *testing.T) {
	member := newActiveUser(t, 2, authorization.RoleTeamMember)
	target := newActiveUser(t, 5, authorization.RoleUser)
	userRepo := userRepoWith(member, target)

	useCase := NewChangeUserStatusUseCase(userRepo, &mockSessionRepository{}, &mockEventDispatcher{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ChangeUserStatusCommand{
		ActorID: 2,
		UserID:  5,
		Status:  "suspended",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "administrator access required")
}

func TestChangeUserStatusUseCase_Execute_InvalidStatus(t *testing.T) {
	admin := newActiveUser(t, 1, authorization.RoleAdmin)
	target := newActiveUser(t, 5, authorization.RoleUser)
	userRepo := userRepoWith(admin, target)

	useCase := NewChangeUserStatusUseCase(userRepo, &mockSessionRepository{}, &mockEventDispatcher{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ChangeUserStatusCommand{
		ActorID: 1,
		UserID:  5,
		Status:  "banned",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "invalid user status")
}

func TestChangeUserStatusUseCase_Execute_InvalidTransition(t *testing.T) {
	admin := newActiveUser(t, 1, authorization.RoleAdmin)
	target := newActiveUser(t, 5, authorization.RoleUser)
	userRepo := userRepoWith(admin, target)

	useCase := NewChangeUserStatusUseCase(userRepo, &mockSessionRepository{}, &mockEventDispatcher{}, &mockLogger{})

	// An active account cannot be demoted back to pending.
	result, err := useCase.Execute(context.Background(), ChangeUserStatusCommand{
		ActorID: 1,
		UserID:  5,
		Status:  "pending",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "cannot transition")
}
