package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	apperrors "github.com/reque-io/reque/internal/shared/errors"
)

func TestChangePriorityUseCase_Execute_Success(t *testing.T) {
	staff := newActiveUser(t, 2, authorization.RoleTeamMember)
	existing := newTestRequest(t, 1, vo.StatusInProgress, 5, uintPtr(2))

	var updated *request.Request
	mockRequestRepo := &mockRequestRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, req *request.Request) error {
			updated = req
			return nil
		},
	}

	var savedActivity *request.Activity
	mockActivityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, activity *request.Activity) error {
			savedActivity = activity
			return nil
		},
	}

	useCase := NewChangePriorityUseCase(
		mockRequestRepo,
		mockActivityRepo,
		userRepoWith(staff),
		&mockTransactionManager{},
		&mockEventDispatcher{},
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), ChangePriorityCommand{
		RequestID: 1,
		ActorID:   2,
		Priority:  "urgent",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "normal", result.OldPriority)
	assert.Equal(t, "urgent", result.NewPriority)

	require.NotNil(t, updated)
	assert.Equal(t, vo.PriorityUrgent, updated.Priority())

	require.NotNil(t, savedActivity)
	assert.Equal(t, vo.ActivityPriorityChanged, savedActivity.ActivityType())
	require.NotNil(t, savedActivity.OldValue())
	assert.JSONEq(t, `{"priority":"normal"}`, *savedActivity.OldValue())
	require.NotNil(t, savedActivity.NewValue())
	assert.JSONEq(t, `{"priority":"urgent"}`, *savedActivity.NewValue())
}

func TestChangePriorityUseCase_Execute_UnknownPriority(t *testing.T) {
	useCase := NewChangePriorityUseCase(
		&mockRequestRepository{},
		&mockActivityRepository{},
		&mockUserRepository{},
		&mockTransactionManager{},
		&mockEventDispatcher{},
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), ChangePriorityCommand{
		RequestID: 1,
		ActorID:   2,
		Priority:  "blocker",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestChangePriorityUseCase_Execute_NonStaffForbidden(t *testing.T) {
	creator := newActiveUser(t, 5, authorization.RoleUser)
	existing := newTestRequest(t, 1, vo.StatusNew, 5, nil)

	mockRequestRepo := &mockRequestRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
			return existing, nil
		},
	}

	useCase := NewChangePriorityUseCase(
		mockRequestRepo,
		&mockActivityRepository{},
		userRepoWith(creator),
		&mockTransactionManager{},
		&mockEventDispatcher{},
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), ChangePriorityCommand{
		RequestID: 1,
		ActorID:   5,
		Priority:  "low",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsForbiddenError(err))
}
