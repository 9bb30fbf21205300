package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	apperrors "github.com/reque-io/reque/internal/shared/errors"
)

func TestUpdateCommentUseCase_Execute_AuthorEditsOwnComment(t *testing.T) {
	author := newActiveUser(t, 5, authorization.RoleUser)

	comment, err := request.ReconstructComment(
		11, 1, 5, "Original wording", time.Now().Add(-time.Hour), time.Now().Add(-time.Hour), nil,
	)
	require.NoError(t, err)

	var updatedComment *request.Comment
	mockCommentRepo := &mockCommentRepository{
		GetByIDFunc: func(ctx context.Context, commentID uint) (*request.Comment, error) {
			return comment, nil
		},
		UpdateFunc: func(ctx context.Context, c *request.Comment) error {
			updatedComment = c
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

	useCase := NewUpdateCommentUseCase(
		mockCommentRepo,
		mockActivityRepo,
		userRepoWith(author),
		&mockTransactionManager{},
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), UpdateCommentCommand{
		CommentID: 11,
		ActorID:   5,
		Content:   "Corrected wording",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(11), result.CommentID)
	require.NotNil(t, result.EditedAt)

	require.NotNil(t, updatedComment)
	assert.Equal(t, "Corrected wording", updatedComment.Content())

	require.NotNil(t, savedActivity)
	assert.Equal(t, vo.ActivityCommentUpdated, savedActivity.ActivityType())
	require.NotNil(t, savedActivity.OldValue())
	assert.JSONEq(t, `{"content":"Original wording"}`, *savedActivity.OldValue())
	require.NotNil(t, savedActivity.NewValue())
	assert.JSONEq(t, `{"content":"Corrected wording"}`, *savedActivity.NewValue())
}

func TestUpdateCommentUseCase_Execute_OnlyAuthorMayEdit(t *testing.T) {
	tests := []struct {
		name string
		role authorization.UserRole
	}{
		// Admins may delete any comment but never rewrite someone
		// else's words.
		{name: "admin", role: authorization.RoleAdmin},
		{name: "team member", role: authorization.RoleTeamMember},
		{name: "another user", role: authorization.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := newActiveUser(t, 99, tt.role)

			comment, err := request.ReconstructComment(
				11, 1, 5, "Someone else's words", time.Now(), time.Now(), nil,
			)
			require.NoError(t, err)

			mockCommentRepo := &mockCommentRepository{
				GetByIDFunc: func(ctx context.Context, commentID uint) (*request.Comment, error) {
					return comment, nil
				},
			}

			useCase := NewUpdateCommentUseCase(
				mockCommentRepo,
				&mockActivityRepository{},
				userRepoWith(actor),
				&mockTransactionManager{},
				&mockLogger{},
			)

			result, err := useCase.Execute(context.Background(), UpdateCommentCommand{
				CommentID: 11,
				ActorID:   99,
				Content:   "Rewritten",
			})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsForbiddenError(err))
		})
	}
}

func TestUpdateCommentUseCase_Execute_EmptyContentRejected(t *testing.T) {
	author := newActiveUser(t, 5, authorization.RoleUser)

	comment, err := request.ReconstructComment(
		11, 1, 5, "Original", time.Now(), time.Now(), nil,
	)
	require.NoError(t, err)

	mockCommentRepo := &mockCommentRepository{
		GetByIDFunc: func(ctx context.Context, commentID uint) (*request.Comment, error) {
			return comment, nil
		},
	}

	useCase := NewUpdateCommentUseCase(
		mockCommentRepo,
		&mockActivityRepository{},
		userRepoWith(author),
		&mockTransactionManager{},
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), UpdateCommentCommand{
		CommentID: 11,
		ActorID:   5,
		Content:   "   ",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "content cannot be empty")
}
