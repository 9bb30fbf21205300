package usecases

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	apperrors "github.com/reque-io/reque/internal/shared/errors"
)

const testMaxUploadBytes = 10 << 20

func TestUploadAttachmentUseCase_Execute_Success(t *testing.T) {
	creator := newActiveUser(t, 5, authorization.RoleUser)
	existing := newTestRequest(t, 1, vo.StatusInProgress, 5, uintPtr(2))

	mockRequestRepo := &mockRequestRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
			return existing, nil
		},
	}

	var putKey string
	mockBlobs := &mockBlobStore{
		PutFunc: func(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, string, error) {
			putKey = key
			assert.Equal(t, int64(testMaxUploadBytes), maxBytes)
			n, err := io.Copy(io.Discard, r)
			require.NoError(t, err)
			return n, "deadbeef", nil
		},
	}

	var savedAttachment *request.Attachment
	mockAttachmentRepo := &mockAttachmentRepository{
		SaveFunc: func(ctx context.Context, attachment *request.Attachment) error {
			savedAttachment = attachment
			return attachment.SetID(21)
		},
	}

	var savedActivity *request.Activity
	mockActivityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, activity *request.Activity) error {
			savedActivity = activity
			return nil
		},
	}

	useCase := NewUploadAttachmentUseCase(
		mockRequestRepo,
		mockAttachmentRepo,
		mockActivityRepo,
		userRepoWith(creator),
		mockBlobs,
		&mockTransactionManager{},
		&mockEventDispatcher{},
		testMaxUploadBytes,
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), UploadAttachmentCommand{
		RequestID:   1,
		UploaderID:  5,
		FileName:    "receipt.pdf",
		ContentType: "application/pdf",
		Content:     strings.NewReader("%PDF-1.4 fake body"),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(21), result.ID)
	assert.Equal(t, "receipt.pdf", result.FileName)
	assert.Equal(t, int64(len("%PDF-1.4 fake body")), result.SizeBytes)

	require.NotNil(t, savedAttachment)
	assert.NotEmpty(t, putKey)
	assert.Equal(t, putKey, savedAttachment.StorageKey())
	assert.Equal(t, "deadbeef", savedAttachment.Checksum())

	require.NotNil(t, savedActivity)
	assert.Equal(t, vo.ActivityAttachmentAdded, savedActivity.ActivityType())
	require.NotNil(t, savedActivity.NewValue())
	assert.JSONEq(t, `{"file_name":"receipt.pdf"}`, *savedActivity.NewValue())
}

func TestUploadAttachmentUseCase_Execute_BlobStoreRejectsOversize(t *testing.T) {
	creator := newActiveUser(t, 5, authorization.RoleUser)
	existing := newTestRequest(t, 1, vo.StatusNew, 5, nil)

	mockRequestRepo := &mockRequestRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
			return existing, nil
		},
	}
	mockBlobs := &mockBlobStore{
		PutFunc: func(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, string, error) {
			return 0, "", apperrors.NewValidationError("attachment exceeds the size limit")
		},
	}

	useCase := NewUploadAttachmentUseCase(
		mockRequestRepo,
		&mockAttachmentRepository{},
		&mockActivityRepository{},
		userRepoWith(creator),
		mockBlobs,
		&mockTransactionManager{},
		&mockEventDispatcher{},
		testMaxUploadBytes,
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), UploadAttachmentCommand{
		RequestID:  1,
		UploaderID: 5,
		FileName:   "huge.iso",
		Content:    strings.NewReader("way too big"),
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "size limit")
}

func TestUploadAttachmentUseCase_Execute_TxFailureDeletesBlob(t *testing.T) {
	creator := newActiveUser(t, 5, authorization.RoleUser)
	existing := newTestRequest(t, 1, vo.StatusNew, 5, nil)

	mockRequestRepo := &mockRequestRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
			return existing, nil
		},
	}

	var deletedKey string
	mockBlobs := &mockBlobStore{
		DeleteFunc: func(ctx context.Context, key string) error {
			deletedKey = key
			return nil
		},
	}
	mockAttachmentRepo := &mockAttachmentRepository{
		SaveFunc: func(ctx context.Context, attachment *request.Attachment) error {
			return errors.New("insert failed")
		},
	}

	useCase := NewUploadAttachmentUseCase(
		mockRequestRepo,
		mockAttachmentRepo,
		&mockActivityRepository{},
		userRepoWith(creator),
		mockBlobs,
		&mockTransactionManager{},
		&mockEventDispatcher{},
		testMaxUploadBytes,
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), UploadAttachmentCommand{
		RequestID:  1,
		UploaderID: 5,
		FileName:   "notes.txt",
		Content:    strings.NewReader("text"),
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.NotEmpty(t, deletedKey, "orphaned blob must be cleaned up when the transaction fails")
}

func TestUploadAttachmentUseCase_Execute_GuestCannotAttach(t *testing.T) {
	guest := newActiveUser(t, 9, authorization.RoleGuest)
	existing := newTestRequest(t, 1, vo.StatusNew, 9, nil)

	mockRequestRepo := &mockRequestRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
			return existing, nil
		},
	}

	var blobWritten bool
	mockBlobs := &mockBlobStore{
		PutFunc: func(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, string, error) {
			blobWritten = true
			return 0, "", nil
		},
	}

	useCase := NewUploadAttachmentUseCase(
		mockRequestRepo,
		&mockAttachmentRepository{},
		&mockActivityRepository{},
		userRepoWith(guest),
		mockBlobs,
		&mockTransactionManager{},
		&mockEventDispatcher{},
		testMaxUploadBytes,
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), UploadAttachmentCommand{
		RequestID:  1,
		UploaderID: 9,
		FileName:   "file.txt",
		Content:    strings.NewReader("x"),
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsForbiddenError(err))
	assert.False(t, blobWritten, "no bytes may be written before authorization")
}

func TestUploadAttachmentUseCase_Execute_MissingContent(t *testing.T) {
	useCase := NewUploadAttachmentUseCase(
		&mockRequestRepository{},
		&mockAttachmentRepository{},
		&mockActivityRepository{},
		&mockUserRepository{},
		&mockBlobStore{},
		&mockTransactionManager{},
		&mockEventDispatcher{},
		testMaxUploadBytes,
		&mockLogger{},
	)

	result, err := useCase.Execute(context.Background(), UploadAttachmentCommand{
		RequestID:  1,
		UploaderID: 5,
		FileName:   "file.txt",
		Content:    nil,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "content is required")
}
