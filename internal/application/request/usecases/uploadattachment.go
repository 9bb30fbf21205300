package usecases

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/reque-io/reque/internal/application/request/dto"
	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type UploadAttachmentCommand struct {
	RequestID   uint
	UploaderID  uint
	FileName    string
	ContentType string
	Content     io.Reader
}

type UploadAttachmentUseCase struct {
	requestRepo    request.Repository
	attachmentRepo request.AttachmentRepository
	activityRepo   request.ActivityRepository
	userRepo       user.Repository
	blobStore      request.BlobStore
	txMgr          TransactionManager
	dispatcher     events.EventPublisher
	maxSizeBytes   int64
	logger         logger.Interface
}

func NewUploadAttachmentUseCase(
	requestRepo request.Repository,
	attachmentRepo request.AttachmentRepository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	blobStore request.BlobStore,
	txMgr TransactionManager,
	dispatcher events.EventPublisher,
	maxSizeBytes int64,
	logger logger.Interface,
) *UploadAttachmentUseCase {
	return &UploadAttachmentUseCase{
		requestRepo:    requestRepo,
		attachmentRepo: attachmentRepo,
		activityRepo:   activityRepo,
		userRepo:       userRepo,
		blobStore:      blobStore,
		txMgr:          txMgr,
		dispatcher:     dispatcher,
		maxSizeBytes:   maxSizeBytes,
		logger:         logger,
	}
}

func (uc *UploadAttachmentUseCase) Execute(ctx context.Context, cmd UploadAttachmentCommand) (*dto.AttachmentDTO, error) {
	uc.logger.Infow("executing upload attachment use case", "request_id", cmd.RequestID, "file_name", cmd.FileName)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}
	if cmd.Content == nil {
		return nil, errors.NewValidationError("attachment content is required")
	}
	if request.SanitizeFileName(cmd.FileName) == "" {
		return nil, errors.NewValidationError("file name is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, cmd.UploaderID)
	if err != nil {
		return nil, err
	}

	req, err := uc.requestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}

	caps := evaluateCapabilities(actor, req)
	if !caps.CanAttach {
		uc.logger.Warnw("attachment upload denied", "request_id", cmd.RequestID, "user_id", cmd.UploaderID)
		return nil, errors.NewForbiddenError("you cannot attach files to this request")
	}

	// The blob is written before the metadata row so the row never points
	// at bytes that do not exist. A failed transaction leaves at worst an
	// orphaned blob, which the delete below cleans up.
	storageKey := uuid.New().String()
	size, checksum, err := uc.blobStore.Put(ctx, storageKey, cmd.Content, uc.maxSizeBytes)
	if err != nil {
		uc.logger.Errorw("failed to store attachment content", "request_id", cmd.RequestID, "error", err)
		return nil, err
	}

	attachment, err := request.NewAttachment(
		cmd.RequestID,
		cmd.UploaderID,
		storageKey,
		cmd.FileName,
		cmd.ContentType,
		size,
		checksum,
	)
	if err != nil {
		uc.deleteBlob(ctx, storageKey)
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.attachmentRepo.Save(txCtx, attachment); err != nil {
			return err
		}

		activity, err := request.NewActivity(
			cmd.RequestID,
			cmd.UploaderID,
			vo.ActivityAttachmentAdded,
			"",
			nil,
			activityValue("file_name", attachment.FileName()),
		)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to save attachment", "request_id", cmd.RequestID, "error", txErr)
		uc.deleteBlob(ctx, storageKey)
		return nil, txErr
	}

	event := request.NewAttachmentAddedEvent(
		req.ID(),
		req.Number(),
		attachment.ID(),
		attachment.FileName(),
		cmd.UploaderID,
	)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish attachment added event", "request_id", req.ID(), "error", err)
	}

	uc.logger.Infow("attachment uploaded",
		"request_id", cmd.RequestID, "attachment_id", attachment.ID(), "size_bytes", size)

	result := dto.ToAttachmentDTO(attachment)
	return &result, nil
}

func (uc *UploadAttachmentUseCase) deleteBlob(ctx context.Context, key string) {
	if err := uc.blobStore.Delete(ctx, key); err != nil {
		uc.logger.Warnw("failed to delete orphaned blob", "storage_key", key, "error", err)
	}
}
