package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type DeleteAttachmentCommand struct {
	AttachmentID uint
	ActorID      uint
}

// DeleteAttachmentUseCase removes an attachment for its uploader or an
// admin. The metadata row and audit record go in one transaction; the blob
// is deleted afterwards, best effort.
type DeleteAttachmentUseCase struct {
	requestRepo    request.Repository
	attachmentRepo request.AttachmentRepository
	activityRepo   request.ActivityRepository
	userRepo       user.Repository
	blobStore      request.BlobStore
	txMgr          TransactionManager
	logger         logger.Interface
}

func NewDeleteAttachmentUseCase(
	requestRepo request.Repository,
	attachmentRepo request.AttachmentRepository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	blobStore request.BlobStore,
	txMgr TransactionManager,
	logger logger.Interface,
) *DeleteAttachmentUseCase {
	return &DeleteAttachmentUseCase{
		requestRepo:    requestRepo,
		attachmentRepo: attachmentRepo,
		activityRepo:   activityRepo,
		userRepo:       userRepo,
		blobStore:      blobStore,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *DeleteAttachmentUseCase) Execute(ctx context.Context, cmd DeleteAttachmentCommand) error {
	uc.logger.Infow("executing delete attachment use case", "attachment_id", cmd.AttachmentID, "actor_id", cmd.ActorID)

	if cmd.AttachmentID == 0 {
		return errors.NewValidationError("attachment ID is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, cmd.ActorID)
	if err != nil {
		return err
	}

	attachment, err := uc.attachmentRepo.GetByID(ctx, cmd.AttachmentID)
	if err != nil {
		return err
	}

	if attachment.UploaderID() != actor.ID() && actor.Role() != authorization.RoleAdmin {
		uc.logger.Warnw("attachment delete denied",
			"attachment_id", cmd.AttachmentID, "user_id", cmd.ActorID)
		return errors.NewForbiddenError("only the uploader or an admin can remove an attachment")
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.attachmentRepo.Delete(txCtx, cmd.AttachmentID); err != nil {
			return err
		}

		activity, err := request.NewActivity(
			attachment.RequestID(),
			cmd.ActorID,
			vo.ActivityAttachmentRemoved,
			"",
			activityValue("file_name", attachment.FileName()),
			nil,
		)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to delete attachment", "attachment_id", cmd.AttachmentID, "error", txErr)
		return txErr
	}

	// Orphaned blobs are preferable to dangling metadata, so the blob goes
	// last and a failure here only warns.
	if err := uc.blobStore.Delete(ctx, attachment.StorageKey()); err != nil {
		uc.logger.Warnw("failed to delete attachment blob",
			"storage_key", attachment.StorageKey(), "error", err)
	}

	uc.logger.Infow("attachment deleted", "attachment_id", cmd.AttachmentID, "request_id", attachment.RequestID())
	return nil
}
