package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type DeleteRequestCommand struct {
	RequestID uint
	ActorID   uint
}

type DeleteRequestResult struct {
	RequestID uint
}

type DeleteRequestUseCase struct {
	requestRepo    request.Repository
	commentRepo    request.CommentRepository
	activityRepo   request.ActivityRepository
	attachmentRepo request.AttachmentRepository
	userRepo       user.Repository
	blobStore      request.BlobStore
	txMgr          TransactionManager
	logger         logger.Interface
}

func NewDeleteRequestUseCase(
	requestRepo request.Repository,
	commentRepo request.CommentRepository,
	activityRepo request.ActivityRepository,
	attachmentRepo request.AttachmentRepository,
	userRepo user.Repository,
	blobStore request.BlobStore,
	txMgr TransactionManager,
	logger logger.Interface,
) *DeleteRequestUseCase {
	return &DeleteRequestUseCase{
		requestRepo:    requestRepo,
		commentRepo:    commentRepo,
		activityRepo:   activityRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		blobStore:      blobStore,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *DeleteRequestUseCase) Execute(ctx context.Context, cmd DeleteRequestCommand) (*DeleteRequestResult, error) {
	uc.logger.Infow("executing delete request use case", "request_id", cmd.RequestID, "user_id", cmd.ActorID)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	req, err := uc.requestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}

	caps := evaluateCapabilities(actor, req)
	if !caps.CanDelete {
		uc.logger.Warnw("request deletion denied", "request_id", cmd.RequestID, "user_id", cmd.ActorID)
		return nil, errors.NewForbiddenError("only admins can delete requests")
	}

	attachments, err := uc.attachmentRepo.ListByRequestID(ctx, cmd.RequestID)
	if err != nil {
		uc.logger.Errorw("failed to list attachments before delete", "request_id", cmd.RequestID, "error", err)
		return nil, err
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.DeleteByRequestID(txCtx, cmd.RequestID); err != nil {
			return err
		}
		if err := uc.attachmentRepo.DeleteByRequestID(txCtx, cmd.RequestID); err != nil {
			return err
		}
		if err := uc.activityRepo.DeleteByRequestID(txCtx, cmd.RequestID); err != nil {
			return err
		}
		return uc.requestRepo.Delete(txCtx, cmd.RequestID)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to delete request", "request_id", cmd.RequestID, "error", txErr)
		return nil, txErr
	}

	// Blob removal is best effort after the transaction commits; orphaned
	// blobs are preferable to dangling metadata.
	for _, attachment := range attachments {
		if err := uc.blobStore.Delete(ctx, attachment.StorageKey()); err != nil {
			uc.logger.Warnw("failed to delete attachment blob",
				"storage_key", attachment.StorageKey(), "error", err)
		}
	}

	uc.logger.Infow("request deleted", "request_id", cmd.RequestID, "number", req.Number())

	return &DeleteRequestResult{RequestID: cmd.RequestID}, nil
}
