package usecases

import (
	"context"
	"io"

	"github.com/reque-io/reque/internal/application/request/dto"
	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type DownloadAttachmentQuery struct {
	AttachmentID uint
	ActorID      uint
}

// DownloadAttachmentResult carries an open reader. The caller owns Content
// and must close it after streaming.
type DownloadAttachmentResult struct {
	Attachment dto.AttachmentDTO
	Content    io.ReadCloser
}

type DownloadAttachmentUseCase struct {
	requestRepo    request.Repository
	attachmentRepo request.AttachmentRepository
	userRepo       user.Repository
	blobStore      request.BlobStore
	logger         logger.Interface
}

func NewDownloadAttachmentUseCase(
	requestRepo request.Repository,
	attachmentRepo request.AttachmentRepository,
	userRepo user.Repository,
	blobStore request.BlobStore,
	logger logger.Interface,
) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		requestRepo:    requestRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		blobStore:      blobStore,
		logger:         logger,
	}
}

func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, q DownloadAttachmentQuery) (*DownloadAttachmentResult, error) {
	if q.AttachmentID == 0 {
		return nil, errors.NewValidationError("attachment ID is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, q.ActorID)
	if err != nil {
		return nil, err
	}

	attachment, err := uc.attachmentRepo.GetByID(ctx, q.AttachmentID)
	if err != nil {
		return nil, err
	}

	// Visibility follows the parent request, not the attachment row.
	req, err := uc.requestRepo.GetByID(ctx, attachment.RequestID())
	if err != nil {
		return nil, err
	}

	if !req.CanBeViewedBy(actor.ID(), actor.Role()) {
		uc.logger.Warnw("attachment download denied",
			"attachment_id", q.AttachmentID, "request_id", req.ID(), "user_id", q.ActorID)
		return nil, errors.NewForbiddenError("you do not have access to this request")
	}

	content, err := uc.blobStore.Get(ctx, attachment.StorageKey())
	if err != nil {
		uc.logger.Errorw("failed to open attachment content",
			"attachment_id", q.AttachmentID, "storage_key", attachment.StorageKey(), "error", err)
		return nil, errors.NewInternalError("failed to open attachment content")
	}

	return &DownloadAttachmentResult{
		Attachment: dto.ToAttachmentDTO(attachment),
		Content:    content,
	}, nil
}
