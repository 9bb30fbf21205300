package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/application/request/dto"
	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type ListAttachmentsQuery struct {
	RequestID uint
	ActorID   uint
}

type ListAttachmentsUseCase struct {
	requestRepo    request.Repository
	attachmentRepo request.AttachmentRepository
	userRepo       user.Repository
	logger         logger.Interface
}

func NewListAttachmentsUseCase(
	requestRepo request.Repository,
	attachmentRepo request.AttachmentRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListAttachmentsUseCase {
	return &ListAttachmentsUseCase{
		requestRepo:    requestRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (uc *ListAttachmentsUseCase) Execute(ctx context.Context, q ListAttachmentsQuery) ([]dto.AttachmentDTO, error) {
	if q.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, q.ActorID)
	if err != nil {
		return nil, err
	}

	req, err := uc.requestRepo.GetByID(ctx, q.RequestID)
	if err != nil {
		return nil, err
	}

	if !req.CanBeViewedBy(actor.ID(), actor.Role()) {
		uc.logger.Warnw("attachment list denied", "request_id", q.RequestID, "user_id", q.ActorID)
		return nil, errors.NewForbiddenError("you do not have access to this request")
	}

	attachments, err := uc.attachmentRepo.ListByRequestID(ctx, q.RequestID)
	if err != nil {
		uc.logger.Errorw("failed to list attachments", "request_id", q.RequestID, "error", err)
		return nil, errors.NewInternalError("failed to list attachments")
	}

	return dto.ToAttachmentDTOs(attachments), nil
}
