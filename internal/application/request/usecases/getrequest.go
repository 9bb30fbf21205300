package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/application/request/dto"
	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/services/markdown"
)

type GetRequestQuery struct {
	RequestID uint
	ActorID   uint
}

type GetRequestUseCase struct {
	requestRepo    request.Repository
	commentRepo    request.CommentRepository
	attachmentRepo request.AttachmentRepository
	userRepo       user.Repository
	renderer       markdown.Renderer
	logger         logger.Interface
}

func NewGetRequestUseCase(
	requestRepo request.Repository,
	commentRepo request.CommentRepository,
	attachmentRepo request.AttachmentRepository,
	userRepo user.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *GetRequestUseCase {
	return &GetRequestUseCase{
		requestRepo:    requestRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		renderer:       renderer,
		logger:         logger,
	}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, query GetRequestQuery) (*dto.RequestDTO, error) {
	if query.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, query.ActorID)
	if err != nil {
		return nil, err
	}

	req, err := uc.requestRepo.GetByID(ctx, query.RequestID)
	if err != nil {
		return nil, err
	}

	caps := evaluateCapabilities(actor, req)
	if !caps.CanView {
		uc.logger.Warnw("request view denied", "request_id", query.RequestID, "user_id", query.ActorID)
		return nil, errors.NewForbiddenError("you do not have access to this request")
	}

	comments, err := uc.commentRepo.ListByRequestID(ctx, query.RequestID)
	if err != nil {
		uc.logger.Errorw("failed to load comments", "request_id", query.RequestID, "error", err)
		return nil, err
	}

	attachments, err := uc.attachmentRepo.ListByRequestID(ctx, query.RequestID)
	if err != nil {
		uc.logger.Errorw("failed to load attachments", "request_id", query.RequestID, "error", err)
		return nil, err
	}

	descriptionHTML, err := uc.renderer.Render(req.Description())
	if err != nil {
		uc.logger.Errorw("failed to render description", "request_id", query.RequestID, "error", err)
		descriptionHTML = ""
	}

	commentDTOs := make([]dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		contentHTML, err := uc.renderer.Render(c.Content())
		if err != nil {
			uc.logger.Errorw("failed to render comment", "comment_id", c.ID(), "error", err)
			contentHTML = ""
		}
		commentDTOs = append(commentDTOs, dto.ToCommentDTO(c, contentHTML))
	}

	return dto.ToRequestDTO(req, descriptionHTML, commentDTOs, dto.ToAttachmentDTOs(attachments), caps), nil
}
