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

type ListCommentsQuery struct {
	RequestID uint
	ActorID   uint
}

type ListCommentsUseCase struct {
	requestRepo request.Repository
	commentRepo request.CommentRepository
	userRepo    user.Repository
	renderer    markdown.Renderer
	logger      logger.Interface
}

func NewListCommentsUseCase(
	requestRepo request.Repository,
	commentRepo request.CommentRepository,
	userRepo user.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		requestRepo: requestRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *ListCommentsUseCase) Execute(ctx context.Context, query ListCommentsQuery) ([]dto.CommentDTO, error) {
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

	if !req.CanBeViewedBy(actor.ID(), actor.Role()) {
		return nil, errors.NewForbiddenError("you do not have access to this request")
	}

	comments, err := uc.commentRepo.ListByRequestID(ctx, query.RequestID)
	if err != nil {
		uc.logger.Errorw("failed to list comments", "request_id", query.RequestID, "error", err)
		return nil, err
	}

	items := make([]dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		contentHTML, err := uc.renderer.Render(c.Content())
		if err != nil {
			uc.logger.Errorw("failed to render comment", "comment_id", c.ID(), "error", err)
			contentHTML = ""
		}
		items = append(items, dto.ToCommentDTO(c, contentHTML))
	}
	return items, nil
}
