package usecases

import (
	"context"
	"time"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type AddCommentCommand struct {
	RequestID uint
	AuthorID  uint
	Content   string
}

type AddCommentResult struct {
	CommentID uint
	CreatedAt time.Time
}

type AddCommentUseCase struct {
	requestRepo  request.Repository
	commentRepo  request.CommentRepository
	activityRepo request.ActivityRepository
	userRepo     user.Repository
	txMgr        TransactionManager
	dispatcher   events.EventPublisher
	logger       logger.Interface
}

func NewAddCommentUseCase(
	requestRepo request.Repository,
	commentRepo request.CommentRepository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	txMgr TransactionManager,
	dispatcher events.EventPublisher,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		requestRepo:  requestRepo,
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case", "request_id", cmd.RequestID, "user_id", cmd.AuthorID)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, cmd.AuthorID)
	if err != nil {
		return nil, err
	}

	req, err := uc.requestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}

	caps := evaluateCapabilities(actor, req)
	if !caps.CanComment {
		uc.logger.Warnw("comment denied", "request_id", cmd.RequestID, "user_id", cmd.AuthorID)
		return nil, errors.NewForbiddenError("you cannot comment on this request")
	}

	comment, err := request.NewComment(cmd.RequestID, cmd.AuthorID, cmd.Content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.Save(txCtx, comment); err != nil {
			return err
		}
		activity, err := request.NewActivity(cmd.RequestID, cmd.AuthorID, vo.ActivityCommentAdded,
			"comment", nil, activityValue("comment_id", comment.ID()))
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to add comment", "request_id", cmd.RequestID, "error", txErr)
		return nil, txErr
	}

	event := request.NewCommentAddedEvent(
		req.ID(), req.Number(), req.Title(),
		comment.ID(), cmd.AuthorID, req.CreatorID(), req.AssigneeID(),
	)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish comment added event", "comment_id", comment.ID(), "error", err)
	}

	uc.logger.Infow("comment added", "comment_id", comment.ID(), "request_id", cmd.RequestID)

	return &AddCommentResult{
		CommentID: comment.ID(),
		CreatedAt: comment.CreatedAt(),
	}, nil
}
