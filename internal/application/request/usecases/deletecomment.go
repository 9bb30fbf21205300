package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type DeleteCommentCommand struct {
	CommentID uint
	ActorID   uint
}

type DeleteCommentResult struct {
	CommentID uint
	RequestID uint
}

type DeleteCommentUseCase struct {
	commentRepo  request.CommentRepository
	activityRepo request.ActivityRepository
	userRepo     user.Repository
	txMgr        TransactionManager
	logger       logger.Interface
}

func NewDeleteCommentUseCase(
	commentRepo request.CommentRepository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *DeleteCommentUseCase {
	return &DeleteCommentUseCase{
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *DeleteCommentUseCase) Execute(ctx context.Context, cmd DeleteCommentCommand) (*DeleteCommentResult, error) {
	uc.logger.Infow("executing delete comment use case", "comment_id", cmd.CommentID, "user_id", cmd.ActorID)

	if cmd.CommentID == 0 {
		return nil, errors.NewValidationError("comment ID is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.GetByID(ctx, cmd.CommentID)
	if err != nil {
		return nil, err
	}

	if !comment.IsAuthor(cmd.ActorID) && !actor.Role().IsAdmin() {
		uc.logger.Warnw("comment deletion denied", "comment_id", cmd.CommentID, "user_id", cmd.ActorID)
		return nil, errors.NewForbiddenError("only the author or an admin can delete a comment")
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.Delete(txCtx, cmd.CommentID); err != nil {
			return err
		}
		activity, err := request.NewActivity(comment.RequestID(), cmd.ActorID, vo.ActivityCommentDeleted,
			"comment", activityValue("content", comment.Content()), nil)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to delete comment", "comment_id", cmd.CommentID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("comment deleted", "comment_id", cmd.CommentID, "request_id", comment.RequestID())

	return &DeleteCommentResult{
		CommentID: cmd.CommentID,
		RequestID: comment.RequestID(),
	}, nil
}
