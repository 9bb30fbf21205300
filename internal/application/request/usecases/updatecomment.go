package usecases

import (
	"context"
	"time"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type UpdateCommentCommand struct {
	CommentID uint
	ActorID   uint
	Content   string
}

type UpdateCommentResult struct {
	CommentID uint
	EditedAt  *time.Time
	UpdatedAt time.Time
}

// UpdateCommentUseCase lets authors revise their own comments. Admins may
// delete any comment but never rewrite someone else's words.
type UpdateCommentUseCase struct {
	commentRepo  request.CommentRepository
	activityRepo request.ActivityRepository
	userRepo     user.Repository
	txMgr        TransactionManager
	logger       logger.Interface
}

func NewUpdateCommentUseCase(
	commentRepo request.CommentRepository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *UpdateCommentUseCase {
	return &UpdateCommentUseCase{
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *UpdateCommentUseCase) Execute(ctx context.Context, cmd UpdateCommentCommand) (*UpdateCommentResult, error) {
	uc.logger.Infow("executing update comment use case", "comment_id", cmd.CommentID, "user_id", cmd.ActorID)

	if cmd.CommentID == 0 {
		return nil, errors.NewValidationError("comment ID is required")
	}

	if _, err := requireActiveActor(ctx, uc.userRepo, cmd.ActorID); err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.GetByID(ctx, cmd.CommentID)
	if err != nil {
		return nil, err
	}

	if !comment.IsAuthor(cmd.ActorID) {
		uc.logger.Warnw("comment edit denied", "comment_id", cmd.CommentID, "user_id", cmd.ActorID)
		return nil, errors.NewForbiddenError("only the author can edit a comment")
	}

	oldContent := comment.Content()
	if err := comment.UpdateContent(cmd.Content); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.Update(txCtx, comment); err != nil {
			return err
		}
		activity, err := request.NewActivity(comment.RequestID(), cmd.ActorID, vo.ActivityCommentUpdated,
			"comment", activityValue("content", oldContent), activityValue("content", comment.Content()))
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to update comment", "comment_id", cmd.CommentID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("comment updated", "comment_id", comment.ID(), "request_id", comment.RequestID())

	return &UpdateCommentResult{
		CommentID: comment.ID(),
		EditedAt:  comment.EditedAt(),
		UpdatedAt: comment.UpdatedAt(),
	}, nil
}
