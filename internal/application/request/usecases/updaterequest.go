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

// UpdateRequestCommand carries partial updates: empty Title/Description keep
// the current value; DueDate nil with ClearDueDate false leaves the due date
// alone, ClearDueDate true removes it.
type UpdateRequestCommand struct {
	RequestID    uint
	ActorID      uint
	Title        string
	Description  string
	DueDate      *time.Time
	ClearDueDate bool
}

type UpdateRequestResult struct {
	RequestID uint
	Version   int
	UpdatedAt time.Time
}

type UpdateRequestUseCase struct {
	requestRepo  request.Repository
	activityRepo request.ActivityRepository
	userRepo     user.Repository
	txMgr        TransactionManager
	logger       logger.Interface
}

func NewUpdateRequestUseCase(
	requestRepo request.Repository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *UpdateRequestUseCase {
	return &UpdateRequestUseCase{
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *UpdateRequestUseCase) Execute(ctx context.Context, cmd UpdateRequestCommand) (*UpdateRequestResult, error) {
	uc.logger.Infow("executing update request use case", "request_id", cmd.RequestID, "user_id", cmd.ActorID)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}
	if cmd.Title == "" && cmd.Description == "" && cmd.DueDate == nil && !cmd.ClearDueDate {
		return nil, errors.NewValidationError("nothing to update")
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

	detailsChange := cmd.Title != "" || cmd.Description != ""
	dueDateChange := cmd.DueDate != nil || cmd.ClearDueDate

	if detailsChange && !caps.CanEditDetails {
		uc.logger.Warnw("detail edit denied", "request_id", cmd.RequestID, "user_id", cmd.ActorID)
		return nil, errors.NewForbiddenError("you cannot edit this request")
	}
	// Due date is a triage field, same gate as status changes.
	if dueDateChange && !caps.CanChangeStatus {
		uc.logger.Warnw("due date change denied", "request_id", cmd.RequestID, "user_id", cmd.ActorID)
		return nil, errors.NewForbiddenError("you cannot change the due date")
	}

	oldTitle := req.Title()
	oldDescription := req.Description()
	oldDueDate := req.DueDate()

	var activities []*request.Activity

	if detailsChange {
		if err := req.UpdateDetails(cmd.Title, cmd.Description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if cmd.Title != "" && cmd.Title != oldTitle {
			activity, err := request.NewActivity(req.ID(), cmd.ActorID, vo.ActivityDetailUpdated,
				"title", activityValue("title", oldTitle), activityValue("title", req.Title()))
			if err != nil {
				return nil, errors.NewInternalError(err.Error())
			}
			activities = append(activities, activity)
		}
		if cmd.Description != "" && cmd.Description != oldDescription {
			activity, err := request.NewActivity(req.ID(), cmd.ActorID, vo.ActivityDetailUpdated,
				"description", activityValue("description", oldDescription), activityValue("description", req.Description()))
			if err != nil {
				return nil, errors.NewInternalError(err.Error())
			}
			activities = append(activities, activity)
		}
	}

	if dueDateChange {
		next := cmd.DueDate
		if cmd.ClearDueDate {
			next = nil
		}
		if err := req.ChangeDueDate(next); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		activity, err := request.NewActivity(req.ID(), cmd.ActorID, vo.ActivityDueDateChanged,
			"due_date", activityValue("due_date", formatDueDate(oldDueDate)), activityValue("due_date", formatDueDate(req.DueDate())))
		if err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
		activities = append(activities, activity)
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.Update(txCtx, req); err != nil {
			return err
		}
		for _, activity := range activities {
			if err := uc.activityRepo.Save(txCtx, activity); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to update request", "request_id", cmd.RequestID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("request updated", "request_id", req.ID(), "version", req.Version())

	return &UpdateRequestResult{
		RequestID: req.ID(),
		Version:   req.Version(),
		UpdatedAt: req.UpdatedAt(),
	}, nil
}

// formatDueDate renders a due date for the audit trail; nil maps to JSON null.
func formatDueDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
