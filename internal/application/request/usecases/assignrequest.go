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

// AssignRequestCommand assigns when AssigneeID is set and unassigns when nil.
type AssignRequestCommand struct {
	RequestID  uint
	ActorID    uint
	AssigneeID *uint
}

type AssignRequestResult struct {
	RequestID  uint
	AssigneeID *uint
	UpdatedAt  time.Time
}

type AssignRequestUseCase struct {
	requestRepo  request.Repository
	activityRepo request.ActivityRepository
	userRepo     user.Repository
	txMgr        TransactionManager
	dispatcher   events.EventPublisher
	logger       logger.Interface
}

func NewAssignRequestUseCase(
	requestRepo request.Repository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	txMgr TransactionManager,
	dispatcher events.EventPublisher,
	logger logger.Interface,
) *AssignRequestUseCase {
	return &AssignRequestUseCase{
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (uc *AssignRequestUseCase) Execute(ctx context.Context, cmd AssignRequestCommand) (*AssignRequestResult, error) {
	uc.logger.Infow("executing assign request use case",
		"request_id", cmd.RequestID, "assignee_id", cmd.AssigneeID, "user_id", cmd.ActorID)

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
	if !caps.CanAssign {
		uc.logger.Warnw("assignment denied", "request_id", cmd.RequestID, "user_id", cmd.ActorID)
		return nil, errors.NewForbiddenError("you cannot change the assignment of this request")
	}

	// Admins assign freely; team members may only claim a request for
	// themselves or release their own assignment.
	if !actor.Role().IsAdmin() {
		if cmd.AssigneeID != nil && *cmd.AssigneeID != cmd.ActorID {
			return nil, errors.NewForbiddenError("team members can only claim requests for themselves")
		}
		if cmd.AssigneeID == nil && !req.IsAssignee(cmd.ActorID) {
			return nil, errors.NewForbiddenError("team members can only release their own assignment")
		}
	}

	oldAssignee := req.AssigneeID()

	if cmd.AssigneeID != nil {
		assignee, err := uc.userRepo.GetByID(ctx, *cmd.AssigneeID)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil, errors.NewValidationError("assignee not found")
			}
			return nil, err
		}
		if !assignee.Role().CanBeAssigned() {
			return nil, errors.NewValidationError("assignee must be a team member or admin")
		}
		if !assignee.CanPerformActions() {
			return nil, errors.NewValidationError("assignee account is not active")
		}
		if err := req.AssignTo(*cmd.AssigneeID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	} else {
		if err := req.Unassign(); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.Update(txCtx, req); err != nil {
			return err
		}
		activity, err := request.NewActivity(req.ID(), cmd.ActorID, vo.ActivityAssigneeChanged,
			"assignee_id", activityValue("assignee_id", assigneeValue(oldAssignee)), activityValue("assignee_id", assigneeValue(req.AssigneeID())))
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to change assignment", "request_id", cmd.RequestID, "error", txErr)
		return nil, txErr
	}

	if req.AssigneeID() != nil {
		event := request.NewRequestAssignedEvent(
			req.ID(), req.Number(), req.Title(), *req.AssigneeID(), cmd.ActorID)
		if err := uc.dispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish request assigned event", "request_id", req.ID(), "error", err)
		}
	}

	uc.logger.Infow("request assignment changed",
		"request_id", req.ID(), "assignee_id", req.AssigneeID())

	return &AssignRequestResult{
		RequestID:  req.ID(),
		AssigneeID: req.AssigneeID(),
		UpdatedAt:  req.UpdatedAt(),
	}, nil
}

func assigneeValue(id *uint) any {
	if id == nil {
		return nil
	}
	return *id
}
