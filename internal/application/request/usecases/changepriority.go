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

type ChangePriorityCommand struct {
	RequestID uint
	ActorID   uint
	Priority  string
}

type ChangePriorityResult struct {
	RequestID   uint
	OldPriority string
	NewPriority string
	UpdatedAt   time.Time
}

type ChangePriorityUseCase struct {
	requestRepo  request.Repository
	activityRepo request.ActivityRepository
	userRepo     user.Repository
	txMgr        TransactionManager
	dispatcher   events.EventPublisher
	logger       logger.Interface
}

func NewChangePriorityUseCase(
	requestRepo request.Repository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	txMgr TransactionManager,
	dispatcher events.EventPublisher,
	logger logger.Interface,
) *ChangePriorityUseCase {
	return &ChangePriorityUseCase{
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (uc *ChangePriorityUseCase) Execute(ctx context.Context, cmd ChangePriorityCommand) (*ChangePriorityResult, error) {
	uc.logger.Infow("executing change priority use case",
		"request_id", cmd.RequestID, "priority", cmd.Priority, "user_id", cmd.ActorID)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}
	next, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
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
	if !caps.CanChangePriority {
		uc.logger.Warnw("priority change denied", "request_id", cmd.RequestID, "user_id", cmd.ActorID)
		return nil, errors.NewForbiddenError("you cannot change the priority of this request")
	}

	oldPriority := req.Priority()
	if err := req.ChangePriority(next); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.Update(txCtx, req); err != nil {
			return err
		}
		activity, err := request.NewActivity(req.ID(), cmd.ActorID, vo.ActivityPriorityChanged,
			"priority", activityValue("priority", oldPriority.String()), activityValue("priority", req.Priority().String()))
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to change priority", "request_id", cmd.RequestID, "error", txErr)
		return nil, txErr
	}

	event := request.NewRequestPriorityChangedEvent(
		req.ID(), req.Number(),
		oldPriority.String(), req.Priority().String(),
		cmd.ActorID, req.CreatorID(),
	)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish priority changed event", "request_id", req.ID(), "error", err)
	}

	uc.logger.Infow("request priority changed",
		"request_id", req.ID(), "from", oldPriority.String(), "to", req.Priority().String())

	return &ChangePriorityResult{
		RequestID:   req.ID(),
		OldPriority: oldPriority.String(),
		NewPriority: req.Priority().String(),
		UpdatedAt:   req.UpdatedAt(),
	}, nil
}
