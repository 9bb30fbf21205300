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

type ChangeStatusCommand struct {
	RequestID uint
	ActorID   uint
	Status    string
}

type ChangeStatusResult struct {
	RequestID   uint
	OldStatus   string
	NewStatus   string
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

type ChangeStatusUseCase struct {
	requestRepo  request.Repository
	activityRepo request.ActivityRepository
	userRepo     user.Repository
	txMgr        TransactionManager
	dispatcher   events.EventPublisher
	logger       logger.Interface
}

func NewChangeStatusUseCase(
	requestRepo request.Repository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	txMgr TransactionManager,
	dispatcher events.EventPublisher,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case",
		"request_id", cmd.RequestID, "status", cmd.Status, "user_id", cmd.ActorID)

	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}
	next, err := vo.NewStatus(cmd.Status)
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
	if !caps.CanChangeStatus {
		uc.logger.Warnw("status change denied", "request_id", cmd.RequestID, "user_id", cmd.ActorID)
		return nil, errors.NewForbiddenError("you cannot change the status of this request")
	}

	oldStatus := req.Status()
	if err := req.ChangeStatus(next); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.Update(txCtx, req); err != nil {
			return err
		}
		activity, err := request.NewActivity(req.ID(), cmd.ActorID, vo.ActivityStatusChanged,
			"status", activityValue("status", oldStatus.String()), activityValue("status", req.Status().String()))
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to change status", "request_id", cmd.RequestID, "error", txErr)
		return nil, txErr
	}

	event := request.NewRequestStatusChangedEvent(
		req.ID(), req.Number(), req.Title(),
		oldStatus.String(), req.Status().String(),
		cmd.ActorID, req.CreatorID(), req.AssigneeID(),
	)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish status changed event", "request_id", req.ID(), "error", err)
	}

	uc.logger.Infow("request status changed",
		"request_id", req.ID(), "from", oldStatus.String(), "to", req.Status().String())

	return &ChangeStatusResult{
		RequestID:   req.ID(),
		OldStatus:   oldStatus.String(),
		NewStatus:   req.Status().String(),
		CompletedAt: req.CompletedAt(),
		UpdatedAt:   req.UpdatedAt(),
	}, nil
}
