package usecases

import (
	"context"
	"time"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type CreateRequestCommand struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	CreatorID   uint
}

type CreateRequestResult struct {
	RequestID uint
	Number    string
	Status    string
	CreatedAt time.Time
}

type CreateRequestUseCase struct {
	requestRepo  request.Repository
	activityRepo request.ActivityRepository
	userRepo     user.Repository
	numberGen    request.NumberGenerator
	txMgr        TransactionManager
	dispatcher   events.EventPublisher
	logger       logger.Interface
}

func NewCreateRequestUseCase(
	requestRepo request.Repository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	numberGen request.NumberGenerator,
	txMgr TransactionManager,
	dispatcher events.EventPublisher,
	logger logger.Interface,
) *CreateRequestUseCase {
	return &CreateRequestUseCase{
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		numberGen:    numberGen,
		txMgr:        txMgr,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (uc *CreateRequestUseCase) Execute(ctx context.Context, cmd CreateRequestCommand) (*CreateRequestResult, error) {
	uc.logger.Infow("executing create request use case", "title", cmd.Title, "creator_id", cmd.CreatorID)

	actor, err := requireActiveActor(ctx, uc.userRepo, cmd.CreatorID)
	if err != nil {
		return nil, err
	}
	if actor.Role() == authorization.RoleGuest {
		uc.logger.Warnw("guest attempted to create a request", "user_id", cmd.CreatorID)
		return nil, errors.NewForbiddenError("guests cannot create requests")
	}

	if cmd.Priority == "" {
		cmd.Priority = vo.PriorityNormal.String()
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	newRequest, err := request.NewRequest(cmd.Title, cmd.Description, priority, cmd.DueDate, cmd.CreatorID)
	if err != nil {
		uc.logger.Warnw("invalid create request command", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Number generation joins the transaction so the per-day sequence
		// row lock guarantees uniqueness under concurrent creates.
		number, err := uc.numberGen.Generate(txCtx)
		if err != nil {
			return errors.NewInternalError("failed to generate request number", err.Error())
		}
		if err := newRequest.SetNumber(number); err != nil {
			return errors.NewInternalError(err.Error())
		}

		if err := uc.requestRepo.Save(txCtx, newRequest); err != nil {
			return err
		}

		activity, err := request.NewActivity(
			newRequest.ID(),
			cmd.CreatorID,
			vo.ActivityRequestCreated,
			"",
			nil,
			activityValue("status", newRequest.Status().String()),
		)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to create request", "error", txErr)
		return nil, txErr
	}

	event := request.NewRequestCreatedEvent(
		newRequest.ID(),
		newRequest.Number(),
		newRequest.Title(),
		newRequest.Priority().String(),
		cmd.CreatorID,
	)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish request created event", "request_id", newRequest.ID(), "error", err)
	}

	uc.logger.Infow("request created", "request_id", newRequest.ID(), "number", newRequest.Number())

	return &CreateRequestResult{
		RequestID: newRequest.ID(),
		Number:    newRequest.Number(),
		Status:    newRequest.Status().String(),
		CreatedAt: newRequest.CreatedAt(),
	}, nil
}
