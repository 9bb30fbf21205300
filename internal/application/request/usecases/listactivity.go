package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/application/request/dto"
	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/query"
)

type ListActivityQuery struct {
	RequestID uint
	ActorID   uint
	Page      int
	PageSize  int
}

type ListActivityResult struct {
	Items    []dto.ActivityDTO
	Total    int64
	Page     int
	PageSize int
}

type ListActivityUseCase struct {
	requestRepo  request.Repository
	activityRepo request.ActivityRepository
	userRepo     user.Repository
	logger       logger.Interface
}

func NewListActivityUseCase(
	requestRepo request.Repository,
	activityRepo request.ActivityRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListActivityUseCase {
	return &ListActivityUseCase{
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

func (uc *ListActivityUseCase) Execute(ctx context.Context, q ListActivityQuery) (*ListActivityResult, error) {
	if q.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, q.ActorID)
	if err != nil {
		return nil, err
	}

	req, err := uc.requestRepo.GetByID(ctx, q.RequestID)
	if err != nil {
		return nil, err
	}

	caps := evaluateCapabilities(actor, req)
	if !caps.CanViewActivity {
		uc.logger.Warnw("activity view denied", "request_id", q.RequestID, "user_id", q.ActorID)
		return nil, errors.NewForbiddenError("you do not have access to this request")
	}

	page := query.PageFilter{Page: q.Page, PageSize: q.PageSize}
	activities, total, err := uc.activityRepo.ListByRequestID(ctx, q.RequestID, page)
	if err != nil {
		uc.logger.Errorw("failed to list activity", "request_id", q.RequestID, "error", err)
		return nil, errors.NewInternalError("failed to list activity")
	}

	currentPage := page.Page
	if currentPage < 1 {
		currentPage = 1
	}

	return &ListActivityResult{
		Items:    dto.ToActivityDTOs(activities),
		Total:    total,
		Page:     currentPage,
		PageSize: page.Limit(),
	}, nil
}
