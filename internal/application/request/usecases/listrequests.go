package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/application/request/dto"
	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type ListRequestsQuery struct {
	ActorID    uint
	Status     *string
	Priority   *string
	CreatorID  *uint
	AssigneeID *uint
	Overdue    *bool
	DueBefore  *string // YYYY-MM-DD, business timezone
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type ListRequestsResult struct {
	Items    []dto.RequestListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListRequestsUseCase struct {
	requestRepo request.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewListRequestsUseCase(
	requestRepo request.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListRequestsUseCase {
	return &ListRequestsUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *ListRequestsUseCase) Execute(ctx context.Context, query ListRequestsQuery) (*ListRequestsResult, error) {
	actor, err := requireActiveActor(ctx, uc.userRepo, query.ActorID)
	if err != nil {
		return nil, err
	}

	filter := request.Filter{
		CreatorID:  query.CreatorID,
		AssigneeID: query.AssigneeID,
		Overdue:    query.Overdue,
		Search:     query.Search,
	}
	filter.Page = query.Page
	filter.PageSize = query.PageSize
	filter.SortBy = query.SortBy
	filter.SortOrder = query.SortOrder

	if query.Status != nil {
		status, err := vo.NewStatus(*query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status")
		}
		filter.Status = &status
	}
	if query.Priority != nil {
		priority, err := vo.NewPriority(*query.Priority)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority")
		}
		filter.Priority = &priority
	}
	if query.DueBefore != nil {
		day, err := biztime.ParseDateInBizTimezone(*query.DueBefore)
		if err != nil {
			return nil, errors.NewValidationError("invalid due_before date, expected YYYY-MM-DD")
		}
		// The whole named day counts, so the bound is its last instant.
		bound := biztime.EndOfDayUTC(day)
		filter.DueBefore = &bound
	}

	// Non-staff callers only ever see requests they created or hold an
	// assignment on, regardless of the filters they send.
	if !actor.Role().IsStaff() {
		viewerID := actor.ID()
		filter.ViewerID = &viewerID
	}

	requests, total, err := uc.requestRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list requests", "error", err)
		return nil, errors.NewInternalError("failed to list requests")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	return &ListRequestsResult{
		Items:    dto.ToRequestListItemDTOs(requests),
		Total:    total,
		Page:     page,
		PageSize: filter.Limit(),
	}, nil
}
