package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/application/request/dto"
	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type GetRequestStatsQuery struct {
	ActorID uint
}

type GetRequestStatsUseCase struct {
	requestRepo request.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewGetRequestStatsUseCase(
	requestRepo request.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetRequestStatsUseCase {
	return &GetRequestStatsUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *GetRequestStatsUseCase) Execute(ctx context.Context, query GetRequestStatsQuery) (*dto.StatsDTO, error) {
	actor, err := requireActiveActor(ctx, uc.userRepo, query.ActorID)
	if err != nil {
		return nil, err
	}

	filter := request.StatsFilter{}
	if !actor.Role().IsStaff() {
		viewerID := actor.ID()
		filter.ViewerID = &viewerID
	}

	stats, err := uc.requestRepo.GetStats(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to get request stats", "error", err)
		return nil, errors.NewInternalError("failed to get request stats")
	}

	// Zero-fill so every status and priority shows up in the dashboard even
	// when no request holds it.
	if stats.ByStatus == nil {
		stats.ByStatus = make(map[vo.Status]int64)
	}
	for _, status := range vo.AllStatuses() {
		if _, ok := stats.ByStatus[status]; !ok {
			stats.ByStatus[status] = 0
		}
	}
	if stats.ByPriority == nil {
		stats.ByPriority = make(map[vo.Priority]int64)
	}
	for _, priority := range vo.AllPriorities() {
		if _, ok := stats.ByPriority[priority]; !ok {
			stats.ByPriority[priority] = 0
		}
	}

	return dto.ToStatsDTO(stats), nil
}
