package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/reque-io/reque/internal/application/user/dto"
	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type ListUsersQuery struct {
	ActorID   uint
	Role      string
	Status    string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListUsersResult struct {
	Items    []dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

// ListUsersUseCase is the admin account directory with role, status, and
// free-text filters.
type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, query.ActorID); err != nil {
		return nil, err
	}

	if query.Role != "" && !authorization.UserRole(query.Role).IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid role filter: %s", query.Role))
	}
	if query.Status != "" {
		if _, err := vo.NewStatus(query.Status); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	filter := user.ListFilter{
		Role:   query.Role,
		Status: query.Status,
		Search: strings.TrimSpace(query.Search),
	}
	filter.Page = query.Page
	filter.PageSize = query.PageSize
	filter.SortBy = query.SortBy
	filter.SortOrder = query.SortOrder

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	return &ListUsersResult{
		Items:    dto.ToUserDTOs(users),
		Total:    total,
		Page:     page,
		PageSize: filter.Limit(),
	}, nil
}
