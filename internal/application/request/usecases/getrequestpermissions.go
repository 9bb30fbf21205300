package usecases

import (
	"context"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type GetRequestPermissionsQuery struct {
	RequestID uint
	ActorID   uint
}

// GetRequestPermissionsUseCase exposes the capability flags the UI uses to
// show or hide controls. All-false flags are a valid answer, not an error;
// enforcement happens in the mutating usecases regardless.
type GetRequestPermissionsUseCase struct {
	requestRepo request.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewGetRequestPermissionsUseCase(
	requestRepo request.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetRequestPermissionsUseCase {
	return &GetRequestPermissionsUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *GetRequestPermissionsUseCase) Execute(ctx context.Context, query GetRequestPermissionsQuery) (*authorization.Capabilities, error) {
	if query.RequestID == 0 {
		return nil, errors.NewValidationError("request ID is required")
	}

	actor, err := requireActiveActor(ctx, uc.userRepo, query.ActorID)
	if err != nil {
		return nil, err
	}

	req, err := uc.requestRepo.GetByID(ctx, query.RequestID)
	if err != nil {
		return nil, err
	}

	caps := evaluateCapabilities(actor, req)
	return &caps, nil
}
