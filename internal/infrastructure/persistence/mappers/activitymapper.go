package mappers

import (
	"fmt"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/mapper"
)

// ActivityMapper converts between activity records and persistence models.
type ActivityMapper interface {
	ToModel(entity *request.Activity) *models.ActivityModel
	ToDomain(model *models.ActivityModel) (*request.Activity, error)
	ToDomains(models []*models.ActivityModel) ([]*request.Activity, error)
}

type ActivityMapperImpl struct{}

func NewActivityMapper() ActivityMapper {
	return &ActivityMapperImpl{}
}

func (m *ActivityMapperImpl) ToModel(entity *request.Activity) *models.ActivityModel {
	if entity == nil {
		return nil
	}
	return &models.ActivityModel{
		ID:           entity.ID(),
		RequestID:    entity.RequestID(),
		ActorID:      entity.ActorID(),
		ActivityType: entity.ActivityType().String(),
		Field:        entity.Field(),
		OldValue:     entity.OldValue(),
		NewValue:     entity.NewValue(),
		CreatedAt:    entity.CreatedAt(),
	}
}

func (m *ActivityMapperImpl) ToDomain(model *models.ActivityModel) (*request.Activity, error) {
	if model == nil {
		return nil, nil
	}

	activityType, err := vo.NewActivityType(model.ActivityType)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity type value object: %w", err)
	}

	entity, err := request.ReconstructActivity(
		model.ID,
		model.RequestID,
		model.ActorID,
		activityType,
		model.Field,
		model.OldValue,
		model.NewValue,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct activity entity: %w", err)
	}

	return entity, nil
}

func (m *ActivityMapperImpl) ToDomains(modelList []*models.ActivityModel) ([]*request.Activity, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.ActivityModel) uint { return model.ID })
}
