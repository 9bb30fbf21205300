package mappers

import (
	"fmt"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/mapper"
)

// RequestMapper converts between the request aggregate and its persistence
// model.
type RequestMapper interface {
	ToModel(entity *request.Request) *models.RequestModel
	ToDomain(model *models.RequestModel) (*request.Request, error)
	ToDomains(models []*models.RequestModel) ([]*request.Request, error)
}

type RequestMapperImpl struct{}

func NewRequestMapper() RequestMapper {
	return &RequestMapperImpl{}
}

func (m *RequestMapperImpl) ToModel(entity *request.Request) *models.RequestModel {
	if entity == nil {
		return nil
	}
	return &models.RequestModel{
		ID:          entity.ID(),
		Number:      entity.Number(),
		Title:       entity.Title(),
		Description: entity.Description(),
		Status:      entity.Status().String(),
		Priority:    entity.Priority().String(),
		DueDate:     entity.DueDate(),
		CreatorID:   entity.CreatorID(),
		AssigneeID:  entity.AssigneeID(),
		Version:     entity.Version(),
		CompletedAt: entity.CompletedAt(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *RequestMapperImpl) ToDomain(model *models.RequestModel) (*request.Request, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create status value object: %w", err)
	}

	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("failed to create priority value object: %w", err)
	}

	entity, err := request.ReconstructRequest(
		model.ID,
		model.Number,
		model.Title,
		model.Description,
		status,
		priority,
		model.DueDate,
		model.CreatorID,
		model.AssigneeID,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
		model.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct request entity: %w", err)
	}

	return entity, nil
}

func (m *RequestMapperImpl) ToDomains(modelList []*models.RequestModel) ([]*request.Request, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.RequestModel) uint { return model.ID })
}
