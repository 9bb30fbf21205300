package mappers

import (
	"fmt"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/mapper"
)

// CommentMapper converts between comment entities and persistence models.
type CommentMapper interface {
	ToModel(entity *request.Comment) *models.CommentModel
	ToDomain(model *models.CommentModel) (*request.Comment, error)
	ToDomains(models []*models.CommentModel) ([]*request.Comment, error)
}

type CommentMapperImpl struct{}

func NewCommentMapper() CommentMapper {
	return &CommentMapperImpl{}
}

func (m *CommentMapperImpl) ToModel(entity *request.Comment) *models.CommentModel {
	if entity == nil {
		return nil
	}
	return &models.CommentModel{
		ID:        entity.ID(),
		RequestID: entity.RequestID(),
		AuthorID:  entity.AuthorID(),
		Content:   entity.Content(),
		EditedAt:  entity.EditedAt(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *CommentMapperImpl) ToDomain(model *models.CommentModel) (*request.Comment, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := request.ReconstructComment(
		model.ID,
		model.RequestID,
		model.AuthorID,
		model.Content,
		model.CreatedAt,
		model.UpdatedAt,
		model.EditedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct comment entity: %w", err)
	}

	return entity, nil
}

func (m *CommentMapperImpl) ToDomains(modelList []*models.CommentModel) ([]*request.Comment, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.CommentModel) uint { return model.ID })
}
