package mappers

import (
	"fmt"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/mapper"
)

// AttachmentMapper converts between attachment entities and persistence
// models.
type AttachmentMapper interface {
	ToModel(entity *request.Attachment) *models.AttachmentModel
	ToDomain(model *models.AttachmentModel) (*request.Attachment, error)
	ToDomains(models []*models.AttachmentModel) ([]*request.Attachment, error)
}

type AttachmentMapperImpl struct{}

func NewAttachmentMapper() AttachmentMapper {
	return &AttachmentMapperImpl{}
}

func (m *AttachmentMapperImpl) ToModel(entity *request.Attachment) *models.AttachmentModel {
	if entity == nil {
		return nil
	}
	return &models.AttachmentModel{
		ID:          entity.ID(),
		RequestID:   entity.RequestID(),
		UploaderID:  entity.UploaderID(),
		StorageKey:  entity.StorageKey(),
		FileName:    entity.FileName(),
		ContentType: entity.ContentType(),
		SizeBytes:   entity.SizeBytes(),
		Checksum:    entity.Checksum(),
		CreatedAt:   entity.CreatedAt(),
	}
}

func (m *AttachmentMapperImpl) ToDomain(model *models.AttachmentModel) (*request.Attachment, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := request.ReconstructAttachment(
		model.ID,
		model.RequestID,
		model.UploaderID,
		model.StorageKey,
		model.FileName,
		model.ContentType,
		model.SizeBytes,
		model.Checksum,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct attachment entity: %w", err)
	}

	return entity, nil
}

func (m *AttachmentMapperImpl) ToDomains(modelList []*models.AttachmentModel) ([]*request.Attachment, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.AttachmentModel) uint { return model.ID })
}
