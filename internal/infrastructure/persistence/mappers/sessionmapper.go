package mappers

import (
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
)

// SessionMapper converts between session entities and persistence models.
// Sessions carry no value objects, so the conversion cannot fail.
type SessionMapper interface {
	ToModel(entity *user.Session) *models.SessionModel
	ToDomain(model *models.SessionModel) *user.Session
}

type SessionMapperImpl struct{}

func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

func (m *SessionMapperImpl) ToModel(entity *user.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}
	return &models.SessionModel{
		ID:               entity.ID,
		UserID:           entity.UserID,
		DeviceName:       entity.DeviceName,
		DeviceType:       entity.DeviceType,
		IPAddress:        entity.IPAddress,
		UserAgent:        entity.UserAgent,
		RefreshTokenHash: entity.RefreshTokenHash,
		ExpiresAt:        entity.ExpiresAt,
		LastActivityAt:   entity.LastActivityAt,
		CreatedAt:        entity.CreatedAt,
	}
}

func (m *SessionMapperImpl) ToDomain(model *models.SessionModel) *user.Session {
	if model == nil {
		return nil
	}
	return &user.Session{
		ID:               model.ID,
		UserID:           model.UserID,
		DeviceName:       model.DeviceName,
		DeviceType:       model.DeviceType,
		IPAddress:        model.IPAddress,
		UserAgent:        model.UserAgent,
		RefreshTokenHash: model.RefreshTokenHash,
		ExpiresAt:        model.ExpiresAt,
		LastActivityAt:   model.LastActivityAt,
		CreatedAt:        model.CreatedAt,
	}
}
