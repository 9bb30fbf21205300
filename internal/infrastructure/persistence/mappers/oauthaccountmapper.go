package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/mapper"
)

// OAuthAccountMapper converts between OAuth account entities and persistence
// models.
type OAuthAccountMapper interface {
	ToModel(entity *user.OAuthAccount) (*models.OAuthAccountModel, error)
	ToDomain(model *models.OAuthAccountModel) (*user.OAuthAccount, error)
	ToDomains(models []*models.OAuthAccountModel) ([]*user.OAuthAccount, error)
}

type OAuthAccountMapperImpl struct{}

func NewOAuthAccountMapper() OAuthAccountMapper {
	return &OAuthAccountMapperImpl{}
}

func (m *OAuthAccountMapperImpl) ToModel(entity *user.OAuthAccount) (*models.OAuthAccountModel, error) {
	if entity == nil {
		return nil, nil
	}

	var profileJSON datatypes.JSON
	if profile := entity.ProfileData; len(profile) > 0 {
		data, err := json.Marshal(profile)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile data: %w", err)
		}
		profileJSON = data
	}

	return &models.OAuthAccountModel{
		ID:                entity.ID,
		UserID:            entity.UserID,
		Provider:          entity.Provider,
		ProviderUserID:    entity.ProviderUserID,
		ProviderEmail:     entity.ProviderEmail,
		ProviderUsername:  entity.ProviderUsername,
		ProviderAvatarURL: entity.ProviderAvatarURL,
		ProfileData:       profileJSON,
		LastLoginAt:       entity.LastLoginAt,
		LoginCount:        entity.LoginCount,
		CreatedAt:         entity.CreatedAt,
		UpdatedAt:         entity.UpdatedAt,
	}, nil
}

func (m *OAuthAccountMapperImpl) ToDomain(model *models.OAuthAccountModel) (*user.OAuthAccount, error) {
	if model == nil {
		return nil, nil
	}

	var profile map[string]interface{}
	if model.ProfileData != nil {
		if err := json.Unmarshal(model.ProfileData, &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile data: %w", err)
		}
	}

	return &user.OAuthAccount{
		ID:                model.ID,
		UserID:            model.UserID,
		Provider:          model.Provider,
		ProviderUserID:    model.ProviderUserID,
		ProviderEmail:     model.ProviderEmail,
		ProviderUsername:  model.ProviderUsername,
		ProviderAvatarURL: model.ProviderAvatarURL,
		ProfileData:       profile,
		LastLoginAt:       model.LastLoginAt,
		LoginCount:        model.LoginCount,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}, nil
}

func (m *OAuthAccountMapperImpl) ToDomains(modelList []*models.OAuthAccountModel) ([]*user.OAuthAccount, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.OAuthAccountModel) uint { return model.ID })
}
