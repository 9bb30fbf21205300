package mappers

import (
	"fmt"

	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/mapper"
)

// UserMapper converts between the user aggregate and its persistence model.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) (*models.UserModel, error)
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create email value object: %w", err)
	}

	name, err := vo.NewName(model.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create name value object: %w", err)
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create status value object: %w", err)
	}

	role := authorization.ParseUserRole(model.Role)

	authData := &user.AuthData{
		PasswordHash:               model.PasswordHash,
		EmailVerifiedAt:            model.EmailVerifiedAt,
		EmailVerificationTokenHash: model.EmailVerificationTokenHash,
		EmailVerificationExpiresAt: model.EmailVerificationExpiresAt,
		PasswordResetTokenHash:     model.PasswordResetTokenHash,
		PasswordResetExpiresAt:     model.PasswordResetExpiresAt,
		LastPasswordChangeAt:       model.LastPasswordChangeAt,
		FailedLoginAttempts:        model.FailedLoginAttempts,
		LockedUntil:                model.LockedUntil,
		LastLoginAt:                model.LastLoginAt,
	}

	entity, err := user.ReconstructUserWithAuth(
		model.ID,
		model.UUID,
		email,
		name,
		model.AvatarURL,
		role,
		status,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
		authData,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}

	return entity, nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}

	authData := entity.GetAuthData()

	return &models.UserModel{
		ID:                         entity.ID(),
		UUID:                       entity.UUID(),
		Email:                      entity.Email().String(),
		Name:                       entity.Name().String(),
		AvatarURL:                  entity.AvatarURL(),
		Role:                       entity.Role().String(),
		Status:                     entity.Status().String(),
		Version:                    entity.Version(),
		PasswordHash:               authData.PasswordHash,
		EmailVerifiedAt:            authData.EmailVerifiedAt,
		EmailVerificationTokenHash: authData.EmailVerificationTokenHash,
		EmailVerificationExpiresAt: authData.EmailVerificationExpiresAt,
		PasswordResetTokenHash:     authData.PasswordResetTokenHash,
		PasswordResetExpiresAt:     authData.PasswordResetExpiresAt,
		LastPasswordChangeAt:       authData.LastPasswordChangeAt,
		FailedLoginAttempts:        authData.FailedLoginAttempts,
		LockedUntil:                authData.LockedUntil,
		LastLoginAt:                authData.LastLoginAt,
		CreatedAt:                  entity.CreatedAt(),
		UpdatedAt:                  entity.UpdatedAt(),
	}, nil
}

func (m *UserMapperImpl) ToEntities(modelList []*models.UserModel) ([]*user.User, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.UserModel) uint { return model.ID })
}
