package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/infrastructure/persistence/mappers"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/db"
	"github.com/reque-io/reque/internal/shared/errors"
)

type OAuthAccountRepository struct {
	db     *gorm.DB
	mapper mappers.OAuthAccountMapper
}

func NewOAuthAccountRepository(gormDB *gorm.DB) user.OAuthAccountRepository {
	return &OAuthAccountRepository{
		db:     gormDB,
		mapper: mappers.NewOAuthAccountMapper(),
	}
}

func (r *OAuthAccountRepository) Create(ctx context.Context, account *user.OAuthAccount) error {
	model, err := r.mapper.ToModel(account)
	if err != nil {
		return fmt.Errorf("failed to map oauth account: %w", err)
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("provider identity already linked")
		}
		return fmt.Errorf("failed to create oauth account: %w", err)
	}

	account.ID = model.ID
	return nil
}

func (r *OAuthAccountRepository) GetByProviderAndUserID(ctx context.Context, provider, providerUserID string) (*user.OAuthAccount, error) {
	var model models.OAuthAccountModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("oauth account not found")
		}
		return nil, fmt.Errorf("failed to get oauth account: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *OAuthAccountRepository) GetByUserID(ctx context.Context, userID uint) ([]*user.OAuthAccount, error) {
	var accountModels []*models.OAuthAccountModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).
		Order("provider ASC").
		Find(&accountModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get oauth accounts: %w", err)
	}

	return r.mapper.ToDomains(accountModels)
}

func (r *OAuthAccountRepository) Update(ctx context.Context, account *user.OAuthAccount) error {
	model, err := r.mapper.ToModel(account)
	if err != nil {
		return fmt.Errorf("failed to map oauth account: %w", err)
	}
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.OAuthAccountModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"provider_email":      model.ProviderEmail,
			"provider_username":   model.ProviderUsername,
			"provider_avatar_url": model.ProviderAvatarURL,
			"profile_data":        model.ProfileData,
			"last_login_at":       model.LastLoginAt,
			"login_count":         model.LoginCount,
			"updated_at":          model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update oauth account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("oauth account not found")
	}
	return nil
}

func (r *OAuthAccountRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.OAuthAccountModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete oauth account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("oauth account not found")
	}
	return nil
}
