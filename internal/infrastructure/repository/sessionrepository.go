package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/infrastructure/persistence/mappers"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/db"
	"github.com/reque-io/reque/internal/shared/errors"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
}

func NewSessionRepository(gormDB *gorm.DB) user.SessionRepository {
	return &SessionRepository{
		db:     gormDB,
		mapper: mappers.NewSessionMapper(),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	model := r.mapper.ToModel(session)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	var model models.SessionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id = ?", sessionID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) GetByUserID(ctx context.Context, userID uint) ([]*user.Session, error) {
	var sessionModels []models.SessionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).
		Order("last_activity_at DESC").
		Find(&sessionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*user.Session, 0, len(sessionModels))
	for i := range sessionModels {
		sessions = append(sessions, r.mapper.ToDomain(&sessionModels[i]))
	}
	return sessions, nil
}

func (r *SessionRepository) GetByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*user.Session, error) {
	var model models.SessionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("refresh_token_hash = ?", refreshTokenHash).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) Update(ctx context.Context, session *user.Session) error {
	model := r.mapper.ToModel(session)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.SessionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"refresh_token_hash": model.RefreshTokenHash,
			"expires_at":         model.ExpiresAt,
			"last_activity_at":   model.LastActivityAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Where("id = ?", sessionID).Delete(&models.SessionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).Delete(&models.SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes all sessions past their expiry. Run periodically by
// the scheduler; an empty sweep is not an error.
func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("expires_at < ?", biztime.NowUTC()).Delete(&models.SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
