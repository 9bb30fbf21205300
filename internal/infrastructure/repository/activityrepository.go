package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/infrastructure/persistence/mappers"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/db"
	"github.com/reque-io/reque/internal/shared/query"
)

// ActivityRepository is append-only. Rows are written in the same transaction
// as the change they describe and never updated.
type ActivityRepository struct {
	db     *gorm.DB
	mapper mappers.ActivityMapper
}

func NewActivityRepository(gormDB *gorm.DB) request.ActivityRepository {
	return &ActivityRepository{
		db:     gormDB,
		mapper: mappers.NewActivityMapper(),
	}
}

func (r *ActivityRepository) Save(ctx context.Context, activity *request.Activity) error {
	model := r.mapper.ToModel(activity)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}

	if err := activity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set activity ID: %w", err)
	}

	return nil
}

// ListByRequestID returns the audit trail newest-first with an id tiebreak so
// records written in the same instant keep a stable order.
func (r *ActivityRepository) ListByRequestID(ctx context.Context, requestID uint, page query.PageFilter) ([]*request.Activity, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.ActivityModel{}).Where("request_id = ?", requestID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	var activityModels []*models.ActivityModel
	if err := q.Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&activityModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}

	entities, err := r.mapper.ToDomains(activityModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map activities: %w", err)
	}

	return entities, total, nil
}

func (r *ActivityRepository) DeleteByRequestID(ctx context.Context, requestID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("request_id = ?", requestID).Delete(&models.ActivityModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}
	return nil
}
