package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/infrastructure/persistence/mappers"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/db"
	"github.com/reque-io/reque/internal/shared/errors"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.CommentMapper
}

func NewCommentRepository(gormDB *gorm.DB) request.CommentRepository {
	return &CommentRepository{
		db:     gormDB,
		mapper: mappers.NewCommentMapper(),
	}
}

func (r *CommentRepository) Save(ctx context.Context, comment *request.Comment) error {
	model := r.mapper.ToModel(comment)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}

	if err := comment.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set comment ID: %w", err)
	}

	return nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *request.Comment) error {
	model := r.mapper.ToModel(comment)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.CommentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"content":    model.Content,
			"edited_at":  model.EditedAt,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("comment not found")
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, commentID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.CommentModel{}, commentID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("comment not found")
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, commentID uint) (*request.Comment, error) {
	var model models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("comment not found")
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// ListByRequestID returns all comments for a request oldest-first, matching
// reading order in the detail view.
func (r *CommentRepository) ListByRequestID(ctx context.Context, requestID uint) ([]*request.Comment, error) {
	var commentModels []*models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&commentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return r.mapper.ToDomains(commentModels)
}

func (r *CommentRepository) DeleteByRequestID(ctx context.Context, requestID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("request_id = ?", requestID).Delete(&models.CommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}
