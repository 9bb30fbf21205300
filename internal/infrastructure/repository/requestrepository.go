package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reque-io/reque/internal/domain/request"
	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/infrastructure/persistence/mappers"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/db"
	"github.com/reque-io/reque/internal/shared/errors"
)

// allowedRequestOrderByFields whitelists ORDER BY columns so user-supplied
// sort keys never reach SQL unchecked.
var allowedRequestOrderByFields = map[string]string{
	"id":         "id",
	"number":     "number",
	"title":      "title",
	"status":     "status",
	"priority":   "priority",
	"due_date":   "due_date",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type RequestRepository struct {
	db     *gorm.DB
	mapper mappers.RequestMapper
}

func NewRequestRepository(gormDB *gorm.DB) request.Repository {
	return &RequestRepository{
		db:     gormDB,
		mapper: mappers.NewRequestMapper(),
	}
}

func (r *RequestRepository) Save(ctx context.Context, req *request.Request) error {
	model := r.mapper.ToModel(req)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("request number already exists")
		}
		return fmt.Errorf("failed to save request: %w", err)
	}

	if err := req.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set request ID: %w", err)
	}
	req.SyncVersion()

	return nil
}

// Update writes the full column set guarded by the version the aggregate was
// loaded at, so a concurrent writer cannot be silently overwritten.
func (r *RequestRepository) Update(ctx context.Context, req *request.Request) error {
	model := r.mapper.ToModel(req)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.RequestModel{}).
		Where("id = ? AND version = ?", model.ID, req.BaseVersion()).
		Updates(map[string]interface{}{
			"title":        model.Title,
			"description":  model.Description,
			"status":       model.Status,
			"priority":     model.Priority,
			"due_date":     model.DueDate,
			"assignee_id":  model.AssigneeID,
			"version":      model.Version,
			"completed_at": model.CompletedAt,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update request: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.classifyMissedUpdate(ctx, model.ID)
	}
	req.SyncVersion()

	return nil
}

func (r *RequestRepository) Delete(ctx context.Context, requestID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.RequestModel{}, requestID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("request not found")
	}
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, requestID uint) (*request.Request, error) {
	var model models.RequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("request not found")
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *RequestRepository) GetByNumber(ctx context.Context, number string) (*request.Request, error) {
	var model models.RequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("request not found")
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *RequestRepository) List(ctx context.Context, filter request.Filter) ([]*request.Request, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := r.applyFilter(tx.Model(&models.RequestModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	query = query.Order(filter.OrderClause(allowedRequestOrderByFields, "created_at DESC")).
		Offset(filter.Offset()).
		Limit(filter.Limit())

	var requestModels []*models.RequestModel
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}

	entities, err := r.mapper.ToDomains(requestModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map requests: %w", err)
	}

	return entities, total, nil
}

// GetStats aggregates request counts grouped by status and priority. Zero
// buckets are filled in so every valid value appears in the result.
func (r *RequestRepository) GetStats(ctx context.Context, filter request.StatsFilter) (*request.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	scoped := func() *gorm.DB {
		q := tx.Model(&models.RequestModel{})
		if filter.ViewerID != nil {
			q = q.Where("creator_id = ? OR assignee_id = ?", *filter.ViewerID, *filter.ViewerID)
		}
		return q
	}

	stats := &request.Stats{
		ByStatus:   make(map[vo.Status]int64, len(vo.AllStatuses())),
		ByPriority: make(map[vo.Priority]int64, len(vo.AllPriorities())),
	}
	for _, s := range vo.AllStatuses() {
		stats.ByStatus[s] = 0
	}
	for _, p := range vo.AllPriorities() {
		stats.ByPriority[p] = 0
	}

	if err := scoped().Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var statusBuckets []bucket
	if err := scoped().Select("status AS `key`, COUNT(*) AS count").
		Group("status").
		Scan(&statusBuckets).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate by status: %w", err)
	}
	for _, b := range statusBuckets {
		status, err := vo.NewStatus(b.Key)
		if err != nil {
			continue
		}
		stats.ByStatus[status] = b.Count
	}

	var priorityBuckets []bucket
	if err := scoped().Select("priority AS `key`, COUNT(*) AS count").
		Group("priority").
		Scan(&priorityBuckets).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate by priority: %w", err)
	}
	for _, b := range priorityBuckets {
		priority, err := vo.NewPriority(b.Key)
		if err != nil {
			continue
		}
		stats.ByPriority[priority] = b.Count
	}

	if err := r.whereOverdue(scoped(), true).Count(&stats.Overdue).Error; err != nil {
		return nil, fmt.Errorf("failed to count overdue requests: %w", err)
	}

	return stats, nil
}

func (r *RequestRepository) applyFilter(query *gorm.DB, filter request.Filter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ViewerID != nil {
		query = query.Where("creator_id = ? OR assignee_id = ?", *filter.ViewerID, *filter.ViewerID)
	}
	if filter.Overdue != nil {
		query = r.whereOverdue(query, *filter.Overdue)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date IS NOT NULL AND due_date <= ?", *filter.DueBefore)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR title LIKE ? OR description LIKE ?", pattern, pattern, pattern)
	}
	return query
}

// whereOverdue expresses the domain overdue rule in SQL: a due date in the
// past on a request that has not reached a terminal status.
func (r *RequestRepository) whereOverdue(query *gorm.DB, overdue bool) *gorm.DB {
	now := biztime.NowUTC()
	terminal := []string{vo.StatusCompleted.String(), vo.StatusRejected.String()}

	if overdue {
		return query.Where("due_date IS NOT NULL AND due_date < ? AND status NOT IN ?", now, terminal)
	}
	return query.Where("due_date IS NULL OR due_date >= ? OR status IN ?", now, terminal)
}

func (r *RequestRepository) classifyMissedUpdate(ctx context.Context, id uint) error {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.RequestModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	if count == 0 {
		return errors.NewNotFoundError("request not found")
	}
	return errors.NewConflictError("request was modified concurrently")
}
