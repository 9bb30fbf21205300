// Package services holds infrastructure services that sit behind domain
// interfaces but need database access.
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/db"
)

// RequestNumberGenerator issues REQ-YYYYMMDD-NNNN numbers from a per-day
// sequence row. The upsert-then-read runs in a transaction so concurrent
// generators serialize on the row and never hand out the same number, also
// across processes.
type RequestNumberGenerator struct {
	db *gorm.DB
}

func NewRequestNumberGenerator(gormDB *gorm.DB) *RequestNumberGenerator {
	return &RequestNumberGenerator{db: gormDB}
}

func (g *RequestNumberGenerator) Generate(ctx context.Context) (string, error) {
	dateStamp := biztime.DateStamp(biztime.NowUTC())

	var counter int
	err := db.GetTxFromContext(ctx, g.db).Transaction(func(tx *gorm.DB) error {
		row := models.RequestSequenceModel{
			DateStamp: dateStamp,
			Counter:   1,
			UpdatedAt: biztime.NowUTC(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date_stamp"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"counter":    gorm.Expr("counter + 1"),
				"updated_at": biztime.NowUTC(),
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to advance request sequence: %w", err)
		}

		var current models.RequestSequenceModel
		if err := tx.Where("date_stamp = ?", dateStamp).First(&current).Error; err != nil {
			return fmt.Errorf("failed to read request sequence: %w", err)
		}
		counter = current.Counter
		return nil
	})
	if err != nil {
		return "", err
	}

	return request.FormatNumber(dateStamp, counter), nil
}
