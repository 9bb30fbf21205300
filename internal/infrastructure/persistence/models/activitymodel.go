package models

import (
	"time"

	"github.com/reque-io/reque/internal/shared/constants"
)

// ActivityModel is one append-only audit row. Rows are written once in the
// same transaction as the change they record, so there is no UpdatedAt.
type ActivityModel struct {
	ID           uint    `gorm:"primarykey"`
	RequestID    uint    `gorm:"not null;index"`
	ActorID      uint    `gorm:"not null"`
	ActivityType string  `gorm:"not null;size:50;column:activity_type"`
	Field        string  `gorm:"size:50"`
	OldValue     *string `gorm:"type:text"`
	NewValue     *string `gorm:"type:text"`
	CreatedAt    time.Time
}

func (ActivityModel) TableName() string {
	return constants.TableActivities
}
