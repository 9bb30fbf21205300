package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/reque-io/reque/internal/shared/constants"
)

// RequestModel is the persistence shape of the request aggregate. Deletion is
// hard: the delete usecase removes comments, activities and attachments in
// the same transaction, so no soft-delete column is needed.
type RequestModel struct {
	ID          uint   `gorm:"primarykey"`
	Number      string `gorm:"uniqueIndex;not null;size:32"`
	Title       string `gorm:"not null;size:200"`
	Description string `gorm:"not null;type:text"`
	Status      string `gorm:"not null;size:20;index"`
	Priority    string `gorm:"not null;size:10;index"`
	DueDate     *time.Time
	CreatorID   uint  `gorm:"not null;index"`
	AssigneeID  *uint `gorm:"index"`
	Version     int   `gorm:"not null;default:1"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (RequestModel) TableName() string {
	return constants.TableRequests
}

func (r *RequestModel) BeforeCreate(tx *gorm.DB) error {
	if r.Version == 0 {
		r.Version = 1
	}
	return nil
}
