package models

import (
	"time"

	"github.com/reque-io/reque/internal/shared/constants"
)

// CommentModel stores request comments. EditedAt stays NULL until the first
// edit.
type CommentModel struct {
	ID        uint   `gorm:"primarykey"`
	RequestID uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Content   string `gorm:"not null;type:text"`
	EditedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CommentModel) TableName() string {
	return constants.TableComments
}
