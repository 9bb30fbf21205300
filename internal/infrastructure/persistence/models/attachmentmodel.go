package models

import (
	"time"

	"github.com/reque-io/reque/internal/shared/constants"
)

// AttachmentModel stores file metadata. The bytes live in the blob store
// under StorageKey.
type AttachmentModel struct {
	ID          uint   `gorm:"primarykey"`
	RequestID   uint   `gorm:"not null;index"`
	UploaderID  uint   `gorm:"not null"`
	StorageKey  string `gorm:"uniqueIndex;not null;size:255"`
	FileName    string `gorm:"not null;size:255"`
	ContentType string `gorm:"size:100"`
	SizeBytes   int64  `gorm:"not null"`
	Checksum    string `gorm:"size:64"`
	CreatedAt   time.Time
}

func (AttachmentModel) TableName() string {
	return constants.TableAttachments
}
