package models

import (
	"time"

	"github.com/reque-io/reque/internal/shared/constants"
)

// RequestSequenceModel holds the per-day counter behind request numbers.
// One row per date stamp; the counter is advanced under a row lock.
type RequestSequenceModel struct {
	DateStamp string `gorm:"primarykey;size:8"`
	Counter   int    `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (RequestSequenceModel) TableName() string {
	return constants.TableRequestSequences
}
