package models

import (
	"time"

	"gorm.io/datatypes"
)

type ImportBatch struct {
	ID         string         `gorm:"type:uuid;primaryKey"`
	Filename   string         `gorm:"type:text;not null"`
	UploadedBy string         `gorm:"size:255;not null;default:''"`
	Total      int            `gorm:"not null;default:0"`
	Successful int            `gorm:"not null;default:0"`
	Failed     int            `gorm:"not null;default:0"`
	Duplicates int            `gorm:"not null;default:0"`
	Errors     datatypes.JSON `gorm:"type:jsonb;not null"`
	StartedAt  time.Time      `gorm:"not null"`
	FinishedAt time.Time      `gorm:"not null;index"`
	CreatedAt  time.Time
}

func (ImportBatch) TableName() string {
	return "import_batches"
}
