package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID        int64          `gorm:"primaryKey"`
	Action    string         `gorm:"size:64;not null;index"`
	SubjectID string         `gorm:"type:uuid;not null;index"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
