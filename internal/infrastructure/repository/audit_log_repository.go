package repository

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/unitynest/nest-backend/internal/domain/user"
	"github.com/unitynest/nest-backend/internal/infrastructure/db/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) HandleUserCreated(ctx context.Context, event domain.UserCreated) error {
	details, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}

	entry := models.AuditLog{
		Action:    domain.EventUserCreated,
		SubjectID: event.UserID,
		Details:   datatypes.JSON(details),
		CreatedAt: event.OccurredAt,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
