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

type ImportBatchRepository struct {
	db *gorm.DB
}

func NewImportBatchRepository(db *gorm.DB) *ImportBatchRepository {
	return &ImportBatchRepository{db: db}
}

func (r *ImportBatchRepository) RecordBatch(ctx context.Context, record domain.BatchRecord) error {
	errs := record.Summary.Errors
	if errs == nil {
		errs = []domain.RowError{}
	}
	payload, err := json.Marshal(errs)
	if err != nil {
		return fmt.Errorf("encode batch errors: %w", err)
	}

	batch := models.ImportBatch{
		ID:         record.ID,
		Filename:   record.Filename,
		UploadedBy: record.UploadedBy,
		Total:      record.Summary.Total,
		Successful: record.Summary.Successful,
		Failed:     record.Summary.Failed,
		Duplicates: record.Summary.Duplicates,
		Errors:     datatypes.JSON(payload),
		StartedAt:  record.StartedAt,
		FinishedAt: record.FinishedAt,
	}
	if err := r.db.WithContext(ctx).Create(&batch).Error; err != nil {
		return fmt.Errorf("create import batch: %w", err)
	}
	return nil
}

// Recent returns the latest batches, newest first.
func (r *ImportBatchRepository) Recent(ctx context.Context, limit int) ([]domain.BatchRecord, error) {
	var rows []models.ImportBatch
	if err := r.db.WithContext(ctx).Order("finished_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list import batches: %w", err)
	}

	out := make([]domain.BatchRecord, 0, len(rows))
	for _, row := range rows {
		errs := []domain.RowError{}
		if len(row.Errors) > 0 {
			if err := json.Unmarshal(row.Errors, &errs); err != nil {
				return nil, fmt.Errorf("decode batch %s errors: %w", row.ID, err)
			}
		}
		out = append(out, domain.BatchRecord{
			ID:         row.ID,
			Filename:   row.Filename,
			UploadedBy: row.UploadedBy,
			Summary: domain.BatchSummary{
				Total:      row.Total,
				Successful: row.Successful,
				Failed:     row.Failed,
				Duplicates: row.Duplicates,
				Errors:     errs,
			},
			StartedAt:  row.StartedAt,
			FinishedAt: row.FinishedAt,
		})
	}
	return out, nil
}
