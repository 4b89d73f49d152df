package user

import (
	"context"
	"fmt"

	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

const (
	defaultBatchLimit = 20
	maxBatchLimit     = 100
)

type BatchHistory interface {
	Recent(ctx context.Context, limit int) ([]domain.BatchRecord, error)
}

type ListImportBatches interface {
	Execute(ctx context.Context, limit int) ([]domain.BatchRecord, error)
}

type listImportBatches struct {
	history BatchHistory
}

func NewListImportBatches(history BatchHistory) ListImportBatches {
	return &listImportBatches{history: history}
}

// Execute clamps limit into 1..100, defaulting to 20.
func (uc *listImportBatches) Execute(ctx context.Context, limit int) ([]domain.BatchRecord, error) {
	switch {
	case limit <= 0:
		limit = defaultBatchLimit
	case limit > maxBatchLimit:
		limit = maxBatchLimit
	}

	records, err := uc.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListImportBatches, err)
	}
	return records, nil
}
