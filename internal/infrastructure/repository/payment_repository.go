package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	domain "github.com/unitynest/nest-backend/internal/domain/payment"
	"github.com/unitynest/nest-backend/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	row := toPaymentModel(p)
	if err := r.db.WithContext(ctx).Omit("User").Create(&row).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == models.PaymentsTransactionIndex {
			return domain.ErrDuplicateTransaction
		}
		return fmt.Errorf("create payment: %w", err)
	}
	p.CreatedAt = row.CreatedAt
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var row models.Payment
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p := toPaymentDomain(row)
	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context, status domain.Status) ([]domain.Payment, error) {
	var rows []models.Payment
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	out := make([]domain.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPaymentDomain(row))
	}
	return out, nil
}

func (r *PaymentRepository) SaveReview(ctx context.Context, p *domain.Payment) error {
	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", p.ID, string(domain.StatusPending)).
		Updates(map[string]any{
			"status":      string(p.Status),
			"reviewed_by": nullableText(p.ReviewedBy),
			"reviewed_at": p.ReviewedAt,
			"note":        nullableText(p.Note),
		})
	if res.Error != nil {
		return fmt.Errorf("save payment review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentAlreadyReviewed
	}
	return nil
}

func toPaymentModel(p *domain.Payment) models.Payment {
	return models.Payment{
		ID:               p.ID,
		UserID:           p.UserID,
		Plan:             p.Plan,
		Amount:           p.Amount,
		UPITransactionID: p.UPITransactionID,
		Status:           string(p.Status),
		ReviewedBy:       nullableText(p.ReviewedBy),
		ReviewedAt:       p.ReviewedAt,
		Note:             nullableText(p.Note),
		CreatedAt:        p.CreatedAt,
	}
}

func toPaymentDomain(row models.Payment) domain.Payment {
	return domain.Payment{
		ID:               row.ID,
		UserID:           row.UserID,
		Plan:             row.Plan,
		Amount:           row.Amount,
		UPITransactionID: row.UPITransactionID,
		Status:           domain.Status(row.Status),
		ReviewedBy:       deref(row.ReviewedBy),
		ReviewedAt:       row.ReviewedAt,
		Note:             deref(row.Note),
		CreatedAt:        row.CreatedAt,
	}
}
