package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

const (
	PlanAnnual   = "annual"
	PlanLifetime = "lifetime"
)

// Payment is a manually reported UPI transfer awaiting admin review. The
// platform never talks to a payment gateway.
type Payment struct {
	ID               string
	UserID           string
	Plan             string
	Amount           decimal.Decimal
	UPITransactionID string
	Status           Status
	ReviewedBy       string
	ReviewedAt       *time.Time
	Note             string
	CreatedAt        time.Time
}

// Review moves a pending payment to a terminal status.
func (p *Payment) Review(status Status, reviewer, note string, at time.Time) error {
	if p.Status != StatusPending {
		return ErrPaymentAlreadyReviewed
	}
	p.Status = status
	p.ReviewedBy = reviewer
	p.Note = note
	p.ReviewedAt = &at
	return nil
}

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, status Status) ([]Payment, error)
	// SaveReview persists a reviewed payment only if it is still pending.
	SaveReview(ctx context.Context, p *Payment) error
}
