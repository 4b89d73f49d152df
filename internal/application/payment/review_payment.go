package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	domain "github.com/unitynest/nest-backend/internal/domain/payment"
)

type ReviewPaymentInput struct {
	ID       string
	Reviewer string
	Approve  bool
	Note     string
}

type ReviewPayment interface {
	Execute(ctx context.Context, in ReviewPaymentInput) (PaymentOutput, error)
}

type reviewPayment struct {
	repo domain.Repository
	now  func() time.Time
}

func NewReviewPayment(repo domain.Repository, now func() time.Time) ReviewPayment {
	if now == nil {
		now = time.Now
	}
	return &reviewPayment{repo: repo, now: now}
}

func (uc *reviewPayment) Execute(ctx context.Context, in ReviewPaymentInput) (PaymentOutput, error) {
	if _, err := uuid.Parse(in.ID); err != nil {
		return PaymentOutput{}, ErrInvalidPaymentID
	}

	p, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return PaymentOutput{}, ErrPaymentNotFound
		}
		return PaymentOutput{}, fmt.Errorf("%w: %v", ErrReviewPayment, err)
	}

	status := domain.StatusRejected
	if in.Approve {
		status = domain.StatusVerified
	}
	if err := p.Review(status, in.Reviewer, strings.TrimSpace(in.Note), uc.now()); err != nil {
		return PaymentOutput{}, ErrPaymentAlreadyReviewed
	}

	if err := uc.repo.SaveReview(ctx, p); err != nil {
		if errors.Is(err, domain.ErrPaymentAlreadyReviewed) {
			return PaymentOutput{}, ErrPaymentAlreadyReviewed
		}
		return PaymentOutput{}, fmt.Errorf("%w: %v", ErrReviewPayment, err)
	}

	log.Printf("payment %s marked %s by %s", p.ID, p.Status, in.Reviewer)
	return toOutput(*p), nil
}
