package payment

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/unitynest/nest-backend/internal/domain/payment"
)

type ListPaymentsInput struct {
	// Empty lists every status.
	Status string
}

type ListPayments interface {
	Execute(ctx context.Context, in ListPaymentsInput) ([]PaymentOutput, error)
}

type listPayments struct {
	repo domain.Repository
}

func NewListPayments(repo domain.Repository) ListPayments {
	return &listPayments{repo: repo}
}

func (uc *listPayments) Execute(ctx context.Context, in ListPaymentsInput) ([]PaymentOutput, error) {
	status := domain.Status(strings.ToLower(strings.TrimSpace(in.Status)))
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidPayment, in.Status)
	}

	payments, err := uc.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListPayments, err)
	}

	out := make([]PaymentOutput, 0, len(payments))
	for _, p := range payments {
		out = append(out, toOutput(p))
	}
	return out, nil
}
