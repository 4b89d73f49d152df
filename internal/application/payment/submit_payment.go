package payment

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	domain "github.com/unitynest/nest-backend/internal/domain/payment"
)

var upiTransactionPattern = regexp.MustCompile(`^[A-Z0-9]{8,35}$`)

var plans = map[string]bool{
	domain.PlanAnnual:   true,
	domain.PlanLifetime: true,
}

var maxAmount = decimal.NewFromInt(1_000_000)

type SubmitPaymentInput struct {
	UserID           string
	Plan             string
	Amount           string
	UPITransactionID string
}

type SubmitPayment interface {
	Execute(ctx context.Context, in SubmitPaymentInput) (PaymentOutput, error)
}

type submitPayment struct {
	repo domain.Repository
	now  func() time.Time
}

func NewSubmitPayment(repo domain.Repository, now func() time.Time) SubmitPayment {
	if now == nil {
		now = time.Now
	}
	return &submitPayment{repo: repo, now: now}
}

func (uc *submitPayment) Execute(ctx context.Context, in SubmitPaymentInput) (PaymentOutput, error) {
	plan := strings.ToLower(strings.TrimSpace(in.Plan))
	if !plans[plan] {
		return PaymentOutput{}, fmt.Errorf("%w: unknown plan %q", ErrInvalidPayment, in.Plan)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return PaymentOutput{}, fmt.Errorf("%w: amount must be a number", ErrInvalidPayment)
	}
	if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		return PaymentOutput{}, fmt.Errorf("%w: amount must be greater than 0 and at most %s", ErrInvalidPayment, maxAmount)
	}
	if !amount.Equal(amount.Round(2)) {
		return PaymentOutput{}, fmt.Errorf("%w: amount has more than 2 decimal places", ErrInvalidPayment)
	}

	txnID := strings.ToUpper(strings.TrimSpace(in.UPITransactionID))
	if !upiTransactionPattern.MatchString(txnID) {
		return PaymentOutput{}, fmt.Errorf("%w: upi transaction id must be 8-35 letters or digits", ErrInvalidPayment)
	}

	p := domain.Payment{
		ID:               uuid.NewString(),
		UserID:           in.UserID,
		Plan:             plan,
		Amount:           amount,
		UPITransactionID: txnID,
		Status:           domain.StatusPending,
		CreatedAt:        uc.now(),
	}
	if err := uc.repo.Create(ctx, &p); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			return PaymentOutput{}, ErrDuplicateTransaction
		}
		return PaymentOutput{}, fmt.Errorf("%w: %v", ErrSubmitPayment, err)
	}

	return toOutput(p), nil
}
