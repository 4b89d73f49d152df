package payment

import (
	"time"

	domain "github.com/unitynest/nest-backend/internal/domain/payment"
)

type PaymentOutput struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Plan             string     `json:"plan"`
	Amount           string     `json:"amount"`
	UPITransactionID string     `json:"upi_transaction_id"`
	Status           string     `json:"status"`
	ReviewedBy       string     `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	Note             string     `json:"note,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toOutput(p domain.Payment) PaymentOutput {
	return PaymentOutput{
		ID:               p.ID,
		UserID:           p.UserID,
		Plan:             p.Plan,
		Amount:           p.Amount.StringFixed(2),
		UPITransactionID: p.UPITransactionID,
		Status:           string(p.Status),
		ReviewedBy:       p.ReviewedBy,
		ReviewedAt:       p.ReviewedAt,
		Note:             p.Note,
		CreatedAt:        p.CreatedAt,
	}
}
