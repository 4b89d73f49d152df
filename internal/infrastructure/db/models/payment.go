package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const PaymentsTransactionIndex = "idx_payments_upi_transaction_id"

type Payment struct {
	ID               string          `gorm:"type:uuid;primaryKey"`
	UserID           string          `gorm:"type:uuid;not null;index"`
	User             *User           `gorm:"constraint:OnDelete:CASCADE"`
	Plan             string          `gorm:"size:32;not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	UPITransactionID string          `gorm:"column:upi_transaction_id;size:64;not null;uniqueIndex:idx_payments_upi_transaction_id"`
	Status           string          `gorm:"size:16;not null;index"`
	ReviewedBy       *string         `gorm:"size:64"`
	ReviewedAt       *time.Time
	Note             *string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Payment) TableName() string {
	return "payments"
}
