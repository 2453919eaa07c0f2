package models

import (
	"time"

	"github.com/somaprep/materials-service/internal/domain"
)

type TransactionModel struct {
	ID                 string                   `gorm:"primaryKey;type:uuid"`
	CheckoutRequestID  string                   `gorm:"uniqueIndex:idx_checkout_request"`
	MerchantRequestID  string
	PhoneNumber        string
	Amount             float64
	CartItemsJSON      string                   `gorm:"type:jsonb"`
	UserID             string                   `gorm:"index:idx_tx_user"`
	Status             domain.TransactionStatus `gorm:"index:idx_tx_status_created"`
	MpesaReceiptNumber string
	TransactionDate    string
	ActualAmount       float64
	FailureReason      string
	CreatedAt          time.Time `gorm:"index:idx_tx_status_created"`
	UpdatedAt          time.Time
}
