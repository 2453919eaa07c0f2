package models

import (
	"time"

	"github.com/somaprep/materials-service/internal/domain"
)

type SaleModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	TransactionID      string `gorm:"type:uuid;index:idx_sale_transaction"`
	MpesaReceiptNumber string
	CustomerPhone      string `gorm:"index:idx_sale_phone"`
	Amount             float64
	CartItemsJSON      string            `gorm:"type:jsonb"`
	TransactionDate    time.Time
	Status             domain.SaleStatus
	CreatedAt          time.Time `gorm:"index:idx_sale_created"`
}
