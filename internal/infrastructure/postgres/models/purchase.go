package models

import "time"

type PurchaseModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	UserID             string `gorm:"index:idx_purchase_user"`
	MaterialID         string `gorm:"index:idx_purchase_material"`
	Title              string
	Subject            string
	Level              string
	Year               string
	Price              float64
	DownloadKey        string
	FileSize           string
	Pages              int
	TransactionID      string `gorm:"type:uuid;index:idx_purchase_transaction"`
	MpesaReceiptNumber string
	PurchaseDate       time.Time
	CreatedAt          time.Time
}
