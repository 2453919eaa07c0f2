package domain

import "time"

// Purchase is the per-item entitlement record fanned out from one completed
// transaction. Append-only; the profile/download surface reads these.
type Purchase struct {
	ID                 string
	UserID             string
	MaterialID         string
	Title              string
	Subject            string
	Level              string
	Year               string
	Price              float64
	DownloadKey        string
	FileSize           string
	Pages              int
	TransactionID      string
	MpesaReceiptNumber string
	PurchaseDate       time.Time
	CreatedAt          time.Time
}
