package domain

import "time"

type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleRefunded  SaleStatus = "refunded"
	SaleFlagged   SaleStatus = "flagged"
)

// Sale is the denormalized reporting record, one per completed transaction.
type Sale struct {
	ID                 string
	TransactionID      string
	MpesaReceiptNumber string
	CustomerPhone      string
	Amount             float64
	CartItems          []CartItem
	TransactionDate    time.Time
	Status             SaleStatus
	CreatedAt          time.Time
}

type SaleFilters struct {
	DateFrom time.Time
	DateTo   time.Time
}

type SaleStatistics struct {
	TotalSales   int64
	TotalRevenue float64
	ItemsSold    int64
	BySubject    map[string]float64
}
