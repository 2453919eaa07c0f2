package domain

import "time"

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Terminal reports whether no further transition is defined for the status.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CartItem is the line-item snapshot copied into a transaction at checkout
// time. The live cart is discarded once checkout begins, so this snapshot is
// the only durable record of the cart contents.
type CartItem struct {
	MaterialID  string  `json:"materialId"`
	Title       string  `json:"title"`
	Subject     string  `json:"subject"`
	Level       string  `json:"level"`
	Year        string  `json:"year"`
	Price       float64 `json:"price"`
	DownloadKey string  `json:"downloadKey"`
	FileSize    string  `json:"fileSize"`
	Pages       int     `json:"pages"`
}

// Transaction is one checkout attempt. Status is monotonic
// pending -> {completed|failed} and never reverses.
type Transaction struct {
	ID                 string
	CheckoutRequestID  string
	MerchantRequestID  string
	PhoneNumber        string
	Amount             float64
	CartItems          []CartItem
	UserID             string
	Status             TransactionStatus
	MpesaReceiptNumber string
	TransactionDate    string
	ActualAmount       float64
	FailureReason      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PaymentResult carries the provider-confirmed fields extracted from a
// successful callback's metadata items.
type PaymentResult struct {
	ReceiptNumber   string
	TransactionDate string
	Amount          float64
}
