package kafka

// PaymentEvent is published to the payment-events topic whenever a
// transaction reaches a terminal state.
type PaymentEvent struct {
	TransactionID     string  `json:"transaction_id"`
	CheckoutRequestID string  `json:"checkout_request_id"`
	UserID            string  `json:"user_id"`
	Status            string  `json:"status"`
	Amount            float64 `json:"amount"`
	PhoneNumber       string  `json:"phone_number"`
	ReceiptNumber     string  `json:"receipt_number,omitempty"`
	FailureReason     string  `json:"failure_reason,omitempty"`
	ItemCount         int     `json:"item_count"`
}
