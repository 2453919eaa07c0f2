package domain

import "time"

type TransactionRepository interface {
	CreateTransaction(tx *Transaction) error
	GetTransactionByID(id string) (*Transaction, error)
	GetTransactionByCheckoutRequestID(checkoutRequestID string) (*Transaction, error)

	// CompleteTransaction applies the pending->completed update and commits
	// the sale plus the per-item purchase fan-out in one storage transaction.
	// Either everything lands or nothing does.
	CompleteTransaction(id string, result PaymentResult, sale *Sale, purchases []*Purchase) error

	FailTransaction(id string, reason string) error

	CountPendingOlderThan(age time.Duration) (int64, error)
}
