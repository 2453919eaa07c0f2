package domain

type PurchaseRepository interface {
	GetPurchasesByUserID(userID string) ([]*Purchase, error)
	CountPurchasesByTransactionID(transactionID string) (int64, error)
}
