package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/mappers"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(tx *domain.Transaction) error {
	txModel := mappers.ToGORMTransaction(tx)
	if err := r.DB.Create(txModel).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *DefaultTransactionRepository) GetTransactionByID(id string) (*domain.Transaction, error) {
	var txModel models.TransactionModel
	if err := r.DB.First(&txModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&txModel), nil
}

func (r *DefaultTransactionRepository) GetTransactionByCheckoutRequestID(checkoutRequestID string) (*domain.Transaction, error) {
	var txModel models.TransactionModel
	if err := r.DB.First(&txModel, "checkout_request_id = ?", checkoutRequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&txModel), nil
}

// CompleteTransaction commits the terminal update, the sale and the purchase
// fan-out as one database transaction. The WHERE status = pending guard makes
// redelivered callbacks a no-op instead of a duplicate fan-out.
func (r *DefaultTransactionRepository) CompleteTransaction(id string, result domain.PaymentResult, sale *domain.Sale, purchases []*domain.Purchase) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TransactionModel{}).
			Where("id = ? AND status = ?", id, domain.StatusPending).
			Updates(map[string]interface{}{
				"status":               domain.StatusCompleted,
				"mpesa_receipt_number": result.ReceiptNumber,
				"transaction_date":     result.TransactionDate,
				"actual_amount":        result.Amount,
				"updated_at":           time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyFinalized
		}

		if err := tx.Create(mappers.ToGORMSale(sale)).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		for _, purchase := range purchases {
			if err := tx.Create(mappers.ToGORMPurchase(purchase)).Error; err != nil {
				return fmt.Errorf("failed to create purchase for material %s: %w", purchase.MaterialID, err)
			}
		}

		return nil
	})
}

func (r *DefaultTransactionRepository) FailTransaction(id string, reason string) error {
	res := r.DB.Model(&models.TransactionModel{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":         domain.StatusFailed,
			"failure_reason": reason,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyFinalized
	}
	return nil
}

func (r *DefaultTransactionRepository) CountPendingOlderThan(age time.Duration) (int64, error) {
	var count int64
	err := r.DB.Model(&models.TransactionModel{}).
		Where("status = ? AND created_at < ?", domain.StatusPending, time.Now().Add(-age)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count stale pending transactions: %w", err)
	}
	return count, nil
}
