package repository

import (
	"fmt"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/mappers"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPurchaseRepository struct {
	DB *gorm.DB
}

func NewDefaultPurchaseRepository(db *gorm.DB) *DefaultPurchaseRepository {
	return &DefaultPurchaseRepository{DB: db}
}

func (r *DefaultPurchaseRepository) GetPurchasesByUserID(userID string) ([]*domain.Purchase, error) {
	var purchaseModels []models.PurchaseModel
	if err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&purchaseModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find purchases for user: %w", err)
	}

	purchases := make([]*domain.Purchase, len(purchaseModels))
	for i, purchaseModel := range purchaseModels {
		purchases[i] = mappers.ToDomainPurchase(&purchaseModel)
	}
	return purchases, nil
}

func (r *DefaultPurchaseRepository) CountPurchasesByTransactionID(transactionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.PurchaseModel{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}
