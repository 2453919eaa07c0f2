package usecase

import (
	"github.com/somaprep/materials-service/internal/domain"
)

type PurchaseUsecase interface {
	GetPurchasesByUserID(userID string) ([]*domain.Purchase, error)
	CountPurchasesByTransactionID(transactionID string) (int64, error)
}

type DefaultPurchaseUsecase struct {
	PurchaseRepo domain.PurchaseRepository
}

func NewDefaultPurchaseUsecase(purchaseRepo domain.PurchaseRepository) *DefaultPurchaseUsecase {
	return &DefaultPurchaseUsecase{PurchaseRepo: purchaseRepo}
}

func (uc *DefaultPurchaseUsecase) GetPurchasesByUserID(userID string) ([]*domain.Purchase, error) {
	if userID == "" {
		return nil, domain.ErrValidation
	}
	return uc.PurchaseRepo.GetPurchasesByUserID(userID)
}

func (uc *DefaultPurchaseUsecase) CountPurchasesByTransactionID(transactionID string) (int64, error) {
	return uc.PurchaseRepo.CountPurchasesByTransactionID(transactionID)
}
