package mappers

import (
	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/models"
)

func ToDomainPurchase(model *models.PurchaseModel) *domain.Purchase {
	return &domain.Purchase{
		ID:                 model.ID,
		UserID:             model.UserID,
		MaterialID:         model.MaterialID,
		Title:              model.Title,
		Subject:            model.Subject,
		Level:              model.Level,
		Year:               model.Year,
		Price:              model.Price,
		DownloadKey:        model.DownloadKey,
		FileSize:           model.FileSize,
		Pages:              model.Pages,
		TransactionID:      model.TransactionID,
		MpesaReceiptNumber: model.MpesaReceiptNumber,
		PurchaseDate:       model.PurchaseDate,
		CreatedAt:          model.CreatedAt,
	}
}

func ToGORMPurchase(purchase *domain.Purchase) *models.PurchaseModel {
	return &models.PurchaseModel{
		ID:                 purchase.ID,
		UserID:             purchase.UserID,
		MaterialID:         purchase.MaterialID,
		Title:              purchase.Title,
		Subject:            purchase.Subject,
		Level:              purchase.Level,
		Year:               purchase.Year,
		Price:              purchase.Price,
		DownloadKey:        purchase.DownloadKey,
		FileSize:           purchase.FileSize,
		Pages:              purchase.Pages,
		TransactionID:      purchase.TransactionID,
		MpesaReceiptNumber: purchase.MpesaReceiptNumber,
		PurchaseDate:       purchase.PurchaseDate,
		CreatedAt:          purchase.CreatedAt,
	}
}
