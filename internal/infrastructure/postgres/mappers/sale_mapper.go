package mappers

import (
	"encoding/json"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/models"
)

func ToDomainSale(model *models.SaleModel) *domain.Sale {
	var cartItems []domain.CartItem
	if model.CartItemsJSON != "" {
		_ = json.Unmarshal([]byte(model.CartItemsJSON), &cartItems)
	}

	return &domain.Sale{
		ID:                 model.ID,
		TransactionID:      model.TransactionID,
		MpesaReceiptNumber: model.MpesaReceiptNumber,
		CustomerPhone:      model.CustomerPhone,
		Amount:             model.Amount,
		CartItems:          cartItems,
		TransactionDate:    model.TransactionDate,
		Status:             model.Status,
		CreatedAt:          model.CreatedAt,
	}
}

func ToGORMSale(sale *domain.Sale) *models.SaleModel {
	cartItemsJSON, _ := json.Marshal(sale.CartItems)

	return &models.SaleModel{
		ID:                 sale.ID,
		TransactionID:      sale.TransactionID,
		MpesaReceiptNumber: sale.MpesaReceiptNumber,
		CustomerPhone:      sale.CustomerPhone,
		Amount:             sale.Amount,
		CartItemsJSON:      string(cartItemsJSON),
		TransactionDate:    sale.TransactionDate,
		Status:             sale.Status,
		CreatedAt:          sale.CreatedAt,
	}
}
