package mappers

import (
	"encoding/json"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	var cartItems []domain.CartItem
	if model.CartItemsJSON != "" {
		_ = json.Unmarshal([]byte(model.CartItemsJSON), &cartItems)
	}

	return &domain.Transaction{
		ID:                 model.ID,
		CheckoutRequestID:  model.CheckoutRequestID,
		MerchantRequestID:  model.MerchantRequestID,
		PhoneNumber:        model.PhoneNumber,
		Amount:             model.Amount,
		CartItems:          cartItems,
		UserID:             model.UserID,
		Status:             model.Status,
		MpesaReceiptNumber: model.MpesaReceiptNumber,
		TransactionDate:    model.TransactionDate,
		ActualAmount:       model.ActualAmount,
		FailureReason:      model.FailureReason,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func ToGORMTransaction(tx *domain.Transaction) *models.TransactionModel {
	cartItemsJSON, _ := json.Marshal(tx.CartItems)

	return &models.TransactionModel{
		ID:                 tx.ID,
		CheckoutRequestID:  tx.CheckoutRequestID,
		MerchantRequestID:  tx.MerchantRequestID,
		PhoneNumber:        tx.PhoneNumber,
		Amount:             tx.Amount,
		CartItemsJSON:      string(cartItemsJSON),
		UserID:             tx.UserID,
		Status:             tx.Status,
		MpesaReceiptNumber: tx.MpesaReceiptNumber,
		TransactionDate:    tx.TransactionDate,
		ActualAmount:       tx.ActualAmount,
		FailureReason:      tx.FailureReason,
		CreatedAt:          tx.CreatedAt,
		UpdatedAt:          tx.UpdatedAt,
	}
}
