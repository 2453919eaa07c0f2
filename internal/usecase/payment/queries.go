package payment

import (
	"github.com/somaprep/materials-service/internal/domain"
)

func (uc *DefaultPaymentUsecase) GetTransactionByCheckoutRequestID(checkoutRequestID string) (*domain.Transaction, error) {
	return uc.TransactionRepo.GetTransactionByCheckoutRequestID(checkoutRequestID)
}
