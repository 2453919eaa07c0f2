package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/somaprep/materials-service/internal/domain"
	paymentdto "github.com/somaprep/materials-service/internal/usecase/dto/payment"
)

// InitiatePayment submits the push-payment request and persists the pending
// transaction carrying the full cart snapshot. The caller's live cart is
// gone after this point; the snapshot is the durable record.
func (uc *DefaultPaymentUsecase) InitiatePayment(ctx context.Context, input *paymentdto.InitiateInput) (*paymentdto.InitiateOutput, error) {
	if input.PhoneNumber == "" || input.Amount <= 0 || len(input.CartItems) == 0 || input.UserID == "" {
		return nil, domain.ErrValidation
	}

	start := time.Now()
	push, err := uc.Gateway.STKPush(ctx, input.PhoneNumber, input.Amount, len(input.CartItems))
	uc.Metrics.StkPushDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		uc.Metrics.RecordError("stk_push")
		return nil, err
	}

	now := time.Now()
	transaction := &domain.Transaction{
		ID:                uuid.New().String(),
		CheckoutRequestID: push.CheckoutRequestID,
		MerchantRequestID: push.MerchantRequestID,
		PhoneNumber:       push.PhoneNumber,
		Amount:            input.Amount,
		CartItems:         input.CartItems,
		UserID:            input.UserID,
		Status:            domain.StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.TransactionRepo.CreateTransaction(transaction); err != nil {
		uc.Metrics.RecordError("transaction_create")
		return nil, err
	}

	slog.Info("stk push initiated",
		"checkout_request_id", push.CheckoutRequestID,
		"phone", push.PhoneNumber,
		"amount", input.Amount,
		"items", len(input.CartItems))

	uc.Metrics.RecordInitiated(uc.Environment, input.Amount)

	return &paymentdto.InitiateOutput{
		CheckoutRequestID: push.CheckoutRequestID,
		MerchantRequestID: push.MerchantRequestID,
	}, nil
}
