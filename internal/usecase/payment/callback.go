package payment

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/somaprep/materials-service/internal/domain"
	publisher "github.com/somaprep/materials-service/internal/infrastructure/kafka"
	paymentdto "github.com/somaprep/materials-service/internal/usecase/dto/payment"
)

// HandleCallback is the single pending->terminal transition. Result code 0
// means the payer authorized the payment; anything else is a failure with a
// human-readable reason.
func (uc *DefaultPaymentUsecase) HandleCallback(ctx context.Context, envelope *paymentdto.StkCallbackEnvelope) error {
	start := time.Now()

	stkCallback := envelope.Body.StkCallback
	if stkCallback == nil {
		uc.Metrics.RecordError("malformed_callback")
		return domain.ErrMalformedCallback
	}

	transaction, err := uc.TransactionRepo.GetTransactionByCheckoutRequestID(stkCallback.CheckoutRequestID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			uc.Metrics.RecordError("unknown_checkout_request")
		}
		return err
	}

	// Webhooks can be redelivered; a transaction that already reached a
	// terminal state is acknowledged without re-running the fan-out.
	if transaction.Status.Terminal() {
		slog.Info("duplicate callback ignored",
			"checkout_request_id", stkCallback.CheckoutRequestID,
			"status", transaction.Status)
		return nil
	}

	if stkCallback.ResultCode == 0 {
		return uc.processSuccessfulPayment(transaction, stkCallback, start)
	}
	return uc.processFailedPayment(transaction, stkCallback, start)
}

func (uc *DefaultPaymentUsecase) processSuccessfulPayment(transaction *domain.Transaction, stkCallback *paymentdto.StkCallback, start time.Time) error {
	receiptNumber := stkCallback.MetadataString("MpesaReceiptNumber")
	transactionDate := stkCallback.MetadataString("TransactionDate")
	actualAmount := stkCallback.MetadataNumber("Amount")

	now := time.Now()
	sale := &domain.Sale{
		ID:                 uuid.New().String(),
		TransactionID:      transaction.ID,
		MpesaReceiptNumber: receiptNumber,
		CustomerPhone:      transaction.PhoneNumber,
		Amount:             transaction.Amount,
		CartItems:          transaction.CartItems,
		TransactionDate:    parseTransactionDate(transactionDate, now),
		Status:             domain.SaleCompleted,
		CreatedAt:          now,
	}

	purchases := make([]*domain.Purchase, len(transaction.CartItems))
	for i, item := range transaction.CartItems {
		purchases[i] = &domain.Purchase{
			ID:                 uuid.New().String(),
			UserID:             transaction.UserID,
			MaterialID:         item.MaterialID,
			Title:              item.Title,
			Subject:            item.Subject,
			Level:              item.Level,
			Year:               item.Year,
			Price:              item.Price,
			DownloadKey:        item.DownloadKey,
			FileSize:           item.FileSize,
			Pages:              item.Pages,
			TransactionID:      transaction.ID,
			MpesaReceiptNumber: receiptNumber,
			PurchaseDate:       now,
			CreatedAt:          now,
		}
	}

	result := domain.PaymentResult{
		ReceiptNumber:   receiptNumber,
		TransactionDate: transactionDate,
		Amount:          actualAmount,
	}

	// One storage transaction: terminal update, sale and per-item fan-out
	// land together or not at all.
	err := uc.TransactionRepo.CompleteTransaction(transaction.ID, result, sale, purchases)
	if errors.Is(err, domain.ErrAlreadyFinalized) {
		slog.Info("callback raced an earlier delivery, no-op", "checkout_request_id", stkCallback.CheckoutRequestID)
		return nil
	}
	if err != nil {
		uc.Metrics.RecordError("complete_transaction")
		return err
	}

	uc.Metrics.RecordCompleted(uc.Environment, transaction.Amount, len(purchases))
	uc.Metrics.RecordCallbackDuration("completed", time.Since(start).Seconds())

	go func(event publisher.PaymentEvent) {
		if err := uc.Publisher.PublishPayment(event); err != nil {
			slog.Error("failed to publish PaymentEvent:completed", "error", err.Error())
		}
	}(publisher.PaymentEvent{
		TransactionID:     transaction.ID,
		CheckoutRequestID: transaction.CheckoutRequestID,
		UserID:            transaction.UserID,
		Status:            string(domain.StatusCompleted),
		Amount:            transaction.Amount,
		PhoneNumber:       transaction.PhoneNumber,
		ReceiptNumber:     receiptNumber,
		ItemCount:         len(purchases),
	})

	slog.Info("payment completed",
		"checkout_request_id", stkCallback.CheckoutRequestID,
		"receipt", receiptNumber,
		"purchases", len(purchases))

	return nil
}

func (uc *DefaultPaymentUsecase) processFailedPayment(transaction *domain.Transaction, stkCallback *paymentdto.StkCallback, start time.Time) error {
	err := uc.TransactionRepo.FailTransaction(transaction.ID, stkCallback.ResultDesc)
	if errors.Is(err, domain.ErrAlreadyFinalized) {
		return nil
	}
	if err != nil {
		uc.Metrics.RecordError("fail_transaction")
		return err
	}

	uc.Metrics.RecordFailed(uc.Environment, strconv.Itoa(stkCallback.ResultCode))
	uc.Metrics.RecordCallbackDuration("failed", time.Since(start).Seconds())

	go func(event publisher.PaymentEvent) {
		if err := uc.Publisher.PublishPayment(event); err != nil {
			slog.Error("failed to publish PaymentEvent:failed", "error", err.Error())
		}
	}(publisher.PaymentEvent{
		TransactionID:     transaction.ID,
		CheckoutRequestID: transaction.CheckoutRequestID,
		UserID:            transaction.UserID,
		Status:            string(domain.StatusFailed),
		Amount:            transaction.Amount,
		PhoneNumber:       transaction.PhoneNumber,
		FailureReason:     stkCallback.ResultDesc,
		ItemCount:         len(transaction.CartItems),
	})

	slog.Info("payment failed",
		"checkout_request_id", stkCallback.CheckoutRequestID,
		"result_code", stkCallback.ResultCode,
		"reason", stkCallback.ResultDesc)

	return nil
}

// parseTransactionDate interprets the provider-supplied numeric string as
// epoch milliseconds; on garbage it falls back to the handling time.
func parseTransactionDate(raw string, fallback time.Time) time.Time {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return time.UnixMilli(ms)
}
