package payment

import (
	"context"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/kafka"
	"github.com/somaprep/materials-service/internal/infrastructure/metrics"
	paymentdto "github.com/somaprep/materials-service/internal/usecase/dto/payment"
)

type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, input *paymentdto.InitiateInput) (*paymentdto.InitiateOutput, error)
	HandleCallback(ctx context.Context, envelope *paymentdto.StkCallbackEnvelope) error
	GetTransactionByCheckoutRequestID(checkoutRequestID string) (*domain.Transaction, error)
}

type EventPublisher interface {
	PublishPayment(event kafka.PaymentEvent) error
}

type DefaultPaymentUsecase struct {
	TransactionRepo domain.TransactionRepository
	Gateway         domain.PaymentGateway
	Publisher       EventPublisher
	Metrics         *metrics.PaymentMetrics
	Environment     string
}

func NewDefaultPaymentUsecase(
	transactionRepo domain.TransactionRepository,
	gateway domain.PaymentGateway,
	eventPublisher EventPublisher,
	paymentMetrics *metrics.PaymentMetrics,
	environment string) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		TransactionRepo: transactionRepo,
		Gateway:         gateway,
		Publisher:       eventPublisher,
		Metrics:         paymentMetrics,
		Environment:     environment,
	}
}
