package payment

import (
	"context"
	"sync"
	"time"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/daraja"
	publisher "github.com/somaprep/materials-service/internal/infrastructure/kafka"
	"github.com/somaprep/materials-service/internal/infrastructure/metrics"
)

// Metrics register against the default prometheus registry, so the test
// binary creates them exactly once.
var testMetrics = metrics.NewPaymentMetrics()

type MockTransactionRepo struct {
	mu           sync.Mutex
	Transactions map[string]*domain.Transaction
	Sales        []*domain.Sale
	Purchases    []*domain.Purchase
	CompleteErr  error
	CreateErr    error
}

func NewMockTransactionRepo() *MockTransactionRepo {
	return &MockTransactionRepo{Transactions: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionRepo) CreateTransaction(tx *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	copied := *tx
	m.Transactions[tx.ID] = &copied
	return nil
}

func (m *MockTransactionRepo) GetTransactionByID(id string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.Transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (m *MockTransactionRepo) GetTransactionByCheckoutRequestID(checkoutRequestID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range m.Transactions {
		if tx.CheckoutRequestID == checkoutRequestID {
			copied := *tx
			return &copied, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// CompleteTransaction mirrors the real repository: the whole update either
// applies or leaves no trace, and a non-pending transaction is refused.
func (m *MockTransactionRepo) CompleteTransaction(id string, result domain.PaymentResult, sale *domain.Sale, purchases []*domain.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.Transactions[id]
	if !ok || tx.Status != domain.StatusPending {
		return domain.ErrAlreadyFinalized
	}
	if m.CompleteErr != nil {
		return m.CompleteErr
	}
	tx.Status = domain.StatusCompleted
	tx.MpesaReceiptNumber = result.ReceiptNumber
	tx.TransactionDate = result.TransactionDate
	tx.ActualAmount = result.Amount
	tx.UpdatedAt = time.Now()
	m.Sales = append(m.Sales, sale)
	m.Purchases = append(m.Purchases, purchases...)
	return nil
}

func (m *MockTransactionRepo) FailTransaction(id string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.Transactions[id]
	if !ok || tx.Status != domain.StatusPending {
		return domain.ErrAlreadyFinalized
	}
	tx.Status = domain.StatusFailed
	tx.FailureReason = reason
	tx.UpdatedAt = time.Now()
	return nil
}

func (m *MockTransactionRepo) CountPendingOlderThan(age time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	cutoff := time.Now().Add(-age)
	for _, tx := range m.Transactions {
		if tx.Status == domain.StatusPending && tx.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

type MockGateway struct {
	Response *domain.StkPushResponse
	Err      error
	Calls    int
}

func (m *MockGateway) STKPush(ctx context.Context, phoneNumber string, amount float64, itemCount int) (*domain.StkPushResponse, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response != nil {
		return m.Response, nil
	}
	return &domain.StkPushResponse{
		MerchantRequestID: "merchant-1",
		CheckoutRequestID: "ws_CO_test",
		PhoneNumber:       daraja.NormalizePhone(phoneNumber),
	}, nil
}

type MockPublisher struct {
	Events chan publisher.PaymentEvent
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make(chan publisher.PaymentEvent, 16)}
}

func (m *MockPublisher) PublishPayment(event publisher.PaymentEvent) error {
	m.Events <- event
	return nil
}
