package background

import (
	"context"
	"log"
	"time"

	"github.com/somaprep/materials-service/internal/domain"
	"github.com/somaprep/materials-service/internal/infrastructure/metrics"
)

// Pending transactions older than this never got a callback: the payer
// abandoned the PIN prompt or the webhook was lost.
const stalePendingAge = 10 * time.Minute

type BackgroundTasks struct {
	TransactionRepo domain.TransactionRepository
	Metrics         *metrics.PaymentMetrics
}

func NewBackgroundTasks(transactionRepo domain.TransactionRepository, paymentMetrics *metrics.PaymentMetrics) *BackgroundTasks {
	return &BackgroundTasks{
		TransactionRepo: transactionRepo,
		Metrics:         paymentMetrics,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startStalePendingMonitor(ctx)
}

// startStalePendingMonitor only observes; stale pendings are never expired
// here since a late callback must still find them pending.
func (bt *BackgroundTasks) startStalePendingMonitor(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := bt.TransactionRepo.CountPendingOlderThan(stalePendingAge)
			if err != nil {
				log.Printf("Stale pending check error: %v\n", err)
				continue
			}
			bt.Metrics.StalePendingTransactions.Set(float64(count))
			if count > 0 {
				log.Printf("Stale pending transactions: %d\n", count)
			}
		}
	}
}
