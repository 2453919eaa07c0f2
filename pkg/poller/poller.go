package poller

import (
	"context"
	"time"

	"github.com/somaprep/materials-service/pkg/api"
)

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeTimedOut  Outcome = "timed_out"
)

const (
	DefaultInterval = 3 * time.Second
	DefaultMaxWait  = 3 * time.Minute
)

// Result is the poller's verdict. Transaction is nil only when the payment
// never resolved before MaxWait.
type Result struct {
	Outcome     Outcome
	Transaction *api.Transaction
}

type TransactionFetcher interface {
	GetTransaction(ctx context.Context, checkoutRequestID string) (*api.Transaction, error)
}

// StatusPoller watches one checkout request until the payer acts on the PIN
// prompt or the wait budget runs out. The payer typically needs tens of
// seconds, so the defaults are deliberately generous.
type StatusPoller struct {
	Fetcher  TransactionFetcher
	Interval time.Duration
	MaxWait  time.Duration
}

func New(fetcher TransactionFetcher) *StatusPoller {
	return &StatusPoller{
		Fetcher:  fetcher,
		Interval: DefaultInterval,
		MaxWait:  DefaultMaxWait,
	}
}

// Poll blocks until the transaction reaches a terminal status, the wait
// budget is exhausted, or ctx is canceled. Transient fetch errors are
// tolerated: the push may land before the pending record is readable.
func (p *StatusPoller) Poll(ctx context.Context, checkoutRequestID string) (*Result, error) {
	deadline := time.NewTimer(p.MaxWait)
	defer deadline.Stop()
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	var last *api.Transaction
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return &Result{Outcome: OutcomeTimedOut, Transaction: last}, nil
		case <-ticker.C:
			transaction, err := p.Fetcher.GetTransaction(ctx, checkoutRequestID)
			if err != nil {
				continue
			}
			last = transaction
			switch transaction.Status {
			case "completed":
				return &Result{Outcome: OutcomeCompleted, Transaction: transaction}, nil
			case "failed":
				return &Result{Outcome: OutcomeFailed, Transaction: transaction}, nil
			}
		}
	}
}
