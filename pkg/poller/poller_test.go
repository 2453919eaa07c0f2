package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/somaprep/materials-service/pkg/api"
)

// scriptedFetcher replays a fixed sequence of responses, repeating the last
// entry once the script is exhausted.
type scriptedFetcher struct {
	script []func() (*api.Transaction, error)
	calls  int
}

func (f *scriptedFetcher) GetTransaction(ctx context.Context, checkoutRequestID string) (*api.Transaction, error) {
	i := f.calls
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	f.calls++
	return f.script[i]()
}

func pending() (*api.Transaction, error) {
	return &api.Transaction{Status: "pending"}, nil
}

func completed() (*api.Transaction, error) {
	return &api.Transaction{Status: "completed", MpesaReceiptNumber: "ABC123"}, nil
}

func failed() (*api.Transaction, error) {
	return &api.Transaction{Status: "failed", FailureReason: "Request cancelled by user"}, nil
}

func transientError() (*api.Transaction, error) {
	return nil, errors.New("connection refused")
}

func fastPoller(fetcher TransactionFetcher, maxWait time.Duration) *StatusPoller {
	return &StatusPoller{Fetcher: fetcher, Interval: time.Millisecond, MaxWait: maxWait}
}

func TestPoll_StopsOnCompleted(t *testing.T) {
	fetcher := &scriptedFetcher{script: []func() (*api.Transaction, error){pending, pending, completed}}
	p := fastPoller(fetcher, time.Second)

	result, err := p.Poll(context.Background(), "ws_CO_1")
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if result.Outcome != OutcomeCompleted {
		t.Errorf("outcome = %q, want completed", result.Outcome)
	}
	if result.Transaction.MpesaReceiptNumber != "ABC123" {
		t.Errorf("transaction = %+v", result.Transaction)
	}
	if fetcher.calls != 3 {
		t.Errorf("calls = %d, want 3", fetcher.calls)
	}
}

func TestPoll_StopsOnFailed(t *testing.T) {
	fetcher := &scriptedFetcher{script: []func() (*api.Transaction, error){pending, failed}}
	p := fastPoller(fetcher, time.Second)

	result, err := p.Poll(context.Background(), "ws_CO_1")
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if result.Outcome != OutcomeFailed {
		t.Errorf("outcome = %q, want failed", result.Outcome)
	}
	if result.Transaction.FailureReason != "Request cancelled by user" {
		t.Errorf("transaction = %+v", result.Transaction)
	}
}

func TestPoll_ToleratesTransientErrors(t *testing.T) {
	fetcher := &scriptedFetcher{script: []func() (*api.Transaction, error){transientError, transientError, completed}}
	p := fastPoller(fetcher, time.Second)

	result, err := p.Poll(context.Background(), "ws_CO_1")
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if result.Outcome != OutcomeCompleted {
		t.Errorf("outcome = %q, want completed", result.Outcome)
	}
}

func TestPoll_TimesOutWhilePending(t *testing.T) {
	fetcher := &scriptedFetcher{script: []func() (*api.Transaction, error){pending}}
	p := fastPoller(fetcher, 20*time.Millisecond)

	result, err := p.Poll(context.Background(), "ws_CO_1")
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if result.Outcome != OutcomeTimedOut {
		t.Errorf("outcome = %q, want timed_out", result.Outcome)
	}
	if result.Transaction == nil || result.Transaction.Status != "pending" {
		t.Errorf("last observed transaction = %+v", result.Transaction)
	}
}

func TestPoll_CanceledContext(t *testing.T) {
	fetcher := &scriptedFetcher{script: []func() (*api.Transaction, error){pending}}
	p := fastPoller(fetcher, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := p.Poll(ctx, "ws_CO_1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
