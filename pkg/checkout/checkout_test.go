package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/somaprep/materials-service/pkg/api"
	"github.com/somaprep/materials-service/pkg/poller"
)

func mathsPaper() api.CartItem {
	return api.CartItem{MaterialID: "mat-1", Title: "KCSE Maths P1", Subject: "Mathematics", Price: 200}
}

func chemPaper() api.CartItem {
	return api.CartItem{MaterialID: "mat-2", Title: "KCSE Chemistry P2", Subject: "Chemistry", Price: 300}
}

func TestCart_AddIsUniquePerMaterial(t *testing.T) {
	cart := NewCart()

	if !cart.Add(mathsPaper()) {
		t.Error("first add should succeed")
	}
	if cart.Add(mathsPaper()) {
		t.Error("second add of the same material should be a no-op")
	}
	if cart.Count() != 1 {
		t.Errorf("count = %d, want 1", cart.Count())
	}
}

func TestCart_Total(t *testing.T) {
	cart := NewCart()
	cart.Add(mathsPaper())
	cart.Add(chemPaper())

	if total := cart.Total(); total != 500 {
		t.Errorf("total = %v, want 500", total)
	}

	cart.Remove("mat-1")
	if total := cart.Total(); total != 300 {
		t.Errorf("total after remove = %v, want 300", total)
	}
}

func TestCart_RemoveMissing(t *testing.T) {
	cart := NewCart()
	cart.Add(mathsPaper())

	if cart.Remove("mat-404") {
		t.Error("removing an absent material should report false")
	}
	if cart.Count() != 1 {
		t.Errorf("count = %d, want 1", cart.Count())
	}
}

func TestValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"0712345678", true},
		{"0112345678", true},
		{"254712345678", true},
		{"+254712345678", true},
		{"071234567", false},
		{"07123456789", false},
		{"25471234567", false},
		{"0812345678", false},
		{"07123a5678", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidPhone(tc.phone); got != tc.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

// stubAPI resolves the transaction after a fixed number of polls.
type stubAPI struct {
	pushResult   *api.StkPushResult
	pushErr      error
	finalStatus  string
	pollsToFinal int
	polls        int
	lastRequest  api.StkPushRequest
}

func (s *stubAPI) InitiateSTKPush(ctx context.Context, request api.StkPushRequest) (*api.StkPushResult, error) {
	s.lastRequest = request
	return s.pushResult, s.pushErr
}

func (s *stubAPI) GetTransaction(ctx context.Context, checkoutRequestID string) (*api.Transaction, error) {
	s.polls++
	if s.polls >= s.pollsToFinal {
		return &api.Transaction{CheckoutRequestID: checkoutRequestID, Status: s.finalStatus}, nil
	}
	return &api.Transaction{CheckoutRequestID: checkoutRequestID, Status: "pending"}, nil
}

func newFastService(stub *stubAPI) *Service {
	s := NewService(stub)
	s.Poller = &poller.StatusPoller{Fetcher: stub, Interval: time.Millisecond, MaxWait: time.Second}
	return s
}

func TestCheckout_CompletedClearsCart(t *testing.T) {
	stub := &stubAPI{
		pushResult:   &api.StkPushResult{Success: true, CheckoutRequestID: "ws_CO_1"},
		finalStatus:  "completed",
		pollsToFinal: 3,
	}
	service := newFastService(stub)

	cart := NewCart()
	cart.Add(mathsPaper())
	cart.Add(chemPaper())

	result, err := service.Checkout(context.Background(), cart, "0712345678", "user-1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if result.Outcome != poller.OutcomeCompleted {
		t.Errorf("outcome = %q, want completed", result.Outcome)
	}
	if stub.lastRequest.Amount != 500 {
		t.Errorf("push amount = %v, want cart total 500", stub.lastRequest.Amount)
	}
	if len(stub.lastRequest.CartItems) != 2 {
		t.Errorf("push carried %d items, want 2", len(stub.lastRequest.CartItems))
	}
	if cart.Count() != 0 {
		t.Errorf("cart not cleared after completed payment")
	}
}

func TestCheckout_FailedKeepsCart(t *testing.T) {
	stub := &stubAPI{
		pushResult:   &api.StkPushResult{Success: true, CheckoutRequestID: "ws_CO_1"},
		finalStatus:  "failed",
		pollsToFinal: 2,
	}
	service := newFastService(stub)

	cart := NewCart()
	cart.Add(mathsPaper())

	result, err := service.Checkout(context.Background(), cart, "0712345678", "user-1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if result.Outcome != poller.OutcomeFailed {
		t.Errorf("outcome = %q, want failed", result.Outcome)
	}
	if cart.Count() != 1 {
		t.Errorf("cart should survive a failed payment for retry")
	}
}

func TestCheckout_Validation(t *testing.T) {
	service := newFastService(&stubAPI{})

	empty := NewCart()
	if _, err := service.Checkout(context.Background(), empty, "0712345678", "user-1"); err != ErrEmptyCart {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}

	cart := NewCart()
	cart.Add(mathsPaper())
	if _, err := service.Checkout(context.Background(), cart, "12345", "user-1"); err != ErrInvalidPhone {
		t.Errorf("err = %v, want ErrInvalidPhone", err)
	}
}
