package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/somaprep/materials-service/pkg/api"
	"github.com/somaprep/materials-service/pkg/poller"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidPhone = errors.New("invalid phone number")
)

// ValidPhone accepts the Kenyan mobile formats the gateway can charge:
// 07XXXXXXXX, 01XXXXXXXX, 254XXXXXXXXX and +254XXXXXXXXX.
func ValidPhone(phone string) bool {
	switch {
	case strings.HasPrefix(phone, "07"), strings.HasPrefix(phone, "01"):
		return len(phone) == 10 && allDigits(phone)
	case strings.HasPrefix(phone, "+254"):
		return len(phone) == 13 && allDigits(phone[1:])
	case strings.HasPrefix(phone, "254"):
		return len(phone) == 12 && allDigits(phone)
	default:
		return false
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type PaymentAPI interface {
	InitiateSTKPush(ctx context.Context, request api.StkPushRequest) (*api.StkPushResult, error)
	GetTransaction(ctx context.Context, checkoutRequestID string) (*api.Transaction, error)
}

// Service drives a full checkout: push the payment prompt, then watch the
// transaction until the payer resolves it or the wait budget runs out.
type Service struct {
	API    PaymentAPI
	Poller *poller.StatusPoller
}

func NewService(paymentAPI PaymentAPI) *Service {
	return &Service{
		API:    paymentAPI,
		Poller: poller.New(paymentAPI),
	}
}

// Checkout validates the inputs, sends the push for the cart total and polls
// for the outcome. The cart is cleared only on a completed payment.
func (s *Service) Checkout(ctx context.Context, cart *Cart, phone, userID string) (*poller.Result, error) {
	if cart.Count() == 0 {
		return nil, ErrEmptyCart
	}
	if !ValidPhone(phone) {
		return nil, ErrInvalidPhone
	}

	result, err := s.API.InitiateSTKPush(ctx, api.StkPushRequest{
		PhoneNumber: phone,
		Amount:      cart.Total(),
		CartItems:   cart.Items(),
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}

	outcome, err := s.Poller.Poll(ctx, result.CheckoutRequestID)
	if err != nil {
		return nil, err
	}

	if outcome.Outcome == poller.OutcomeCompleted {
		cart.Clear()
	}
	return outcome, nil
}
