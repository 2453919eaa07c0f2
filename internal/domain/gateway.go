package domain

import "context"

// StkPushResponse is the gateway's acknowledgement of a push-payment
// submission. CheckoutRequestID correlates the later asynchronous callback.
type StkPushResponse struct {
	MerchantRequestID   string
	CheckoutRequestID   string
	PhoneNumber         string
	ResponseDescription string
}

// PaymentGateway asks the mobile-money provider to prompt the payer's device.
// PhoneNumber may arrive in any of the accepted local formats; the gateway
// client normalizes it and reports the normalized form back.
type PaymentGateway interface {
	STKPush(ctx context.Context, phoneNumber string, amount float64, itemCount int) (*StkPushResponse, error)
}
