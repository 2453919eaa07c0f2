package paymentdto

type InitiateOutput struct {
	CheckoutRequestID string
	MerchantRequestID string
}
