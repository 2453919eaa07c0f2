package paymentdto

import (
	"strconv"

	"github.com/somaprep/materials-service/internal/domain"
)

type InitiateInput struct {
	PhoneNumber string
	Amount      float64
	CartItems   []domain.CartItem
	UserID      string
}

// StkCallbackEnvelope is the gateway's webhook payload. The result lives
// inside a nested Body.stkCallback envelope; its absence means the payload
// is malformed.
type StkCallbackEnvelope struct {
	Body struct {
		StkCallback *StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  struct {
		Item []MetadataItem `json:"Item"`
	} `json:"CallbackMetadata"`
}

// MetadataItem entries are addressed by name, not position, and optional
// items may be absent on a given callback.
type MetadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

func (c *StkCallback) metadataValue(name string) interface{} {
	for _, item := range c.CallbackMetadata.Item {
		if item.Name == name {
			return item.Value
		}
	}
	return nil
}

// MetadataString renders the named metadata item as a string; numeric
// values (receipt dates, amounts arrive as JSON numbers) are formatted
// without an exponent. Missing items yield "".
func (c *StkCallback) MetadataString(name string) string {
	switch v := c.metadataValue(name).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconvFormat(v)
	default:
		return ""
	}
}

// MetadataNumber yields the named metadata item as a float64, or 0 when
// absent or not numeric.
func (c *StkCallback) MetadataNumber(name string) float64 {
	if v, ok := c.metadataValue(name).(float64); ok {
		return v
	}
	return 0
}

func strconvFormat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
