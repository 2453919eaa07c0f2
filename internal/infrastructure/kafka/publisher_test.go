package kafka

import (
	"encoding/json"
	"testing"

	"github.com/somaprep/materials-service/internal/domain"
)

type capturingPort struct {
	topic string
	msgs  []domain.Message
}

func (p *capturingPort) Publish(topic string, msgs ...domain.Message) error {
	p.topic = topic
	p.msgs = append(p.msgs, msgs...)
	return nil
}

func TestPublishPayment_KeyedByCheckoutReference(t *testing.T) {
	port := &capturingPort{}
	pub := NewPaymentEventPublisher(port, "payment-events")

	event := PaymentEvent{
		TransactionID:     "tx-1",
		CheckoutRequestID: "ws_CO_1",
		UserID:            "user-1",
		Status:            "completed",
		Amount:            500,
		PhoneNumber:       "254712345678",
		ReceiptNumber:     "ABC123",
		ItemCount:         2,
	}
	if err := pub.PublishPayment(event); err != nil {
		t.Fatalf("PublishPayment: %v", err)
	}

	if port.topic != "payment-events" {
		t.Errorf("topic = %q, want payment-events", port.topic)
	}
	if len(port.msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(port.msgs))
	}
	if string(port.msgs[0].Key) != "ws_CO_1" {
		t.Errorf("key = %q, want the checkout reference", port.msgs[0].Key)
	}

	var decoded PaymentEvent
	if err := json.Unmarshal(port.msgs[0].Value, &decoded); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if decoded != event {
		t.Errorf("round-tripped event = %+v, want %+v", decoded, event)
	}
}
