package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/somaprep/materials-service/internal/domain"
)

// KafkaPublisher is the raw broker writer behind domain.PublisherPort.
type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ domain.PublisherPort = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	var km []kafka.Message
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	return p.writer.WriteMessages(context.Background(), km...)
}

// PaymentEventPublisher puts PaymentEvents on the payment-events topic,
// keyed by checkout reference so one transaction's events stay ordered.
type PaymentEventPublisher struct {
	port  domain.PublisherPort
	topic string
}

func NewPaymentEventPublisher(port domain.PublisherPort, topic string) *PaymentEventPublisher {
	return &PaymentEventPublisher{
		port:  port,
		topic: topic,
	}
}

func (p *PaymentEventPublisher) PublishPayment(event PaymentEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.port.Publish(p.topic, domain.Message{Key: []byte(event.CheckoutRequestID), Value: v})
}
