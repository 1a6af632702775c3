// Package kafka forwards committed order events to a Kafka topic so that
// services outside the storefront can follow the order lifecycle.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event_type"

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// ParseBrokers splits a comma separated broker list, skipping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

type orderEventMessage struct {
	Event      string    `json:"event"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	Amount     string    `json:"amount"`
	Address    string    `json:"address"`
	Status     int       `json:"status"`
	StatusName string    `json:"status_name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderEventPublisher is an event bus subscriber writing one message per order
// event, keyed by order id so that events of one order stay in one partition.
type OrderEventPublisher struct {
	writer MessageWriter
}

func NewOrderEventPublisher(writer MessageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

func (p *OrderEventPublisher) Handle(ctx context.Context, event kernel.DomainEvent) error {
	e, ok := event.(order.Event)
	if !ok {
		return nil
	}

	value, err := json.Marshal(orderEventMessage{
		Event:      e.EventName(),
		OrderID:    e.OrderID.String(),
		UserID:     e.UserID.String(),
		Amount:     e.Amount.Decimal().StringFixed(2),
		Address:    e.Address,
		Status:     int(e.Status),
		StatusName: e.Status.String(),
		OccurredAt: e.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.EventName(), err)
	}

	msg := kafkago.Message{
		Key:     []byte(e.OrderID.String()),
		Value:   value,
		Headers: []kafkago.Header{{Key: eventTypeHeader, Value: []byte(e.EventName())}},
		Time:    time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s for order %s: %w", e.EventName(), e.OrderID, err)
	}
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
