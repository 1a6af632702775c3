package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type otherEvent struct{}

func (otherEvent) EventName() string { return "user.created" }

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, ParseBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, ParseBrokers(""))
}

func TestOrderEventPublisher_Handle(t *testing.T) {
	w := &fakeWriter{}
	p := NewOrderEventPublisher(w)
	e := order.Event{
		Kind:       order.EventCompleted,
		OrderID:    kernel.NewUUID(),
		UserID:     kernel.NewUUID(),
		Amount:     kernel.MustMoney("25.5"),
		Address:    "12 Harbour Rd",
		Status:     order.Completed,
		OccurredAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.Handle(context.Background(), e))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, e.OrderID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "order.completed", string(msg.Headers[0].Value))

	var body orderEventMessage
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "order.completed", body.Event)
	assert.Equal(t, "25.50", body.Amount)
	assert.Equal(t, 2, body.Status)
	assert.Equal(t, "Completed", body.StatusName)
	assert.Equal(t, e.UserID.String(), body.UserID)
}

func TestOrderEventPublisher_IgnoresOtherEvents(t *testing.T) {
	w := &fakeWriter{}

	require.NoError(t, NewOrderEventPublisher(w).Handle(context.Background(), otherEvent{}))
	assert.Empty(t, w.messages)
}

func TestOrderEventPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	e := order.Event{Kind: order.EventPlaced, OrderID: kernel.NewUUID(), UserID: kernel.NewUUID(), Amount: kernel.Zero()}

	err := NewOrderEventPublisher(w).Handle(context.Background(), e)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish order.placed")
}

func TestOrderEventPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewOrderEventPublisher(w).Close())
	assert.True(t, w.closed)
}

func TestNewWriter(t *testing.T) {
	w := NewWriter([]string{"localhost:9092"}, "storefront.orders")
	assert.Equal(t, "storefront.orders", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}
