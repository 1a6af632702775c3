package eventbus_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/internal/adapters/out/eventbus"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type namedEvent string

func (e namedEvent) EventName() string { return string(e) }

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Handle(_ context.Context, e kernel.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e.EventName())
	return nil
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func TestBus_DeliversToEverySubscriber(t *testing.T) {
	bus := eventbus.New(8, 2, nil, nil)
	first, second := &recorder{}, &recorder{}
	bus.Subscribe("first", first)
	bus.Subscribe("second", second)
	bus.Start()

	bus.Publish(context.Background(), namedEvent("a"), namedEvent("b"))
	bus.Close()

	assert.ElementsMatch(t, []string{"a", "b"}, first.names())
	assert.ElementsMatch(t, []string{"a", "b"}, second.names())
}

func TestBus_SubscriberFailureDoesNotStopOthers(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	bus := eventbus.New(8, 1, zap.New(core), nil)
	ok := &recorder{}
	bus.Subscribe("broken", eventbus.HandlerFunc(func(context.Context, kernel.DomainEvent) error {
		return errors.New("smtp down")
	}))
	bus.Subscribe("panicky", eventbus.HandlerFunc(func(context.Context, kernel.DomainEvent) error {
		panic("boom")
	}))
	bus.Subscribe("ok", ok)
	bus.Start()

	bus.Publish(context.Background(), namedEvent("order.placed"))
	bus.Close()

	assert.Equal(t, []string{"order.placed"}, ok.names())
	assert.Equal(t, 2, logs.FilterMessage("subscriber failed").Len())
}

func TestBus_DetachesFromRequestCancellation(t *testing.T) {
	bus := eventbus.New(8, 1, nil, nil)
	var seenErr error
	done := make(chan struct{})
	bus.Subscribe("ctx", eventbus.HandlerFunc(func(ctx context.Context, _ kernel.DomainEvent) error {
		seenErr = ctx.Err()
		close(done)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, namedEvent("x"))
	cancel()
	bus.Start()
	<-done
	bus.Close()

	require.NoError(t, seenErr)
}

func TestBus_DropsWhenFull(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	bus := eventbus.New(1, 1, zap.New(core), nil)
	r := &recorder{}
	bus.Subscribe("r", r)

	bus.Publish(context.Background(), namedEvent("kept"), namedEvent("dropped"))
	bus.Start()
	bus.Close()

	assert.Equal(t, []string{"kept"}, r.names())
	assert.Equal(t, 1, logs.FilterMessage("event queue full, event dropped").Len())
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := eventbus.New(1, 1, nil, nil)
	bus.Start()
	bus.Close()
	bus.Close()

	assert.NotPanics(t, func() { bus.Publish(context.Background(), namedEvent("late")) })
}
