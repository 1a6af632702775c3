// Package eventbus delivers committed domain events to in-process subscribers.
//
// Publish never blocks: events go onto a bounded queue drained by worker
// goroutines, and an event that finds the queue full is dropped with a warning.
// Each worker hands an event to every subscriber in subscription order.
// Subscriber errors are logged and counted, never returned to the publisher.
package eventbus

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/observability"

	"go.uber.org/zap"
)

var ErrBusClosed = errors.New("event bus is closed")

// Handler consumes one domain event.
type Handler interface {
	Handle(ctx context.Context, event kernel.DomainEvent) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event kernel.DomainEvent) error

func (f HandlerFunc) Handle(ctx context.Context, event kernel.DomainEvent) error {
	return f(ctx, event)
}

type subscriber struct {
	name    string
	handler Handler
}

type envelope struct {
	ctx   context.Context
	event kernel.DomainEvent
}

type Bus struct {
	mu          sync.RWMutex
	closed      bool
	queue       chan envelope
	subscribers []subscriber

	workers int
	wg      sync.WaitGroup
	logger  *zap.Logger
	metrics *observability.Metrics
}

func New(size, workers int, logger *zap.Logger, metrics *observability.Metrics) *Bus {
	if size <= 0 {
		size = 256
	}
	if workers <= 0 {
		workers = 1
	}
	return &Bus{
		queue:   make(chan envelope, size),
		workers: workers,
		logger:  observability.Component(logger, "event_bus"),
		metrics: metrics,
	}
}

// Subscribe registers a handler. Subscribe before Start.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, subscriber{name: name, handler: h})
}

// Start launches the workers.
func (b *Bus) Start() {
	for range b.workers {
		b.wg.Add(1)
		go b.work()
	}
}

// Publish implements ports.EventPublisher. The request context is detached
// from cancellation so delivery outlives the request that committed the events.
func (b *Bus) Publish(ctx context.Context, events ...kernel.DomainEvent) {
	detached := context.WithoutCancel(ctx)

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, e := range events {
		if b.closed {
			b.logger.Warn("event dropped", zap.String("event", e.EventName()), zap.Error(ErrBusClosed))
			continue
		}
		select {
		case b.queue <- envelope{ctx: detached, event: e}:
		default:
			b.logger.Warn("event queue full, event dropped", zap.String("event", e.EventName()))
			b.metrics.Event("queue", "dropped")
		}
	}
}

// Close stops accepting events and waits for the queued ones to be handled.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()

	b.wg.Wait()
}

func (b *Bus) work() {
	defer b.wg.Done()
	for env := range b.queue {
		b.dispatch(env)
	}
}

func (b *Bus) dispatch(env envelope) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	for _, s := range subs {
		if err := b.invoke(env, s); err != nil {
			b.logger.Warn("subscriber failed",
				zap.String("subscriber", s.name),
				zap.String("event", env.event.EventName()),
				zap.Error(err),
			)
			b.metrics.Event(s.name, "failed")
			continue
		}
		b.metrics.Event(s.name, "ok")
	}
}

func (b *Bus) invoke(env envelope, s subscriber) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("subscriber panicked", zap.String("subscriber", s.name), zap.Any("panic", r))
			err = errors.New("subscriber panicked")
		}
	}()
	return s.handler.Handle(env.ctx, env.event)
}
