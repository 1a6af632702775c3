// Package mail delivers outgoing mail. Queue is the ports.Mailer the
// application uses: it accepts messages without blocking and hands them to a
// Sender on worker goroutines. Failed sends are logged and dropped.
package mail

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/observability"

	"go.uber.org/zap"
)

var (
	ErrQueueFull   = errors.New("mail queue is full")
	ErrQueueClosed = errors.New("mail queue is closed")
)

// Sender performs the actual delivery of one message.
type Sender interface {
	Send(ctx context.Context, m ports.Mail) error
}

type job struct {
	ctx  context.Context
	mail ports.Mail
}

type Queue struct {
	mu     sync.RWMutex
	closed bool
	jobs   chan job

	sender  Sender
	workers int
	wg      sync.WaitGroup
	logger  *zap.Logger
	metrics *observability.Metrics
}

func NewQueue(sender Sender, size, workers int, logger *zap.Logger, metrics *observability.Metrics) *Queue {
	if size <= 0 {
		size = 100
	}
	if workers <= 0 {
		workers = 2
	}
	return &Queue{
		jobs:    make(chan job, size),
		sender:  sender,
		workers: workers,
		logger:  observability.Component(logger, "mail_queue"),
		metrics: metrics,
	}
}

func (q *Queue) Start() {
	for range q.workers {
		q.wg.Add(1)
		go q.work()
	}
}

// Send enqueues m. It returns ErrQueueFull when the queue has no room; the
// message is dropped in that case and the caller decides whether to log it.
func (q *Queue) Send(ctx context.Context, m ports.Mail) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job{ctx: context.WithoutCancel(ctx), mail: m}:
		return nil
	default:
		q.metrics.Mail("dropped")
		return ErrQueueFull
	}
}

// Close stops accepting mail and waits until the queued messages were handled.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) work() {
	defer q.wg.Done()
	for j := range q.jobs {
		if err := q.sender.Send(j.ctx, j.mail); err != nil {
			q.logger.Error("mail send failed", zap.String("to", j.mail.To), zap.String("subject", j.mail.Subject), zap.Error(err))
			q.metrics.Mail("failed")
			continue
		}
		q.metrics.Mail("sent")
	}
}
