// Package live keeps the registry of connected viewer sessions and fans
// payloads out to them.
//
// The Hub owns the registry and guards it with a read/write lock. Broadcast
// copies the current sessions, writes to each one concurrently under a
// per-session timeout, and unregisters every session whose write failed, so the
// next broadcast only targets healthy viewers.
package live

import (
	"context"
	"sync"
	"time"

	"storefront/internal/pkg/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultWriteTimeout = 5 * time.Second

// Conn is one viewer connection. Write must honor the context deadline.
type Conn interface {
	Write(ctx context.Context, payload []byte) error
	Close() error
}

// Session is a registered viewer.
type Session struct {
	id   string
	conn Conn
}

func (s *Session) ID() string { return s.id }

type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	writeTimeout time.Duration
	logger       *zap.Logger
	metrics      *observability.Metrics
}

func NewHub(writeTimeout time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Hub {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &Hub{
		sessions:     make(map[string]*Session),
		writeTimeout: writeTimeout,
		logger:       observability.Component(logger, "live_hub"),
		metrics:      metrics,
	}
}

// Register adds a connection to the registry.
func (h *Hub) Register(conn Conn) *Session {
	s := &Session{id: uuid.NewString(), conn: conn}

	h.mu.Lock()
	h.sessions[s.id] = s
	count := len(h.sessions)
	h.mu.Unlock()

	h.metrics.SessionsChanged(count)
	h.logger.Debug("session registered", zap.String("session_id", s.id), zap.Int("sessions", count))
	return s
}

// Unregister removes a session and closes its connection. Unknown or already
// removed sessions are ignored.
func (h *Hub) Unregister(s *Session) {
	if s == nil {
		return
	}

	h.mu.Lock()
	_, ok := h.sessions[s.id]
	delete(h.sessions, s.id)
	count := len(h.sessions)
	h.mu.Unlock()

	if !ok {
		return
	}
	_ = s.conn.Close()
	h.metrics.SessionsChanged(count)
	h.logger.Debug("session unregistered", zap.String("session_id", s.id), zap.Int("sessions", count))
}

// Len returns the number of registered sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast writes payload to every registered session and returns how many
// writes succeeded. Failed sessions are unregistered before it returns.
func (h *Hub) Broadcast(ctx context.Context, payload []byte) (int, error) {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return 0, nil
	}

	failed := make(chan *Session, len(targets))
	var wg sync.WaitGroup
	for _, s := range targets {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			writeCtx, cancel := context.WithTimeout(ctx, h.writeTimeout)
			defer cancel()
			if err := s.conn.Write(writeCtx, payload); err != nil {
				h.logger.Warn("live write failed", zap.String("session_id", s.id), zap.Error(err))
				failed <- s
			}
		}(s)
	}
	wg.Wait()
	close(failed)

	dropped := 0
	for s := range failed {
		h.Unregister(s)
		dropped++
	}

	delivered := len(targets) - dropped
	h.metrics.LiveDelivered(delivered)
	h.metrics.LiveDropped(dropped)
	return delivered, nil
}

// Close unregisters every session.
func (h *Hub) Close() {
	h.mu.RLock()
	all := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		all = append(all, s)
	}
	h.mu.RUnlock()

	for _, s := range all {
		h.Unregister(s)
	}
}
