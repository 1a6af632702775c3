package http

import (
	"context"
	"sync"
	"time"

	"storefront/internal/live"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// wsConn adapts a websocket connection to live.Conn. gorilla allows one
// concurrent writer, so writes are serialized.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) Write(ctx context.Context, payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(live.DefaultWriteTimeout)
	}
	if err := w.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

func (w *wsConn) Close() error {
	return w.conn.Close()
}

// Notifications handles GET /ws/notifications. The viewer stays registered
// until it disconnects or a write to it fails. Every text frame it sends is
// broadcast to all viewers.
func (s *Server) Notifications(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}

	session := s.sessions.Register(&wsConn{conn: conn})
	defer s.sessions.Unregister(session)

	ctx := context.WithoutCancel(c.Request().Context())
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket closed", zap.String("session_id", session.ID()), zap.Error(err))
			}
			return nil
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if _, err = s.broadcaster.Broadcast(ctx, data); err != nil {
			s.logger.Warn("websocket echo failed", zap.String("session_id", session.ID()), zap.Error(err))
		}
	}
}
