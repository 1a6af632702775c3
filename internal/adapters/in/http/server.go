// Package http exposes the storefront use cases over a REST API served by echo,
// plus the websocket endpoint live viewers connect to.
package http

import (
	"context"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/notification"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/live"
	"storefront/internal/pkg/observability"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type (
	CheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.CheckoutCommand) (*order.Order, error)
	}
	GuestCheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.GuestCheckoutCommand) (*order.Order, error)
	}
	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
	}
	CreateNotificationHandler interface {
		Handle(ctx context.Context, cmd commands.CreateNotificationCommand) (*notification.Notification, error)
	}
	MarkNotificationReadHandler interface {
		Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) (*notification.Notification, error)
	}
	MarkAllNotificationsReadHandler interface {
		Handle(ctx context.Context, cmd commands.MarkAllNotificationsReadCommand) (int64, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
	}
	ListOrdersByOwnerHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersByOwnerQuery) ([]queries.OrderResponse, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	GetOrderDetailsHandler interface {
		Handle(ctx context.Context, query queries.GetOrderDetailsQuery) ([]queries.OrderLineResponse, error)
	}
	ListNotificationsHandler interface {
		Handle(ctx context.Context, query queries.ListNotificationsQuery) ([]queries.NotificationResponse, error)
	}

	// SessionRegistry tracks websocket viewers.
	SessionRegistry interface {
		Register(conn live.Conn) *live.Session
		Unregister(s *live.Session)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	Checkout                 CheckoutHandler
	GuestCheckout            GuestCheckoutHandler
	TransitionOrder          TransitionOrderHandler
	CreateNotification       CreateNotificationHandler
	MarkNotificationRead     MarkNotificationReadHandler
	MarkAllNotificationsRead MarkAllNotificationsReadHandler

	ListOrders        ListOrdersHandler
	ListOrdersByOwner ListOrdersByOwnerHandler
	GetOrder          GetOrderHandler
	GetOrderDetails   GetOrderDetailsHandler
	ListNotifications ListNotificationsHandler
}

// Server maps HTTP requests onto application commands and queries.
type Server struct {
	handlers    Handlers
	sessions    SessionRegistry
	broadcaster ports.Broadcaster
	upgrader    websocket.Upgrader
	logger      *zap.Logger
	metrics     *observability.Metrics
	contract    *openapi3.T
}

// NewServer creates a server. broadcaster receives the text frames sent by
// viewers; it is usually the hub itself or a relay wrapping it.
func NewServer(
	handlers Handlers,
	sessions SessionRegistry,
	broadcaster ports.Broadcaster,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *Server {
	return &Server{
		handlers:    handlers,
		sessions:    sessions,
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:  observability.Component(logger, "http"),
		metrics: metrics,
	}
}

// NewEcho builds the echo instance with middleware and every route registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(s.requestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
	e.GET("/ws/notifications", s.Notifications)
	if s.contract != nil {
		e.GET("/openapi.json", s.Contract)
		e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.json")))
	}

	api := e.Group("/api/v1")

	api.GET("/orders", s.ListOrders)
	api.GET("/orders/user/:email", s.ListOrdersByOwner)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/details", s.GetOrderDetails)
	api.POST("/orders/guest/:email", s.GuestCheckout)
	api.POST("/orders/:email", s.Checkout)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.POST("/orders/:id/success", s.MarkOrderSuccess)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	api.GET("/notifications", s.ListNotifications)
	api.POST("/notifications", s.CreateNotification)
	api.POST("/notifications/read-all", s.MarkAllNotificationsRead)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)

	return e
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			s.logger.Info("request", fields...)
			return nil
		},
	})
}
