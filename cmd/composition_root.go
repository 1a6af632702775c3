package cmd

import (
	"context"
	"fmt"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/auth"
	"storefront/internal/adapters/out/eventbus"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/mail"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/redisrelay"
	"storefront/internal/core/application/eventhandlers"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/live"
	"storefront/internal/pkg/observability"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *zap.Logger
	metrics    *observability.Metrics

	bus         *eventbus.Bus
	mailQueue   *mail.Queue
	hub         *live.Hub
	relay       *redisrelay.Relay
	redisClient *redis.Client
	orderEvents *kafka.OrderEventPublisher
	broadcaster ports.Broadcaster
	provisioner *services.GuestProvisioner
	contract    *openapi3.T
}

// NewCompositionRoot wires every adapter. Nothing runs until Start.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	bus := eventbus.New(0, 0, logger, metrics)
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, bus),
		logger:     logger,
		metrics:    metrics,
		bus:        bus,
		hub:        live.NewHub(cfg.BroadcastWriteTimeout, logger, metrics),
	}

	c.broadcaster = c.hub
	if cfg.RedisAddr != "" {
		c.redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		c.relay = redisrelay.NewRelay(c.redisClient, cfg.RedisBroadcastChannel, c.hub, logger)
		c.broadcaster = c.relay
	}

	contract, err := httpin.LoadContract(context.Background())
	if err != nil {
		return nil, err
	}
	c.contract = contract

	tokens, err := auth.NewJWTIssuer(cfg.JWTSecret, auth.DefaultTokenTTL)
	if err != nil {
		return nil, err
	}
	c.provisioner, err = services.NewGuestProvisioner(cfg.GuestAccountPolicy, auth.NewBcryptHasher(0), tokens)
	if err != nil {
		return nil, err
	}

	var sender mail.Sender = mail.NewLogSender(logger)
	if cfg.SMTPHost != "" {
		if sender, err = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}); err != nil {
			return nil, err
		}
	}
	c.mailQueue = mail.NewQueue(sender, cfg.MailQueueSize, cfg.MailWorkers, logger, metrics)

	if err = c.subscribe(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) subscribe() error {
	composer, err := eventhandlers.NewMailComposer()
	if err != nil {
		return fmt.Errorf("load mail templates: %w", err)
	}

	c.bus.Subscribe("mail", eventhandlers.NewOrderMailHandler(c.uowFactory.Create().UserRepository(), c.mailQueue, composer))
	c.bus.Subscribe("notifications", eventhandlers.NewOrderNotificationRecorder(c.CreateCreateNotificationCommandHandler()))

	if len(c.cfg.KafkaBrokers) > 0 {
		c.orderEvents = kafka.NewOrderEventPublisher(kafka.NewWriter(c.cfg.KafkaBrokers, c.cfg.KafkaOrderEventsTopic))
		c.bus.Subscribe("kafka", c.orderEvents)
	}
	return nil
}

// Start launches the background workers. The relay stops with ctx.
func (c *CompositionRoot) Start(ctx context.Context) {
	c.mailQueue.Start()
	c.bus.Start()

	if c.relay != nil {
		go func() {
			if err := c.relay.Run(ctx); err != nil {
				c.logger.Error("redis relay stopped", zap.Error(err))
			}
		}()
	}
}

// Close drains the event bus before the mail queue, since mail subscribers
// still enqueue while the bus drains.
func (c *CompositionRoot) Close() {
	c.bus.Close()
	c.mailQueue.Close()
	c.hub.Close()

	if c.orderEvents != nil {
		if err := c.orderEvents.Close(); err != nil {
			c.logger.Warn("kafka writer close failed", zap.Error(err))
		}
	}
	if c.redisClient != nil {
		_ = c.redisClient.Close()
	}
}

func (c *CompositionRoot) checkoutUoWFactory() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(c.checkoutUoWFactory(), services.NewOrderBuilder())
}

func (c *CompositionRoot) CreateGuestCheckoutCommandHandler() commands.GuestCheckoutCommandHandler {
	return commands.NewGuestCheckoutCommandHandler(c.checkoutUoWFactory(), c.provisioner, services.NewOrderBuilder())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		c.orderUoWFactory(),
		c.cfg.TransitionPolicy,
		services.NewInventoryAdjuster(c.cfg.InventoryTrigger),
	)
}

func (c *CompositionRoot) CreateCreateNotificationCommandHandler() commands.CreateNotificationCommandHandler {
	return commands.NewCreateNotificationCommandHandler(c.notificationUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateMarkAllNotificationsReadCommandHandler() commands.MarkAllNotificationsReadCommandHandler {
	return commands.NewMarkAllNotificationsReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateRelayNotificationsCommandHandler() commands.RelayNotificationsCommandHandler {
	return commands.NewRelayNotificationsCommandHandler(c.notificationUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersByOwnerQueryHandler() queries.ListOrdersByOwnerQueryHandler {
	return queries.NewListOrdersByOwnerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) HTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		Checkout:                 c.CreateCheckoutCommandHandler(),
		GuestCheckout:            c.CreateGuestCheckoutCommandHandler(),
		TransitionOrder:          c.CreateTransitionOrderCommandHandler(),
		CreateNotification:       c.CreateCreateNotificationCommandHandler(),
		MarkNotificationRead:     c.CreateMarkNotificationReadCommandHandler(),
		MarkAllNotificationsRead: c.CreateMarkAllNotificationsReadCommandHandler(),
		ListOrders:               c.CreateListOrdersQueryHandler(),
		ListOrdersByOwner:        c.CreateListOrdersByOwnerQueryHandler(),
		GetOrder:                 c.CreateGetOrderQueryHandler(),
		GetOrderDetails:          c.CreateGetOrderDetailsQueryHandler(),
		ListNotifications:        c.CreateListNotificationsQueryHandler(),
	}, c.hub, c.broadcaster, c.logger, c.metrics).WithContract(c.contract)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayNotificationsCommandHandler(),
		c.cfg.NotificationRelaySchedule,
		jobs.DefaultRelayBatchSize,
		c.logger,
	)
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
