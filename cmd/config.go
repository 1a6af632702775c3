package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/adapters/out/kafka"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
)

var ErrJWTSecretIsRequired = errors.New("JWT_SECRET is required")

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailFrom      string
	MailQueueSize int
	MailWorkers   int

	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	RedisAddr             string
	RedisBroadcastChannel string

	JWTSecret string

	GuestAccountPolicy        services.GuestAccountPolicy
	TransitionPolicy          order.TransitionPolicy
	InventoryTrigger          services.InventoryTrigger
	BroadcastWriteTimeout     time.Duration
	NotificationRelaySchedule string
}

// LoadConfig reads the configuration through getenv, usually os.Getenv after
// the optional .env file was loaded. Unset keys take their defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:   env("HTTP_PORT", "8080"),
		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: env("DB_PASSWORD", ""),
		DBName:     env("DB_NAME", "storefront"),
		DBSslMode:  env("DB_SSLMODE", "disable"),
		LogLevel:   env("LOG_LEVEL", "info"),

		SMTPHost:     env("SMTP_HOST", ""),
		SMTPUsername: env("SMTP_USERNAME", ""),
		SMTPPassword: env("SMTP_PASSWORD", ""),
		MailFrom:     env("MAIL_FROM", "no-reply@storefront.local"),

		KafkaBrokers:          kafka.ParseBrokers(env("KAFKA_BROKERS", "")),
		KafkaOrderEventsTopic: env("KAFKA_ORDER_EVENTS_TOPIC", "storefront.order-events"),

		RedisAddr:             env("REDIS_ADDR", ""),
		RedisBroadcastChannel: env("REDIS_BROADCAST_CHANNEL", "storefront:notifications"),

		JWTSecret: env("JWT_SECRET", ""),

		NotificationRelaySchedule: env("NOTIFICATION_RELAY_SCHEDULE", "*/10 * * * * *"),
	}

	var err error
	if cfg.SMTPPort, err = atoi("SMTP_PORT", env("SMTP_PORT", "587")); err != nil {
		return Config{}, err
	}
	if cfg.MailQueueSize, err = atoi("MAIL_QUEUE_SIZE", env("MAIL_QUEUE_SIZE", "100")); err != nil {
		return Config{}, err
	}
	if cfg.MailWorkers, err = atoi("MAIL_WORKERS", env("MAIL_WORKERS", "2")); err != nil {
		return Config{}, err
	}
	if cfg.BroadcastWriteTimeout, err = time.ParseDuration(env("BROADCAST_WRITE_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("BROADCAST_WRITE_TIMEOUT: %w", err)
	}
	if cfg.GuestAccountPolicy, err = services.ParseGuestAccountPolicy(env("GUEST_ACCOUNT_POLICY", "")); err != nil {
		return Config{}, fmt.Errorf("GUEST_ACCOUNT_POLICY: %w", err)
	}
	if cfg.TransitionPolicy, err = order.ParseTransitionPolicy(env("TRANSITION_POLICY", "")); err != nil {
		return Config{}, fmt.Errorf("TRANSITION_POLICY: %w", err)
	}
	if cfg.InventoryTrigger, err = services.ParseInventoryTrigger(env("INVENTORY_TRIGGER", "")); err != nil {
		return Config{}, fmt.Errorf("INVENTORY_TRIGGER: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrJWTSecretIsRequired
	}

	return cfg, nil
}

// DSN is the key/value connection string understood by both lib/pq and pgx.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func atoi(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
