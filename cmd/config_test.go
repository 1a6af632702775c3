package cmd

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(envOf(map[string]string{"JWT_SECRET": "s3cret"}))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 100, cfg.MailQueueSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.BroadcastWriteTimeout)
	assert.Equal(t, services.AlwaysCreate, cfg.GuestAccountPolicy)
	assert.Equal(t, order.Permissive, cfg.TransitionPolicy)
	assert.Equal(t, services.TriggerOnComplete, cfg.InventoryTrigger)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=storefront sslmode=disable", cfg.DSN())
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(envOf(map[string]string{
		"JWT_SECRET":              "s3cret",
		"KAFKA_BROKERS":           "k1:9092,k2:9092",
		"GUEST_ACCOUNT_POLICY":    "reuse_existing",
		"TRANSITION_POLICY":       "strict",
		"INVENTORY_TRIGGER":       "both",
		"BROADCAST_WRITE_TIMEOUT": "250ms",
		"MAIL_WORKERS":            "4",
	}))

	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, services.ReuseExisting, cfg.GuestAccountPolicy)
	assert.Equal(t, order.Strict, cfg.TransitionPolicy)
	assert.Equal(t, services.TriggerOnBoth, cfg.InventoryTrigger)
	assert.Equal(t, 250*time.Millisecond, cfg.BroadcastWriteTimeout)
	assert.Equal(t, 4, cfg.MailWorkers)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(envOf(nil))
	require.ErrorIs(t, err, ErrJWTSecretIsRequired)

	for key, value := range map[string]string{
		"SMTP_PORT":         "smtp",
		"TRANSITION_POLICY": "lenient",
		"INVENTORY_TRIGGER": "never",
	} {
		_, err = LoadConfig(envOf(map[string]string{"JWT_SECRET": "s3cret", key: value}))
		require.Error(t, err, key)
		assert.Contains(t, err.Error(), key)
	}
}
