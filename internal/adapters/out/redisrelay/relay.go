// Package redisrelay fans live notification frames out across storefront replicas.
// Every replica publishes its frames on a shared Redis channel and forwards the
// frames of the other replicas to its own viewers.
package redisrelay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultChannel = "storefront:notifications"

type envelope struct {
	Origin  string `json:"origin"`
	Payload []byte `json:"payload"`
}

// Relay implements ports.Broadcaster on top of a local broadcaster.
type Relay struct {
	client  *redis.Client
	channel string
	origin  string
	local   ports.Broadcaster
	logger  *zap.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

func NewRelay(client *redis.Client, channel string, local ports.Broadcaster, logger *zap.Logger) *Relay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Relay{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		local:   local,
		logger:  observability.Component(logger, "redis_relay"),
		ready:   make(chan struct{}),
	}
}

// Broadcast delivers payload to the local viewers and publishes it for the
// other replicas. The returned count covers local viewers only. A failed
// publish is logged; the local delivery still happens.
func (r *Relay) Broadcast(ctx context.Context, payload []byte) (int, error) {
	if err := r.publish(ctx, payload); err != nil {
		r.logger.Warn("relay publish failed", zap.String("channel", r.channel), zap.Error(err))
	}
	return r.local.Broadcast(ctx, payload)
}

func (r *Relay) publish(ctx context.Context, payload []byte) error {
	data, err := json.Marshal(envelope{Origin: r.origin, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal envelope failed: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// Ready is closed once Run holds an active subscription.
func (r *Relay) Ready() <-chan struct{} {
	return r.ready
}

// Run subscribes to the channel and forwards frames published by other
// replicas to the local viewers until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe failed: %w", err)
	}
	r.readyOnce.Do(func() { close(r.ready) })
	r.logger.Info("relay subscribed", zap.String("channel", r.channel))

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.forward(ctx, msg.Payload)
		}
	}
}

func (r *Relay) forward(ctx context.Context, raw string) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		r.logger.Warn("relay message ignored", zap.Error(err))
		return
	}
	if env.Origin == r.origin {
		return
	}

	if _, err := r.local.Broadcast(ctx, env.Payload); err != nil {
		r.logger.Warn("relay forward failed", zap.Error(err))
	}
}
