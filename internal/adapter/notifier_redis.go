package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

// publisher is the part of *redis.Client the notifier needs.
type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisNotifier publishes events as JSON on a Redis pub/sub channel.
type RedisNotifier struct {
	client  publisher
	closer  func() error
	channel string

	logger *logger.Logger
}

// NewRedisNotifier connects to cfg.RedisAddr and checks the connection with
// PING before returning.
func NewRedisNotifier(ctx context.Context, cfg config.Notifier, log *logger.Logger) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	log.Info().
		Str("addr", cfg.RedisAddr).
		Str("channel", cfg.RedisChannel).
		Msg("redis notifier connected")

	return &RedisNotifier{
		client:  client,
		closer:  client.Close,
		channel: cfg.RedisChannel,
		logger:  log,
	}, nil
}

func (r *RedisNotifier) Notify(ctx context.Context, event models.FormEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishingEvent, err)
	}

	receivers, err := r.client.Publish(ctx, r.channel, payload).Result()
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "RedisNotifier.Notify").
			Str("channel", r.channel).
			Str("form_id", event.FormID).
			Msg("failed to publish event")
		return fmt.Errorf("%w: %w", ErrPublishingEvent, err)
	}

	logger.FromContext(ctx).Debug().
		Str("channel", r.channel).
		Str("event", event.Type).
		Int64("receivers", receivers).
		Msg("event published")
	return nil
}

// Close releases the Redis connection pool.
func (r *RedisNotifier) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
