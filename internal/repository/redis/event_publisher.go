package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/domain/repository"
)

type eventPublisher struct {
	client  *redis.Client
	channel string
	stream  string
	maxLen  int64
	logger  *zap.Logger
}

// NewEventPublisher публикует traffic-update в pub/sub канал и в стрим.
// Either target may be disabled with an empty name. The client is owned by the caller.
func NewEventPublisher(client *redis.Client, channel, stream string, maxLen int64, logger *zap.Logger) repository.EventPublisher {
	return &eventPublisher{
		client:  client,
		channel: channel,
		stream:  stream,
		maxLen:  maxLen,
		logger:  logger,
	}
}

func (r *eventPublisher) Name() string {
	return "redis"
}

// Publish отправляет событие в канал (live fan-out) и в стрим (replay для consumer groups)
func (r *eventPublisher) Publish(ctx context.Context, event *domain.TrafficUpdateEvent) error {
	// Сериализуем данные в JSON
	jsonData, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("Failed to marshal event", zap.Error(err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if r.channel != "" {
		if err := r.client.Publish(ctx, r.channel, jsonData).Err(); err != nil {
			r.logger.Error("Failed to publish to channel",
				zap.String("channel", r.channel),
				zap.Error(err))
			return fmt.Errorf("failed to publish to channel: %w", err)
		}
	}

	if r.stream == "" {
		return nil
	}

	args := &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}

	result, err := r.client.XAdd(ctx, args).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", r.stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Event published to stream",
		zap.String("stream", r.stream),
		zap.String("message_id", result),
		zap.Uint64("generation", event.Generation))
	return nil
}

func (r *eventPublisher) Close() error {
	return nil
}
