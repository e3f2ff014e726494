package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/domain"
)

// StreamConsumer читает traffic-update события из стрима через consumer group
type StreamConsumer struct {
	client    *redis.Client
	logger    *zap.Logger
	block     time.Duration
	batchSize int64
}

// NewStreamConsumer создает новый экземпляр StreamConsumer
func NewStreamConsumer(client *redis.Client, block time.Duration, logger *zap.Logger) *StreamConsumer {
	if block <= 0 {
		block = time.Second
	}
	return &StreamConsumer{
		client:    client,
		logger:    logger,
		block:     block,
		batchSize: 10,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *StreamConsumer) CreateConsumerGroup(ctx context.Context, stream, group, start string) error {
	if start == "" {
		start = "$"
	}
	// MKSTREAM автоматически создаст стрим, если он не существует
	err := r.client.XGroupCreateMkStream(ctx, stream, group, start).Err()
	if err != nil {
		// Игнорируем ошибку BUSYGROUP - группа уже существует
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created successfully",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// Consume читает сообщения из стрима с использованием consumer group.
// The channel is closed when ctx is cancelled.
func (r *StreamConsumer) Consume(ctx context.Context, stream, group, consumer string) <-chan domain.StreamMessage {
	msgChan := make(chan domain.StreamMessage, r.batchSize)

	go func() {
		defer close(msgChan)

		for {
			if ctx.Err() != nil {
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			}

			// ">" - только новые, ещё не доставленные сообщения
			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    r.batchSize,
				Block:    r.block,
			}).Result()

			if err != nil {
				if err == redis.Nil {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
				continue
			}

			for _, s := range result {
				for _, msg := range s.Messages {
					// JSON лежит в поле "data"
					data, ok := msg.Values["data"].(string)
					if !ok {
						r.logger.Warn("Message does not contain 'data' field",
							zap.String("message_id", msg.ID))
						continue
					}

					var event domain.TrafficUpdateEvent
					if err := json.Unmarshal([]byte(data), &event); err != nil {
						r.logger.Warn("Skipping undecodable message",
							zap.String("message_id", msg.ID),
							zap.Error(err))
						continue
					}

					select {
					case msgChan <- domain.StreamMessage{ID: msg.ID, Event: event}:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return msgChan
}

// Ack подтверждает обработку сообщения
func (r *StreamConsumer) Ack(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}
	return nil
}
