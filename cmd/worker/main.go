package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/config"
	"github.com/border-traffic-monitor/internal/pkg/logger"
	"github.com/border-traffic-monitor/internal/repository/cache"
	redisRepo "github.com/border-traffic-monitor/internal/repository/redis"
)

// Stream consumer: reads traffic-update events that the API relays into the Redis stream
// and logs one line per route. Useful as a reference downstream consumer.
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting traffic stream consumer",
		zap.String("stream", cfg.Redis.Stream),
		zap.String("consumer_group", cfg.Redis.ConsumerGroup),
		zap.String("consumer", cfg.Redis.ConsumerName))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := redisRepo.NewStreamConsumer(redisClient.Client(), cfg.Redis.ReadBlock, log)
	if err := consumer.CreateConsumerGroup(ctx, cfg.Redis.Stream, cfg.Redis.ConsumerGroup, "$"); err != nil {
		log.Fatal("Failed to create consumer group", zap.Error(err))
	}

	messages := consumer.Consume(ctx, cfg.Redis.Stream, cfg.Redis.ConsumerGroup, cfg.Redis.ConsumerName)

	// 4. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("Shutting down consumer...")
		cancel()
	}()

	for msg := range messages {
		for _, s := range msg.Event.Data {
			log.Info("Traffic update",
				zap.Uint64("generation", msg.Event.Generation),
				zap.String("crossing_point", string(s.CrossingPoint)),
				zap.String("direction", string(s.Direction)),
				zap.Int("wait_time", s.WaitTime),
				zap.String("congestion_level", string(s.CongestionLevel)))
		}
		if err := consumer.Ack(ctx, cfg.Redis.Stream, cfg.Redis.ConsumerGroup, msg.ID); err != nil && ctx.Err() == nil {
			log.Warn("Failed to ack message", zap.String("message_id", msg.ID), zap.Error(err))
		}
	}

	log.Info("Consumer stopped")
}
