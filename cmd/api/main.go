package main

// @title Border Traffic Monitor API
// @version 1.0.0
// @description Мониторинг времени ожидания на пограничных переходах Малайзия - Сингапур.
// @description
// @description Основные возможности:
// @description - Текущее состояние по каждому маршруту (переход x направление)
// @description - Синтетическая история, статистика и пиковые периоды
// @description - Ручной ввод данных
// @description - Live обновления по websocket, Redis pub/sub + stream и MQTT

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/border-traffic-monitor/docs"
	"github.com/border-traffic-monitor/internal/broadcast"
	"github.com/border-traffic-monitor/internal/config"
	httpDelivery "github.com/border-traffic-monitor/internal/delivery/http"
	"github.com/border-traffic-monitor/internal/delivery/http/handler"
	"github.com/border-traffic-monitor/internal/domain/repository"
	"github.com/border-traffic-monitor/internal/pkg/logger"
	"github.com/border-traffic-monitor/internal/repository/cache"
	"github.com/border-traffic-monitor/internal/repository/memory"
	"github.com/border-traffic-monitor/internal/repository/mqtt"
	redisRepo "github.com/border-traffic-monitor/internal/repository/redis"
	"github.com/border-traffic-monitor/internal/simulation"
	"github.com/border-traffic-monitor/internal/usecase"
	"github.com/border-traffic-monitor/internal/worker"
	"github.com/border-traffic-monitor/internal/worker/traffic"
)

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

	log.Info("Starting Border Traffic Monitor")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Duration("refresh_interval", cfg.Monitor.RefreshInterval),
		zap.Duration("peak_analysis_interval", cfg.Monitor.PeakAnalysisInterval),
		zap.String("timezone", cfg.Monitor.Timezone),
	)

	// 3. Engine
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone", zap.Error(err))
	}

	catalog, err := simulation.LoadCatalog(cfg.Monitor.PatternFile)
	if err != nil {
		log.Fatal("Failed to load pattern catalog", zap.Error(err))
	}

	rnd := simulation.NewRandSource(cfg.Monitor.RandomSeed)
	generator := simulation.NewGenerator(catalog, rnd, loc)
	analyzer := simulation.NewAnalyzer(generator, rnd, nil)
	store := memory.NewStateRepository()
	hub := broadcast.NewHub(cfg.Broadcast.SubscriberBuffer, log)

	// 4. Optional Redis: analysis cache + relay
	var (
		analysisCache repository.AnalysisCache = memory.NewAnalysisCache()
		publishers    []repository.EventPublisher
		redisClient   *cache.Redis
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		analysisCache = cache.NewAnalysisCache(redisClient)
		publishers = append(publishers, redisRepo.NewEventPublisher(
			redisClient.Client(),
			cfg.Redis.LiveChannel,
			cfg.Redis.Stream,
			cfg.Redis.StreamMaxLen,
			log,
		))
	}

	// 5. Optional MQTT relay
	if cfg.MQTT.Enabled {
		mqttPublisher, err := mqtt.Connect(&cfg.MQTT, log)
		if err != nil {
			log.Fatal("Failed to connect to MQTT broker", zap.Error(err))
		}
		publishers = append(publishers, mqttPublisher)
	}

	// 6. Workers
	workerManager := worker.NewWorkerManager(log, cfg.Worker.ShutdownTimeout)
	workerManager.Register(traffic.NewRefreshWorker(
		generator, store, hub, cfg.Monitor.RefreshInterval, nil, log,
	))
	workerManager.Register(traffic.NewPeakAnalysisWorker(
		analyzer, store, analysisCache,
		cfg.Monitor.PeakAnalysisDays, cfg.Cache.AnalysisTTL, cfg.Monitor.PeakAnalysisInterval,
		nil, log,
	))
	for _, p := range publishers {
		workerManager.Register(traffic.NewRelayWorker(hub, p, 0, log))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 7. Use cases and HTTP
	trafficUC := usecase.NewTrafficUseCase(store, analyzer, generator, hub, analysisCache, nil, log)

	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewTrafficHandler(trafficUC, log),
		handler.NewStreamHandler(trafficUC, log),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.Int("relays", len(publishers)),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Stop timers first so no new generation is published into a closing hub
	if err := workerManager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}
	cancel()
	hub.Close()

	for _, p := range publishers {
		if err := p.Close(); err != nil {
			log.Error("Failed to close relay", zap.String("relay", p.Name()), zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
