package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/config"
	"github.com/border-traffic-monitor/internal/delivery/http/handler"
	"github.com/border-traffic-monitor/internal/delivery/http/middleware"
	"github.com/border-traffic-monitor/internal/pkg/utils"
	"github.com/border-traffic-monitor/internal/usecase"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	trafficHandler *handler.TrafficHandler
	streamHandler  *handler.StreamHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	trafficHandler *handler.TrafficHandler,
	streamHandler *handler.StreamHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Border Traffic Monitor",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		trafficHandler: trafficHandler,
		streamHandler:  streamHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.AllowedOrigins()))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.trafficHandler.Health)

	op := func(o usecase.Operation, h fiber.Handler) fiber.Handler {
		return middleware.Instrument(string(o), h)
	}

	traffic := api.Group("/traffic")
	traffic.Get("/status", op(usecase.OpCurrentStatusAll, s.trafficHandler.GetAllStatus))
	traffic.Get("/status/:crossingPoint/:direction", op(usecase.OpCurrentStatus, s.trafficHandler.GetStatus))
	traffic.Get("/history/:crossingPoint/:direction", op(usecase.OpHistory, s.trafficHandler.GetHistory))
	traffic.Get("/stats/:crossingPoint/:direction", op(usecase.OpStatistics, s.trafficHandler.GetStatistics))
	traffic.Get("/peak-times/:crossingPoint/:direction", op(usecase.OpPeakTimes, s.trafficHandler.GetPeakTimes))
	traffic.Get("/peak-analysis/:crossingPoint/:direction", op(usecase.OpPeakAnalysis, s.trafficHandler.GetPeakAnalysis))
	traffic.Post("/manual-entry", op(usecase.OpManualEntry, s.trafficHandler.ManualEntry))
	traffic.Get("/data-sources", op(usecase.OpDataSources, s.trafficHandler.DataSources))

	// Live updates
	traffic.Get("/ws", op(usecase.OpSubscribe, s.streamHandler.Upgrade), s.streamHandler.Stream())
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			errCode = utils.StatusCode(code)
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Success: false,
			Error:   errCode,
			Message: err.Error(),
		})
	}
}
