package handler

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/broadcast"
	"github.com/border-traffic-monitor/internal/pkg/utils"
	"github.com/border-traffic-monitor/internal/usecase"
	"github.com/border-traffic-monitor/internal/usecase/dto"
)

const (
	scopeKey           = "subscription_scope"
	joinMonitoringType = "join-monitoring"
)

// StreamHandler - websocket доставка traffic-update событий
type StreamHandler struct {
	trafficUC *usecase.TrafficUseCase
	logger    *zap.Logger
}

// NewStreamHandler создает новый экземпляр StreamHandler
func NewStreamHandler(trafficUC *usecase.TrafficUseCase, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		trafficUC: trafficUC,
		logger:    logger,
	}
}

// Upgrade godoc
// @Summary Live traffic updates
// @Description Websocket; each message is a traffic-update event. Clients may send {"type":"join-monitoring","crossingPoint":"..."} to change scope.
// @Tags Traffic
// @Param crossingPoint query string false "Only receive samples for this crossing"
// @Success 101
// @Failure 404 {object} utils.ErrorResponse
// @Failure 426 {object} utils.ErrorResponse
// @Router /api/v1/traffic/ws [get]
func (h *StreamHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	// подписка создаётся только после успешного handshake, в serve
	scope, err := h.trafficUC.SubscriptionScope(c.Query("crossingPoint"))
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	c.Locals(scopeKey, string(scope))
	return c.Next()
}

// Stream returns the websocket handler mounted after Upgrade.
func (h *StreamHandler) Stream() fiber.Handler {
	return websocket.New(h.serve)
}

func (h *StreamHandler) serve(conn *websocket.Conn) {
	scope, _ := conn.Locals(scopeKey).(string)
	sub, err := h.trafficUC.Subscribe(scope)
	if err != nil {
		h.logger.Warn("Websocket subscription rejected", zap.String("crossing_point", scope), zap.Error(err))
		_ = conn.Close()
		return
	}
	defer sub.Close()

	log := h.logger.With(zap.String("subscription_id", sub.ID().String()))
	log.Debug("Websocket client connected")

	// текущее состояние сразу после подключения
	if initial, ok := h.trafficUC.CurrentEvent(sub.Crossing()); ok {
		if err := conn.WriteJSON(initial); err != nil {
			log.Debug("Websocket write failed", zap.Error(err))
			return
		}
	}

	// Read pump: detect client disconnect and handle scope changes
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			h.handleClientMessage(sub, raw, log)
		}
	}()

	for {
		select {
		case <-done:
			log.Debug("Websocket client disconnected", zap.Uint64("dropped", sub.Dropped()))
			return
		case ev, ok := <-sub.Events():
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Debug("Websocket write failed", zap.Error(err))
				return
			}
		}
	}
}

func (h *StreamHandler) handleClientMessage(sub *broadcast.Subscription, raw []byte, log *zap.Logger) {
	var msg dto.SubscribeMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Debug("Ignoring malformed client message", zap.Error(err))
		return
	}
	if msg.Type != joinMonitoringType {
		return
	}
	if err := h.trafficUC.Rescope(sub, msg.CrossingPoint); err != nil {
		log.Warn("Rejected subscription scope", zap.String("crossing_point", msg.CrossingPoint), zap.Error(err))
		return
	}
	log.Debug("Subscription rescoped", zap.String("crossing_point", msg.CrossingPoint))
}
