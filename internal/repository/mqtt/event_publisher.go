package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/config"
	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/domain/repository"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectQuiesce = 250 // ms
)

type eventPublisher struct {
	client pahomqtt.Client
	topic  string
	qos    byte
	logger *zap.Logger
}

// Connect подключается к брокеру и возвращает publisher
func Connect(cfg *config.MQTTConfig, logger *zap.Logger) (repository.EventPublisher, error) {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.OnConnect = func(pahomqtt.Client) {
		logger.Info("MQTT connected", zap.String("broker", cfg.BrokerURL))
	}
	opts.OnConnectionLost = func(_ pahomqtt.Client, err error) {
		logger.Warn("MQTT connection lost", zap.Error(err))
	}

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("mqtt connection to %s timed out", cfg.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connection failed: %w", err)
	}

	return NewEventPublisher(client, cfg.Topic, byte(cfg.QoS), logger), nil
}

// NewEventPublisher wraps an already connected client.
func NewEventPublisher(client pahomqtt.Client, topic string, qos byte, logger *zap.Logger) repository.EventPublisher {
	return &eventPublisher{
		client: client,
		topic:  topic,
		qos:    qos,
		logger: logger,
	}
}

func (p *eventPublisher) Name() string {
	return "mqtt"
}

func (p *eventPublisher) Publish(ctx context.Context, event *domain.TrafficUpdateEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("mqtt publish to %s: %w", p.topic, ctx.Err())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s: %w", p.topic, err)
	}

	p.logger.Debug("Event published to MQTT",
		zap.String("topic", p.topic),
		zap.Uint64("generation", event.Generation))
	return nil
}

func (p *eventPublisher) Close() error {
	p.client.Disconnect(disconnectQuiesce)
	return nil
}
