package repository

import (
	"context"

	"github.com/border-traffic-monitor/internal/domain"
)

// EventPublisher forwards traffic-update events to an external transport.
type EventPublisher interface {
	// Name identifies the relay in logs and metrics
	Name() string

	// Publish отправляет событие
	Publish(ctx context.Context, event *domain.TrafficUpdateEvent) error

	// Close releases the underlying connection.
	Close() error
}
