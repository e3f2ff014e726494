package traffic

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/broadcast"
	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/domain/repository"
	"github.com/border-traffic-monitor/internal/pkg/metrics"
	"github.com/border-traffic-monitor/internal/worker"
)

const defaultRelayTimeout = 5 * time.Second

// RelayWorker подписывается на hub и пересылает события во внешний транспорт.
// Publish failures are logged and counted; they never reach the hub or other subscribers.
type RelayWorker struct {
	*worker.BaseWorker
	hub       *broadcast.Hub
	publisher repository.EventPublisher
	timeout   time.Duration
}

func NewRelayWorker(hub *broadcast.Hub, publisher repository.EventPublisher, timeout time.Duration, logger *zap.Logger) *RelayWorker {
	if timeout <= 0 {
		timeout = defaultRelayTimeout
	}
	return &RelayWorker{
		BaseWorker: worker.NewBaseWorker("relay-"+publisher.Name(), logger),
		hub:        hub,
		publisher:  publisher,
		timeout:    timeout,
	}
}

func (w *RelayWorker) Start(ctx context.Context) error {
	sub := w.hub.Subscribe("")
	defer sub.Close()

	w.Logger().Info("Relay subscribed", zap.String("subscription_id", sub.ID().String()))

	for {
		select {
		case <-w.StopChan():
			w.Logger().Info("Worker stopped", zap.Uint64("dropped", sub.Dropped()))
			return nil

		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-sub.Events():
			if !ok {
				w.Logger().Info("Hub closed, relay exiting")
				return nil
			}
			w.forward(ctx, &ev)
		}
	}
}

func (w *RelayWorker) forward(ctx context.Context, ev *domain.TrafficUpdateEvent) {
	pctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	relay := w.publisher.Name()
	if err := w.publisher.Publish(pctx, ev); err != nil {
		metrics.RelayPublished.WithLabelValues(relay, "failed").Inc()
		w.Logger().Warn("Failed to relay traffic update",
			zap.Uint64("generation", ev.Generation),
			zap.Error(err))
		return
	}
	metrics.RelayPublished.WithLabelValues(relay, "ok").Inc()
}
