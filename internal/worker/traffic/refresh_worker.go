package traffic

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/domain/repository"
	"github.com/border-traffic-monitor/internal/pkg/metrics"
	"github.com/border-traffic-monitor/internal/worker"
)

// SampleGenerator produces one live sample per route.
type SampleGenerator interface {
	Generate(route domain.Route, at time.Time) (*domain.TrafficSample, error)
}

// SnapshotPublisher receives every committed generation.
type SnapshotPublisher interface {
	Publish(snap *domain.Snapshot) int
}

// RefreshWorker - периодически генерирует выборки для всех маршрутов и публикует новое поколение
type RefreshWorker struct {
	*worker.BaseWorker
	generator SampleGenerator
	store     repository.StateRepository
	publisher SnapshotPublisher
	interval  time.Duration
	now       func() time.Time
}

// NewRefreshWorker создает воркер обновления. now defaults to time.Now.
func NewRefreshWorker(
	generator SampleGenerator,
	store repository.StateRepository,
	publisher SnapshotPublisher,
	interval time.Duration,
	now func() time.Time,
	logger *zap.Logger,
) *RefreshWorker {
	if now == nil {
		now = time.Now
	}
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("traffic-refresh", logger),
		generator:  generator,
		store:      store,
		publisher:  publisher,
		interval:   interval,
		now:        now,
	}
}

// Start runs one refresh immediately, then one per interval.
func (w *RefreshWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting refresh worker", zap.Duration("interval", w.interval))

	return w.RunEvery(ctx, w.interval, true, func(context.Context) {
		_, _ = w.Refresh()
	})
}

// Refresh generates a sample for every route and commits them as one generation.
// On any generation failure the store keeps its previous contents and nothing is published.
func (w *RefreshWorker) Refresh() (*domain.Snapshot, error) {
	started := time.Now()
	at := w.now()

	routes := domain.Routes()
	samples := make([]domain.TrafficSample, 0, len(routes))
	for _, route := range routes {
		sample, err := w.generator.Generate(route, at)
		if err != nil {
			metrics.RefreshTotal.WithLabelValues("failed").Inc()
			w.Logger().Error("Failed to generate sample, keeping previous state",
				zap.String("route", route.String()),
				zap.Error(err))
			return nil, fmt.Errorf("generate %s: %w", route, err)
		}
		samples = append(samples, *sample)
	}

	snap, err := w.store.ReplaceAll(samples, at)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("failed").Inc()
		w.Logger().Error("Failed to replace state", zap.Error(err))
		return nil, err
	}

	delivered := w.publisher.Publish(snap)

	metrics.RefreshTotal.WithLabelValues("ok").Inc()
	metrics.RefreshDuration.Observe(time.Since(started).Seconds())
	metrics.SnapshotGeneration.Set(float64(snap.Generation))
	for _, s := range snap.Samples {
		metrics.WaitTimeMinutes.WithLabelValues(string(s.CrossingPoint), string(s.Direction)).Set(float64(s.WaitTime))
	}

	w.Logger().Debug("Traffic data refreshed",
		zap.Uint64("generation", snap.Generation),
		zap.Int("samples", len(snap.Samples)),
		zap.Int("subscribers", delivered),
		zap.Duration("duration", time.Since(started)))

	return snap, nil
}
