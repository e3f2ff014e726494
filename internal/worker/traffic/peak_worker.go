package traffic

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/domain/repository"
	"github.com/border-traffic-monitor/internal/pkg/metrics"
	"github.com/border-traffic-monitor/internal/worker"
)

// PeakAnalyzer ranks peak (day, hour) cells for a route.
type PeakAnalyzer interface {
	PeakTimes(route domain.Route, days int) ([]domain.PeakTimeEntry, error)
}

// PeakAnalysisWorker - периодический анализ пиков по маршрутам, имеющим текущие данные
type PeakAnalysisWorker struct {
	*worker.BaseWorker
	analyzer PeakAnalyzer
	store    repository.StateRepository
	cache    repository.AnalysisCache
	days     int
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewPeakAnalysisWorker(
	analyzer PeakAnalyzer,
	store repository.StateRepository,
	cache repository.AnalysisCache,
	days int,
	ttl time.Duration,
	interval time.Duration,
	now func() time.Time,
	logger *zap.Logger,
) *PeakAnalysisWorker {
	if now == nil {
		now = time.Now
	}
	return &PeakAnalysisWorker{
		BaseWorker: worker.NewBaseWorker("peak-analysis", logger),
		analyzer:   analyzer,
		store:      store,
		cache:      cache,
		days:       days,
		ttl:        ttl,
		interval:   interval,
		now:        now,
	}
}

// Start runs the analysis once per interval. The first run happens after one interval.
func (w *PeakAnalysisWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting peak analysis worker",
		zap.Duration("interval", w.interval),
		zap.Int("days", w.days))

	return w.RunEvery(ctx, w.interval, false, func(ctx context.Context) {
		_ = w.Analyze(ctx)
	})
}

// Analyze runs the peak analysis for every route present in the current snapshot, concurrently.
func (w *PeakAnalysisWorker) Analyze(ctx context.Context) error {
	snap := w.store.Snapshot()
	if len(snap.Samples) == 0 {
		w.Logger().Debug("No current data, skipping peak analysis")
		return nil
	}

	analyzedAt := w.now()
	g, gctx := errgroup.WithContext(ctx)
	for _, sample := range snap.Samples {
		route := sample.Route()
		g.Go(func() error {
			return w.analyzeRoute(gctx, route, analyzedAt)
		})
	}

	if err := g.Wait(); err != nil {
		metrics.PeakAnalysisTotal.WithLabelValues("failed").Inc()
		w.Logger().Error("Peak analysis failed", zap.Error(err))
		return err
	}

	metrics.PeakAnalysisTotal.WithLabelValues("ok").Inc()
	return nil
}

func (w *PeakAnalysisWorker) analyzeRoute(ctx context.Context, route domain.Route, at time.Time) error {
	entries, err := w.analyzer.PeakTimes(route, w.days)
	if err != nil {
		return fmt.Errorf("peak times %s: %w", route, err)
	}

	analysis := &domain.PeakAnalysis{
		Route:      route,
		Days:       w.days,
		PeakTimes:  entries,
		AnalyzedAt: at,
	}
	if err := w.cache.SetPeakAnalysis(ctx, analysis, w.ttl); err != nil {
		return fmt.Errorf("cache peak analysis %s: %w", route, err)
	}

	metrics.PeakPeriods.WithLabelValues(string(route.CrossingPoint), string(route.Direction)).Set(float64(len(entries)))
	w.Logger().Info("Peak periods identified",
		zap.String("crossing_point", string(route.CrossingPoint)),
		zap.String("direction", string(route.Direction)),
		zap.Int("peak_periods", len(entries)))
	return nil
}
