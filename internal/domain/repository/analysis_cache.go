package repository

import (
	"context"
	"time"

	"github.com/border-traffic-monitor/internal/domain"
)

// AnalysisCache хранит результат последнего периодического анализа пиков
type AnalysisCache interface {
	// SetPeakAnalysis сохраняет анализ с TTL
	SetPeakAnalysis(ctx context.Context, analysis *domain.PeakAnalysis, ttl time.Duration) error

	// GetPeakAnalysis returns nil, nil on a cache miss.
	GetPeakAnalysis(ctx context.Context, route domain.Route) (*domain.PeakAnalysis, error)
}
