package memory

import (
	"context"
	"sync"
	"time"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/domain/repository"
)

type cachedAnalysis struct {
	analysis  *domain.PeakAnalysis
	expiresAt time.Time
}

// analysisCache - in-process fallback used when Redis is disabled
type analysisCache struct {
	mu      sync.RWMutex
	entries map[domain.Route]cachedAnalysis
	now     func() time.Time
}

// NewAnalysisCache creates an in-process analysis cache.
func NewAnalysisCache() repository.AnalysisCache {
	return newAnalysisCache(time.Now)
}

func newAnalysisCache(now func() time.Time) *analysisCache {
	return &analysisCache{
		entries: make(map[domain.Route]cachedAnalysis),
		now:     now,
	}
}

func (c *analysisCache) SetPeakAnalysis(_ context.Context, analysis *domain.PeakAnalysis, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := cachedAnalysis{analysis: analysis}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[analysis.Route] = entry
	return nil
}

func (c *analysisCache) GetPeakAnalysis(_ context.Context, route domain.Route) (*domain.PeakAnalysis, error) {
	c.mu.RLock()
	entry, ok := c.entries[route]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		return nil, nil
	}
	return entry.analysis, nil
}
