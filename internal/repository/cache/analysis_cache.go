package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/domain/repository"
)

type analysisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewAnalysisCache хранит последний анализ пиков в Redis, ключ peak:<crossing>:<direction>
func NewAnalysisCache(redis *Redis) repository.AnalysisCache {
	return &analysisCache{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func peakKey(route domain.Route) string {
	return fmt.Sprintf("peak:%s:%s", route.CrossingPoint, route.Direction)
}

func (r *analysisCache) get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *analysisCache) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// GetPeakAnalysis получает анализ из кеша
func (r *analysisCache) GetPeakAnalysis(ctx context.Context, route domain.Route) (*domain.PeakAnalysis, error) {
	data, err := r.get(ctx, peakKey(route))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var analysis domain.PeakAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		r.logger.Error("Failed to unmarshal peak analysis from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal peak analysis: %w", err)
	}

	return &analysis, nil
}

// SetPeakAnalysis сохраняет анализ в кеше
func (r *analysisCache) SetPeakAnalysis(ctx context.Context, analysis *domain.PeakAnalysis, ttl time.Duration) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		r.logger.Error("Failed to marshal peak analysis", zap.Error(err))
		return fmt.Errorf("marshal peak analysis: %w", err)
	}

	return r.set(ctx, peakKey(analysis.Route), data, ttl)
}
