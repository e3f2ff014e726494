package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/border-traffic-monitor/internal/domain"
)

func TestAnalysisCache_SetGetExpire(t *testing.T) {
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	cache := newAnalysisCache(func() time.Time { return now })
	ctx := context.Background()
	route := domain.Routes()[0]

	miss, err := cache.GetPeakAnalysis(ctx, route)
	require.NoError(t, err)
	assert.Nil(t, miss)

	analysis := &domain.PeakAnalysis{Route: route, Days: 7, AnalyzedAt: now}
	require.NoError(t, cache.SetPeakAnalysis(ctx, analysis, time.Minute))

	got, err := cache.GetPeakAnalysis(ctx, route)
	require.NoError(t, err)
	assert.Equal(t, analysis, got)

	now = now.Add(time.Minute)
	expired, err := cache.GetPeakAnalysis(ctx, route)
	require.NoError(t, err)
	assert.Nil(t, expired)
}
