package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/config"
	"github.com/border-traffic-monitor/internal/domain"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	srv := miniredis.RunT(t)
	port, err := strconv.Atoi(srv.Port())
	require.NoError(t, err)

	r, err := NewRedis(&config.RedisConfig{Host: srv.Host(), Port: port}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return srv, r
}

var tuasOutbound = domain.Route{
	CrossingPoint: domain.CrossingTuas,
	Direction:     domain.DirectionSingaporeToMalaysia,
}

func TestNewRedis_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	host := srv.Host()
	port, err := strconv.Atoi(srv.Port())
	require.NoError(t, err)
	// после Close адрес у miniredis уже недоступен
	srv.Close()

	_, err = NewRedis(&config.RedisConfig{Host: host, Port: port}, zap.NewNop())
	assert.Error(t, err)
}

func TestAnalysisCache_RoundTrip(t *testing.T) {
	srv, r := newTestRedis(t)
	cache := NewAnalysisCache(r)
	ctx := context.Background()

	require.NoError(t, r.Health(ctx))

	miss, err := cache.GetPeakAnalysis(ctx, tuasOutbound)
	require.NoError(t, err)
	assert.Nil(t, miss)

	analysis := &domain.PeakAnalysis{
		Route: tuasOutbound,
		Days:  7,
		PeakTimes: []domain.PeakTimeEntry{{
			Hour: 18, DayOfWeek: time.Friday, DayName: "Friday",
			AvgWaitTime: 52.3, Count: 12, MaxWaitTime: 78, Severity: domain.SeverityHigh,
		}},
		AnalyzedAt: time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, cache.SetPeakAnalysis(ctx, analysis, 15*time.Minute))
	assert.True(t, srv.Exists("peak:tuas:singapore-to-malaysia"))
	assert.Equal(t, 15*time.Minute, srv.TTL("peak:tuas:singapore-to-malaysia"))

	got, err := cache.GetPeakAnalysis(ctx, tuasOutbound)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, analysis.Route, got.Route)
	assert.Equal(t, analysis.PeakTimes, got.PeakTimes)
	assert.True(t, analysis.AnalyzedAt.Equal(got.AnalyzedAt))

	srv.FastForward(16 * time.Minute)
	expired, err := cache.GetPeakAnalysis(ctx, tuasOutbound)
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestAnalysisCache_CorruptEntry(t *testing.T) {
	srv, r := newTestRedis(t)
	require.NoError(t, srv.Set("peak:tuas:singapore-to-malaysia", "{not json"))

	_, err := NewAnalysisCache(r).GetPeakAnalysis(context.Background(), tuasOutbound)
	assert.Error(t, err)
}
