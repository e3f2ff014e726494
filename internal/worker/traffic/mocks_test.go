package traffic

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/border-traffic-monitor/internal/domain"
)

type mockAnalysisCache struct {
	mock.Mock
}

func (m *mockAnalysisCache) SetPeakAnalysis(ctx context.Context, analysis *domain.PeakAnalysis, ttl time.Duration) error {
	args := m.Called(ctx, analysis, ttl)
	return args.Error(0)
}

func (m *mockAnalysisCache) GetPeakAnalysis(ctx context.Context, route domain.Route) (*domain.PeakAnalysis, error) {
	args := m.Called(ctx, route)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeakAnalysis), args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Name() string {
	return "mock"
}

func (m *mockEventPublisher) Publish(ctx context.Context, event *domain.TrafficUpdateEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	return nil
}

type mockPeakAnalyzer struct {
	mock.Mock
}

func (m *mockPeakAnalyzer) PeakTimes(route domain.Route, days int) ([]domain.PeakTimeEntry, error) {
	args := m.Called(route, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeakTimeEntry), args.Error(1)
}

// failingGenerator fails for one route and delegates otherwise.
type failingGenerator struct {
	inner SampleGenerator
	fail  domain.Route
	err   error
}

func (g *failingGenerator) Generate(route domain.Route, at time.Time) (*domain.TrafficSample, error) {
	if route == g.fail {
		return nil, g.err
	}
	return g.inner.Generate(route, at)
}

type countingPublisher struct {
	snapshots []*domain.Snapshot
}

func (p *countingPublisher) Publish(snap *domain.Snapshot) int {
	p.snapshots = append(p.snapshots, snap)
	return 1
}
