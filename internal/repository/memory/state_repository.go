package memory

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/domain/repository"
)

// stateRepository publishes whole immutable snapshots through an atomic pointer.
// Readers never lock; writers take mu so only one replace is in progress.
type stateRepository struct {
	mu      sync.Mutex
	current atomic.Pointer[generation]
	order   map[domain.Route]int
}

type generation struct {
	snapshot *domain.Snapshot
	index    map[domain.Route]int
}

// NewStateRepository creates an empty store (generation 0, no samples).
func NewStateRepository() repository.StateRepository {
	order := make(map[domain.Route]int)
	for i, r := range domain.Routes() {
		order[r] = i
	}

	r := &stateRepository{order: order}
	r.current.Store(&generation{
		snapshot: &domain.Snapshot{Samples: []domain.TrafficSample{}},
		index:    map[domain.Route]int{},
	})
	return r
}

func (r *stateRepository) Current(route domain.Route) (*domain.TrafficSample, bool) {
	g := r.current.Load()
	i, ok := g.index[route]
	if !ok {
		return nil, false
	}
	sample := g.snapshot.Samples[i]
	return &sample, true
}

func (r *stateRepository) Snapshot() *domain.Snapshot {
	return r.current.Load().snapshot
}

func (r *stateRepository) ReplaceAll(samples []domain.TrafficSample, at time.Time) (*domain.Snapshot, error) {
	next := make([]domain.TrafficSample, len(samples))
	copy(next, samples)
	if err := r.check(next); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.publish(next, at), nil
}

func (r *stateRepository) Put(sample domain.TrafficSample, at time.Time) (*domain.Snapshot, error) {
	if err := r.check([]domain.TrafficSample{sample}); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.current.Load()
	next := make([]domain.TrafficSample, 0, len(prev.snapshot.Samples)+1)
	for _, s := range prev.snapshot.Samples {
		if s.Route() != sample.Route() {
			next = append(next, s)
		}
	}
	next = append(next, sample)

	return r.publish(next, at), nil
}

func (r *stateRepository) check(samples []domain.TrafficSample) error {
	seen := make(map[domain.Route]bool, len(samples))
	for _, s := range samples {
		route := s.Route()
		if _, ok := r.order[route]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownRoute, route)
		}
		if seen[route] {
			return fmt.Errorf("duplicate sample for %s", route)
		}
		seen[route] = true
	}
	return nil
}

// publish must be called with mu held.
func (r *stateRepository) publish(samples []domain.TrafficSample, at time.Time) *domain.Snapshot {
	slices.SortFunc(samples, func(a, b domain.TrafficSample) int {
		return r.order[a.Route()] - r.order[b.Route()]
	})

	index := make(map[domain.Route]int, len(samples))
	for i, s := range samples {
		index[s.Route()] = i
	}

	snap := &domain.Snapshot{
		Generation: r.current.Load().snapshot.Generation + 1,
		UpdatedAt:  at,
		Samples:    samples,
	}
	r.current.Store(&generation{snapshot: snap, index: index})
	return snap
}
