package traffic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/broadcast"
	"github.com/border-traffic-monitor/internal/domain"
)

func snapshotOf(generation uint64) *domain.Snapshot {
	return &domain.Snapshot{
		Generation: generation,
		UpdatedAt:  refreshAt,
		Samples: []domain.TrafficSample{{
			CrossingPoint: domain.CrossingWoodlands,
			Direction:     domain.DirectionMalaysiaToSingapore,
			WaitTime:      30,
		}},
	}
}

func TestRelayWorker_ForwardsAndIsolatesFailures(t *testing.T) {
	hub := broadcast.NewHub(8, zap.NewNop())
	defer hub.Close()

	forwarded := make(chan uint64, 4)
	pub := &mockEventPublisher{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev *domain.TrafficUpdateEvent) bool {
		return ev.Generation == 1
	})).Return(errors.New("broker unavailable")).Run(func(args mock.Arguments) {
		forwarded <- args.Get(1).(*domain.TrafficUpdateEvent).Generation
	})
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev *domain.TrafficUpdateEvent) bool {
		return ev.Generation == 2
	})).Return(nil).Run(func(args mock.Arguments) {
		forwarded <- args.Get(1).(*domain.TrafficUpdateEvent).Generation
	})

	w := NewRelayWorker(hub, pub, time.Second, zap.NewNop())
	assert.Equal(t, "relay-mock", w.Name())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	// a second, unrelated subscriber still gets every event
	other := hub.Subscribe("")
	defer other.Close()

	hub.Publish(snapshotOf(1))
	hub.Publish(snapshotOf(2))

	for _, want := range []uint64{1, 2} {
		select {
		case got := <-forwarded:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("generation %d not forwarded", want)
		}
	}
	assert.Len(t, other.Events(), 2)

	require.NoError(t, w.Stop())
	assert.NoError(t, <-done)
	pub.AssertExpectations(t)
}

func TestRelayWorker_ExitsWhenHubCloses(t *testing.T) {
	hub := broadcast.NewHub(8, zap.NewNop())
	w := NewRelayWorker(hub, &mockEventPublisher{}, 0, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	hub.Close()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not exit")
	}
}
