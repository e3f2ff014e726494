package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/domain"
	redisRepo "github.com/border-traffic-monitor/internal/repository/redis"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func testEvent(generation uint64) *domain.TrafficUpdateEvent {
	return &domain.TrafficUpdateEvent{
		Type:       domain.EventTrafficUpdate,
		Generation: generation,
		Timestamp:  time.Date(2026, time.October, 14, 8, 0, 0, 0, time.UTC),
		Data: []domain.TrafficSample{{
			CrossingPoint:   domain.CrossingWoodlands,
			Direction:       domain.DirectionMalaysiaToSingapore,
			WaitTime:        42,
			CongestionLevel: domain.CongestionHigh,
		}},
	}
}

func TestEventPublisher_PublishesToChannel(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "traffic:live")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := redisRepo.NewEventPublisher(client, "traffic:live", "", 0, zap.NewNop())
	assert.Equal(t, "redis", pub.Name())
	require.NoError(t, pub.Publish(ctx, testEvent(3)))

	select {
	case msg := <-sub.Channel():
		var event domain.TrafficUpdateEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, domain.EventTrafficUpdate, event.Type)
		assert.Equal(t, uint64(3), event.Generation)
		require.Len(t, event.Data, 1)
		assert.Equal(t, 42, event.Data[0].WaitTime)
	case <-time.After(2 * time.Second):
		t.Fatal("no message on channel")
	}
}

func TestEventPublisher_AppendsToStream(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	pub := redisRepo.NewEventPublisher(client, "", "stream:traffic:updates", 1000, zap.NewNop())
	for g := uint64(1); g <= 3; g++ {
		require.NoError(t, pub.Publish(ctx, testEvent(g)))
	}

	entries, err := client.XRange(ctx, "stream:traffic:updates", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	data, ok := entries[2].Values["data"].(string)
	require.True(t, ok)
	var event domain.TrafficUpdateEvent
	require.NoError(t, json.Unmarshal([]byte(data), &event))
	assert.Equal(t, uint64(3), event.Generation)
}

func TestEventPublisher_ConnectionError(t *testing.T) {
	srv, client := newTestClient(t)
	srv.Close()

	pub := redisRepo.NewEventPublisher(client, "traffic:live", "stream:traffic:updates", 0, zap.NewNop())
	assert.Error(t, pub.Publish(context.Background(), testEvent(1)))
	assert.NoError(t, pub.Close())
}
