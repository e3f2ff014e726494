package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBaseWorker_StopIsIdempotent(t *testing.T) {
	w := NewBaseWorker("test", zap.NewNop())
	assert.Equal(t, "test", w.Name())
	assert.False(t, w.IsStopped())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestBaseWorker_RunEveryImmediateAndStop(t *testing.T) {
	w := NewBaseWorker("ticker", zap.NewNop())
	var runs atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- w.RunEvery(context.Background(), 10*time.Millisecond, true, func(context.Context) {
			runs.Add(1)
		})
	}()

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RunEvery did not return after Stop")
	}

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestBaseWorker_RunEveryNeverOverlaps(t *testing.T) {
	w := NewBaseWorker("slow", zap.NewNop())
	var active, maxActive atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.RunEvery(ctx, time.Millisecond, false, func(context.Context) {
			n := active.Add(1)
			if n > maxActive.Load() {
				maxActive.Store(n)
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), maxActive.Load())
}

func TestBaseWorker_StopDoesNotInterruptRunningAction(t *testing.T) {
	w := NewBaseWorker("inflight", zap.NewNop())
	started := make(chan struct{})
	var completed atomic.Bool

	done := make(chan error, 1)
	go func() {
		done <- w.RunEvery(context.Background(), time.Hour, true, func(context.Context) {
			close(started)
			time.Sleep(20 * time.Millisecond)
			completed.Store(true)
		})
	}()

	<-started
	assert.NoError(t, w.Stop())
	assert.NoError(t, <-done)
	assert.True(t, completed.Load())
}
