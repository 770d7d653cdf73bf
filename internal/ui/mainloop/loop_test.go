package mainloop

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/logging"
)

func startLoop(t *testing.T) (*Loop, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console")))
	l := New()
	go l.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
	return l, ctx
}

func TestLoopRunsPostedFunctionsInOrder(t *testing.T) {
	l, ctx := startLoop(t)

	var mu sync.Mutex
	var got []int
	for i := range 50 {
		l.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	require.NoError(t, l.Do(ctx, func() {}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoopRunsOneTaskAtATime(t *testing.T) {
	l, ctx := startLoop(t)

	var active, overlap atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				l.Post(func() {
					if active.Add(1) > 1 {
						overlap.Store(1)
					}
					active.Add(-1)
				})
			}
		}()
	}
	wg.Wait()
	require.NoError(t, l.Do(ctx, func() {}))
	assert.Zero(t, overlap.Load())
}

func TestLoopAfterFunc(t *testing.T) {
	l, _ := startLoop(t)

	fired := make(chan struct{})
	l.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoopAfterFuncStop(t *testing.T) {
	l, ctx := startLoop(t)

	var ran atomic.Bool
	stop := l.AfterFunc(30*time.Millisecond, func() { ran.Store(true) })
	assert.True(t, stop())
	assert.False(t, stop(), "second stop reports nothing left to cancel")

	time.Sleep(60 * time.Millisecond)
	require.NoError(t, l.Do(ctx, func() {}))
	assert.False(t, ran.Load())
}

func TestLoopAfterFuncStopAfterFire(t *testing.T) {
	l, ctx := startLoop(t)

	fired := make(chan struct{})
	stop := l.AfterFunc(time.Millisecond, func() { close(fired) })
	<-fired
	require.NoError(t, l.Do(ctx, func() {}))
	assert.False(t, stop())
}

func TestLoopSurvivesPanickingTask(t *testing.T) {
	l, ctx := startLoop(t)

	l.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, l.Do(ctx, func() { ran = true }))
	assert.True(t, ran)
}

func TestLoopStop(t *testing.T) {
	l, ctx := startLoop(t)

	l.Stop()
	<-l.Done()

	var ran atomic.Bool
	l.Post(func() { ran.Store(true) })
	assert.ErrorIs(t, l.Do(ctx, func() {}), ErrStopped)
	assert.False(t, ran.Load())
}
