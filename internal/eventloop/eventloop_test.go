package eventloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := New()
	go l.Run(context.Background())
	t.Cleanup(func() {
		l.Stop()
		<-l.Done()
	})
	return l
}

func TestLoop_RunsTasksInOrder(t *testing.T) {
	l := startLoop(t)

	var got []int
	for i := 0; i < 100; i++ {
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Do(context.Background(), func() {}))

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoop_TasksNeverOverlap(t *testing.T) {
	l := startLoop(t)

	var (
		running int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Do(context.Background(), func() {
				running++
				if running > maxSeen {
					maxSeen = running
				}
				time.Sleep(time.Millisecond)
				running--
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestLoop_PostFromTask(t *testing.T) {
	l := startLoop(t)

	inner := make(chan struct{})
	require.True(t, l.Post(func() {
		l.Post(func() { close(inner) })
	}))

	select {
	case <-inner:
	case <-time.After(time.Second):
		t.Fatal("task posted from a task did not run")
	}
}

func TestLoop_PostAfterStop(t *testing.T) {
	l := New()
	go l.Run(context.Background())

	l.Stop()
	<-l.Done()

	assert.False(t, l.Post(func() { t.Error("task ran after stop") }))
	assert.ErrorIs(t, l.Do(context.Background(), func() {}), ErrStopped)
}

func TestLoop_ContextCancelStops(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)

	cancel()

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on context cancel")
	}
	assert.False(t, l.Post(func() {}))
}

func TestLoop_DoHonoursContext(t *testing.T) {
	l := startLoop(t)

	block := make(chan struct{})
	require.True(t, l.Post(func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Do(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(block)
}
