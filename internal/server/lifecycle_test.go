package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// mockService blocks in Start until Stop, unless startFn overrides it.
type mockService struct {
	started atomic.Bool
	stopped atomic.Bool
	once    sync.Once
	quit    chan struct{}
	startFn func() error
}

func (m *mockService) init() { m.once.Do(func() { m.quit = make(chan struct{}) }) }

func (m *mockService) Start() error {
	m.init()
	m.started.Store(true)
	if m.startFn != nil {
		return m.startFn()
	}
	<-m.quit
	return nil
}

func (m *mockService) Stop() {
	m.init()
	if m.stopped.CompareAndSwap(false, true) {
		close(m.quit)
	}
}

func TestLifecycleStartsAndStopsServices(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	telnet, health := &mockService{}, &mockService{}
	lc.Add("telnet", telnet)
	lc.Add("db-health", health)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	require.Eventually(t, func() bool { return telnet.started.Load() && health.started.Load() },
		2*time.Second, 10*time.Millisecond)
	assert.False(t, telnet.stopped.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
	assert.True(t, telnet.stopped.Load())
	assert.True(t, health.stopped.Load())
}

func TestFuncService(t *testing.T) {
	var calls []string
	svc := &FuncService{
		StartFn: func() error { calls = append(calls, "start"); return nil },
		StopFn:  func() { calls = append(calls, "stop") },
	}
	require.NoError(t, svc.Start())
	svc.Stop()
	assert.Equal(t, []string{"start", "stop"}, calls)
}

func TestLifecycleReturnsFirstServiceError(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	healthy := &mockService{}
	boom := errors.New("bind failed")
	lc.Add("healthy", healthy)
	lc.Add("broken", &mockService{startFn: func() error { return boom }})

	done := make(chan error, 1)
	go func() { done <- lc.Run(context.Background()) }()

	select {
	case err := <-done:
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "service broken")
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not stop after a failure")
	}
	assert.True(t, healthy.stopped.Load())
}

func TestLifecycleStopsInReverseOrder(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	var mu sync.Mutex
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		quit := make(chan struct{})
		lc.Add(name, &FuncService{
			StartFn: func() error { <-quit; return nil },
			StopFn: func() {
				mu.Lock()
				order = append(order, name)
				mu.Unlock()
				close(quit)
			},
		})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, lc.Run(ctx))
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestLifecycleStopTimeout(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	lc.SetStopTimeout(50 * time.Millisecond)
	release := make(chan struct{})
	defer close(release)
	stuck := &FuncService{
		StartFn: func() error { <-release; return nil },
		StopFn:  func() { <-release },
	}
	after := &mockService{}
	lc.Add("after", after)
	lc.Add("stuck", stuck)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	require.NoError(t, lc.Run(ctx))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, after.stopped.Load())
}
