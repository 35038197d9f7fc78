package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/testutil"
	"github.com/leapstack-labs/editable/internal/ui/notifier"
	"github.com/leapstack-labs/editable/pkg/core"
)

type fakeLoader struct {
	mu     sync.Mutex
	models map[string]core.Model
	err    error
	calls  []string
	forced []bool
}

func (f *fakeLoader) GetData(ctx context.Context, path string, forceReload bool) (core.Model, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	f.forced = append(f.forced, forceReload)
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.models[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", modelstore.ErrNotFound, path)
	}
	return m.Clone(), nil
}

type deliveries struct {
	mu  sync.Mutex
	got []core.Model
}

func (d *deliveries) deliver(m core.Model) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.got = append(d.got, m)
}

func (d *deliveries) all() []core.Model {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]core.Model(nil), d.got...)
}

func TestUpdater_UpdateModel(t *testing.T) {
	tests := []struct {
		name        string
		models      map[string]core.Model
		loadErr     error
		req         core.UpdateRequest
		wantDeliver []core.Model
		wantEvent   bool
		wantLog     string
	}{
		{
			name:        "delivers loaded model",
			models:      map[string]core.Model{"/p": {"title": "Hi"}},
			req:         core.UpdateRequest{Path: "/p"},
			wantDeliver: []core.Model{{"title": "Hi"}},
		},
		{
			name:   "empty model is not delivered",
			models: map[string]core.Model{"/p": {}},
			req:    core.UpdateRequest{Path: "/p"},
		},
		{
			name: "missing model is not delivered",
			req:  core.UpdateRequest{Path: "/missing"},
		},
		{
			name:    "load failure is logged, not delivered",
			loadErr: errors.New("upstream down"),
			req:     core.UpdateRequest{Path: "/p"},
			wantLog: "upstream down",
		},
		{
			name:        "editor mode with page path pings the editor",
			models:      map[string]core.Model{"/p": {"title": "Hi"}},
			req:         core.UpdateRequest{Path: "/p", IsInEditor: true, PagePath: "/content/page"},
			wantDeliver: []core.Model{{"title": "Hi"}},
			wantEvent:   true,
		},
		{
			name:        "editor mode without page path stays quiet",
			models:      map[string]core.Model{"/p": {"title": "Hi"}},
			req:         core.UpdateRequest{Path: "/p", IsInEditor: true},
			wantDeliver: []core.Model{{"title": "Hi"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &fakeLoader{models: tt.models, err: tt.loadErr}
			events := notifier.New()
			ping := events.Subscribe()
			defer events.Unsubscribe(ping)
			logger, logs := testutil.NewCaptureLogger()

			u := NewUpdater(UpdaterConfig{Store: loader, Events: events, Logger: logger})
			defer u.Close()

			var d deliveries
			req := tt.req
			req.Deliver = d.deliver
			u.UpdateModel(req)
			u.Wait()

			assert.Equal(t, tt.wantDeliver, d.all())

			select {
			case <-ping:
				assert.True(t, tt.wantEvent, "unexpected editor event")
			default:
				assert.False(t, tt.wantEvent, "expected an editor event")
			}

			if tt.wantLog != "" {
				assert.Contains(t, logs.String(), tt.wantLog)
			}
		})
	}
}

func TestUpdater_PassesForceReload(t *testing.T) {
	loader := &fakeLoader{models: map[string]core.Model{"/p": {"a": 1}}}
	u := NewUpdater(UpdaterConfig{Store: loader})
	defer u.Close()

	u.UpdateModel(core.UpdateRequest{Path: "/p", ForceReload: true})
	u.Wait()

	require.Len(t, loader.forced, 1)
	assert.True(t, loader.forced[0])
}

func TestUpdater_DoesNotBlock(t *testing.T) {
	block := make(chan struct{})
	loader := &blockingLoader{release: block}
	u := NewUpdater(UpdaterConfig{Store: loader, Timeout: time.Second})

	done := make(chan struct{})
	go func() {
		u.UpdateModel(core.UpdateRequest{Path: "/p"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("UpdateModel blocked on the load")
	}

	close(block)
	u.Close()
}

func TestUpdater_CloseCancelsInFlight(t *testing.T) {
	loader := &blockingLoader{}
	u := NewUpdater(UpdaterConfig{Store: loader, Timeout: time.Minute})

	delivered := false
	u.UpdateModel(core.UpdateRequest{Path: "/p", Deliver: func(core.Model) { delivered = true }})

	finished := make(chan struct{})
	go func() {
		u.Close()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Close did not cancel the in-flight load")
	}
	assert.False(t, delivered)
}

func TestUpdater_DropsRequestsAfterClose(t *testing.T) {
	loader := &fakeLoader{models: map[string]core.Model{"/p": {"title": "Hi"}}}
	u := NewUpdater(UpdaterConfig{Store: loader, Logger: testutil.NewTestLogger(t)})
	u.Close()

	var got deliveries
	u.UpdateModel(core.UpdateRequest{Path: "/p", Deliver: got.deliver})
	u.Wait()

	assert.Empty(t, got.all())
	loader.mu.Lock()
	assert.Empty(t, loader.calls, "no load starts after Close")
	loader.mu.Unlock()

	assert.NotPanics(t, u.Close)
}

func TestUpdater_ConcurrentUpdateAndClose(t *testing.T) {
	loader := &fakeLoader{models: map[string]core.Model{"/p": {"title": "Hi"}}}
	u := NewUpdater(UpdaterConfig{Store: loader, Logger: testutil.NewTestLogger(t)})

	var got deliveries
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				u.UpdateModel(core.UpdateRequest{Path: "/p", Deliver: got.deliver})
			}
		}()
	}

	u.Close()
	wg.Wait()
	u.Close()

	// Whatever was accepted before Close has finished
	n := len(got.all())
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, got.all(), n, "no delivery after Close returned")
}

// blockingLoader blocks until release is closed or the context ends.
type blockingLoader struct {
	release chan struct{}
}

func (b *blockingLoader) GetData(ctx context.Context, _ string, _ bool) (core.Model, error) {
	select {
	case <-b.release:
		return core.Model{"late": true}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
