package editable

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leapstack-labs/editable/internal/eventloop"
	"github.com/leapstack-labs/editable/internal/ui/notifier"
	"github.com/leapstack-labs/editable/pkg/core"
)

// ErrAlreadyMounted is returned when Mount is called on a mounted or
// previously unmounted instance.
var ErrAlreadyMounted = errors.New("instance already mounted")

// ErrNotMounted is returned by operations on an instance that was never mounted.
var ErrNotMounted = errors.New("instance not mounted")

// modelComparer treats nil and empty models as equal and looks inside
// unexported struct fields instead of panicking on them.
var modelComparer = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Listeners is the part of the model store an Instance subscribes through.
type Listeners interface {
	AddListener(path string, onChange func()) core.ListenerID
	RemoveListener(path string, id core.ListenerID)
}

// Deps holds the collaborators of an Instance.
type Deps struct {
	Store   Listeners
	Updater core.Updater
	// Detector reports the authoring mode when Props.IsInEditor is unset.
	Detector func() bool
	Logger   *slog.Logger
}

// Snapshot is a point-in-time view of an Instance's state.
type Snapshot struct {
	Path       string
	Model      core.Model
	IsInEditor bool
	// Listening reports whether a store listener is registered.
	Listening bool
}

// Instance is a mounted node. It keeps the model for the node's content path,
// listens for changes of that path and re-renders on every change.
type Instance struct {
	deps    Deps
	loop    *eventloop.Loop
	renders *notifier.Notifier
	logger  *slog.Logger

	started   atomic.Bool
	unmount   sync.Once
	unmounted chan struct{}

	// Owned by the loop.
	mounted    bool
	props      *Props
	seeded     bool
	path       string
	userModel  core.Model
	model      core.Model
	generation uint64
	isInEditor bool
	sub        *subscription
	view       templ.Component
}

// subscription is one listener registration. release is safe to call more
// than once.
type subscription struct {
	store   Listeners
	path    string
	id      core.ListenerID
	release func()
}

func newSubscription(store Listeners, path string, onChange func(*subscription)) *subscription {
	sub := &subscription{store: store, path: path}
	sub.id = store.AddListener(path, func() { onChange(sub) })

	var once sync.Once
	sub.release = func() {
		once.Do(func() { store.RemoveListener(path, sub.id) })
	}
	return sub
}

// NewInstance creates an unmounted Instance.
func NewInstance(deps Deps) *Instance {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Instance{
		deps:      deps,
		loop:      eventloop.New(),
		renders:   notifier.New(),
		logger:    logger,
		unmounted: make(chan struct{}),
		model:     core.Model{},
		view:      templ.NopComponent,
	}
}

// Mount starts the instance and commits its first props.
func (in *Instance) Mount(ctx context.Context, props *Props) error {
	if !in.started.CompareAndSwap(false, true) {
		return ErrAlreadyMounted
	}
	go in.loop.Run(context.Background())

	return in.loop.Do(ctx, func() {
		in.mounted = true
		in.commit(props)
	})
}

// Update commits new props. Changing the content path drops the current
// model and moves the listener to the new path.
func (in *Instance) Update(ctx context.Context, props *Props) error {
	if !in.started.Load() {
		return ErrNotMounted
	}
	return in.loop.Do(ctx, func() {
		if !in.mounted {
			return
		}
		in.commit(props)
	})
}

// Unmount removes the listener and stops the instance. Models delivered
// afterwards are dropped. Unmount is idempotent.
func (in *Instance) Unmount() {
	in.unmount.Do(func() {
		defer close(in.unmounted)
		defer in.renders.Close()

		if in.started.CompareAndSwap(false, true) {
			// Never mounted: make later Mount calls fail.
			in.loop.Stop()
			return
		}
		_ = in.loop.Do(context.Background(), func() {
			in.mounted = false
			in.generation++
			in.unsubscribe()
		})
		in.loop.Stop()
		<-in.loop.Done()
	})
}

// Unmounted is closed once Unmount has completed.
func (in *Instance) Unmounted() <-chan struct{} {
	return in.unmounted
}

// View returns the current render output.
func (in *Instance) View(ctx context.Context) (templ.Component, error) {
	if !in.started.Load() {
		return templ.NopComponent, ErrNotMounted
	}
	var view templ.Component
	err := in.loop.Do(ctx, func() { view = in.view })
	return view, err
}

// Snapshot returns the instance's current state.
func (in *Instance) Snapshot(ctx context.Context) (Snapshot, error) {
	if !in.started.Load() {
		return Snapshot{}, ErrNotMounted
	}
	var snap Snapshot
	err := in.loop.Do(ctx, func() {
		snap = Snapshot{
			Path:       in.path,
			Model:      in.model.Clone(),
			IsInEditor: in.isInEditor,
			Listening:  in.sub != nil,
		}
	})
	return snap, err
}

// Model returns a copy of the instance's current model.
func (in *Instance) Model(ctx context.Context) (core.Model, error) {
	snap, err := in.Snapshot(ctx)
	if err != nil {
		return core.Model{}, err
	}
	return snap.Model, nil
}

// Path returns the content path the instance is bound to.
func (in *Instance) Path(ctx context.Context) (string, error) {
	snap, err := in.Snapshot(ctx)
	return snap.Path, err
}

// Renders returns a channel pinged after every re-render, and a function to
// stop listening. The channel is closed on Unmount.
func (in *Instance) Renders() (<-chan struct{}, func()) {
	ch := in.renders.Subscribe()
	return ch, func() { in.renders.Unsubscribe(ch) }
}

// AwaitModel blocks until the instance holds a non-empty model or ctx ends.
func (in *Instance) AwaitModel(ctx context.Context) error {
	renders, stop := in.Renders()
	defer stop()

	for {
		snap, err := in.Snapshot(ctx)
		if err != nil {
			return err
		}
		if !snap.Model.IsEmpty() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-renders:
			if !ok {
				return eventloop.ErrStopped
			}
		}
	}
}

// commit applies props. Runs on the loop.
func (in *Instance) commit(props *Props) {
	in.props = props
	if props == nil {
		in.unsubscribe()
		in.seeded = false
		in.generation++
		in.model = core.Model{}
		in.render()
		return
	}

	in.isInEditor = props.InEditor(in.deps.Detector)
	path := props.Path()
	pathChanged := !in.seeded || path != in.path
	modelChanged := !cmp.Equal(props.Model, in.userModel, modelComparer...)

	if pathChanged || modelChanged {
		if pathChanged {
			in.unsubscribe()
		}
		in.reseed(path, props.Model)
		if in.model.IsEmpty() {
			in.refresh()
		}
		if pathChanged {
			in.subscribe()
		}
	}

	in.render()
}

// reseed replaces the model with the caller's, discarding remote state.
func (in *Instance) reseed(path string, userModel core.Model) {
	in.generation++
	in.seeded = true
	in.path = path
	in.userModel = userModel.Clone()
	in.model = core.OrEmpty(userModel).Clone()
	in.logger.Debug("seeded model", "path", path, "keys", len(in.model))
}

func (in *Instance) subscribe() {
	in.sub = newSubscription(in.deps.Store, in.path, func(sub *subscription) {
		in.loop.Post(func() { in.onChange(sub) })
	})
	in.logger.Debug("listening for model changes", "path", in.path)
}

func (in *Instance) unsubscribe() {
	if in.sub == nil {
		return
	}
	in.sub.release()
	in.logger.Debug("stopped listening", "path", in.sub.path)
	in.sub = nil
}

// onChange handles a store notification. Runs on the loop.
func (in *Instance) onChange(sub *subscription) {
	if !in.mounted || in.sub != sub {
		in.logger.Debug("ignoring change for released listener", "path", sub.path)
		return
	}
	in.refresh()
}

// refresh asks the updater for the current model. Runs on the loop.
func (in *Instance) refresh() {
	if in.deps.Updater == nil {
		return
	}
	generation := in.generation
	path := in.path
	cfg := in.props.EditConfig()

	in.deps.Updater.UpdateModel(core.UpdateRequest{
		Path:        path,
		ForceReload: cfg.ForceReload,
		IsInEditor:  in.isInEditor,
		PagePath:    in.props.PagePath,
		Deliver: func(model core.Model) {
			in.loop.Post(func() { in.deliver(generation, path, model) })
		},
	})
}

// deliver installs a refreshed model unless it belongs to an older seed.
// Runs on the loop.
func (in *Instance) deliver(generation uint64, path string, model core.Model) {
	if !in.mounted || generation != in.generation {
		in.logger.Debug("dropping stale model", "path", path)
		return
	}
	in.model = core.OrEmpty(model).Clone()
	in.render()
}

func (in *Instance) render() {
	in.view = Render(in.props, in.path, in.model, in.isInEditor)
	in.renders.Broadcast()
}
