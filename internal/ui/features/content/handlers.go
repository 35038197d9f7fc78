package content

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/editable/internal/components"
	"github.com/leapstack-labs/editable/internal/editable"
	"github.com/leapstack-labs/editable/internal/editor"
	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/pathutil"
	"github.com/leapstack-labs/editable/internal/ui/features/common"
	"github.com/leapstack-labs/editable/internal/ui/notifier"
	"github.com/leapstack-labs/editable/pkg/core"
)

// DefaultRenderTimeout bounds how long a page waits for its model.
const DefaultRenderTimeout = 2 * time.Second

// asyncContentLoadedScript tells the authoring overlay that content changed.
const asyncContentLoadedScript = `window.dispatchEvent(new CustomEvent("cq-async-content-loaded"))`

// Config holds the dependencies of the content handlers.
type Config struct {
	Store    *modelstore.Store
	Updater  core.Updater
	Registry *components.Registry
	// Events carries "async content loaded" pings from the updater.
	Events        *notifier.Notifier
	SessionStore  sessions.Store
	RenderTimeout time.Duration
	Logger        *slog.Logger
	IsDev         bool
}

// Handlers provides HTTP handlers for the content feature.
type Handlers struct {
	store         *modelstore.Store
	updater       core.Updater
	registry      *components.Registry
	events        *notifier.Notifier
	sessionStore  sessions.Store
	renderTimeout time.Duration
	logger        *slog.Logger
	isDev         bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg Config) *Handlers {
	timeout := cfg.RenderTimeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registry := cfg.Registry
	if registry == nil {
		registry = components.NewRegistry()
	}
	return &Handlers{
		store:         cfg.Store,
		updater:       cfg.Updater,
		registry:      registry,
		events:        cfg.Events,
		sessionStore:  cfg.SessionStore,
		renderTimeout: timeout,
		logger:        logger,
		isDev:         cfg.IsDev,
	}
}

// ContentPage renders a content node as a full page. The node is mounted for
// the duration of the request and rendered once its model arrived or the
// render timeout passed.
func (h *Handlers) ContentPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n := resolveNode(r)
	detect := editor.RequestDetector(r, h.sessionStore)
	props, model, found := h.lookup(ctx, n)

	inst := h.newInstance(detect, n)
	defer inst.Unmount()

	if err := inst.Mount(ctx, props); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// An empty model is never delivered, so only wait for one with content
	if found && !model.IsEmpty() {
		waitCtx, cancel := context.WithTimeout(ctx, h.renderTimeout)
		if err := inst.AwaitModel(waitCtx); err != nil {
			h.logger.Debug("rendering before model arrived", "path", n.path, "error", err)
		}
		cancel()
	}

	view, err := inst.View(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := common.PageData{
		Title:     pageTitle(n, model),
		IsDev:     h.isDev,
		Authoring: detect(),
	}
	if err := common.Page(data, Host(view, updatesURL(r, n))).Render(ctx, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ContentUpdates is the long-lived SSE endpoint for a content node.
// The node stays mounted while the client is connected and every re-render
// is patched into the page. It does NOT send the initial view; that is
// rendered by ContentPage.
func (h *Handlers) ContentUpdates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n := resolveNode(r)
	detect := editor.RequestDetector(r, h.sessionStore)
	props, _, _ := h.lookup(ctx, n)

	sse := datastar.NewSSE(w, r)

	// Subscribe before mounting so the first load is not missed
	var loaded chan struct{}
	if h.events != nil && detect() {
		loaded = h.events.Subscribe()
		defer h.events.Unsubscribe(loaded)
	}

	inst := h.newInstance(detect, n)
	defer inst.Unmount()

	if err := inst.Mount(ctx, props); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	renders, stop := inst.Renders()
	defer stop()

	// A model delivered before we subscribed would otherwise be lost
	if snap, err := inst.Snapshot(ctx); err == nil && !snap.Model.IsEmpty() {
		if err := h.patch(ctx, sse, inst); err != nil {
			_ = sse.ConsoleError(err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-renders:
			if !ok {
				return
			}
			if err := h.patch(ctx, sse, inst); err != nil {
				_ = sse.ConsoleError(err)
				// Don't return - keep trying on next render
			}
		case _, ok := <-loaded:
			if !ok {
				loaded = nil
				continue
			}
			if err := sse.ExecuteScript(asyncContentLoadedScript); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// patch sends the instance's current view.
func (h *Handlers) patch(ctx context.Context, sse *datastar.ServerSentEventGenerator, inst *editable.Instance) error {
	view, err := inst.View(ctx)
	if err != nil {
		return err
	}
	return sse.PatchElementTempl(Host(view, ""))
}

// lookup builds the props for n from the resource type of its model.
// It reports false when the store has no model for n.
func (h *Handlers) lookup(ctx context.Context, n node) (*editable.Props, core.Model, bool) {
	model, err := h.store.GetData(ctx, n.path, false)
	if err != nil {
		if !errors.Is(err, modelstore.ErrNotFound) {
			h.logger.Warn("failed to load model", "path", n.path, "error", err)
		}
		return h.registry.Props("", n.pagePath, n.itemPath), core.Model{}, false
	}
	return h.registry.Props(model.String(core.TypeKey), n.pagePath, n.itemPath), model, true
}

func (h *Handlers) newInstance(detect editor.Detector, n node) *editable.Instance {
	return editable.NewInstance(editable.Deps{
		Store:    h.store,
		Updater:  h.updater,
		Detector: detect,
		Logger:   h.logger.With("node", n.path),
	})
}

// node is a content path split into its page and item parts.
type node struct {
	path     string
	pagePath string
	itemPath string
}

func resolveNode(r *http.Request) node {
	path := pathutil.Sanitize("/content/" + chi.URLParam(r, "*"))
	page, item := pathutil.SplitItemPath(path)
	return node{path: path, pagePath: page, itemPath: item}
}

// updatesURL is the SSE endpoint of n. Only the authoring mode is carried
// over from the page request, so the stream renders in the same mode. The
// result is fully percent-encoded and safe inside a quoted expression.
func updatesURL(r *http.Request, n node) string {
	u := url.URL{Path: "/updates" + n.path}
	if mode := r.URL.Query().Get(editor.ModeParam); mode != "" {
		u.RawQuery = url.Values{editor.ModeParam: {mode}}.Encode()
	}
	return u.String()
}

func pageTitle(n node, model core.Model) string {
	if title := model.String("jcr:title"); title != "" {
		return title
	}
	return n.path
}
