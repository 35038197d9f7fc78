package home

import (
	"context"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/editable/internal/ui/features/common"
	"github.com/leapstack-labs/editable/internal/ui/notifier"
)

// Lister lists the known content paths.
type Lister interface {
	ContentPaths(ctx context.Context) ([]string, error)
}

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	lister   Lister
	notifier *notifier.Notifier
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(lister Lister, notify *notifier.Notifier, isDev bool) *Handlers {
	return &Handlers{
		lister:   lister,
		notifier: notify,
		isDev:    isDev,
	}
}

// HomePage renders the index page with the full content tree.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	tree, err := h.buildTree(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := common.PageData{Title: "Content", IsDev: h.isDev}
	page := common.Page(data, common.Live("/updates", common.ContentTree(tree)))
	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HomePageUpdates is the long-lived SSE endpoint for the index page.
// It does NOT send initial state; that is rendered by HomePage.
func (h *Handlers) HomePageUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			if err := h.sendTree(ctx, sse); err != nil {
				_ = sse.ConsoleError(err)
				// Don't return - keep trying on next update
			}
		}
	}
}

func (h *Handlers) sendTree(ctx context.Context, sse *datastar.ServerSentEventGenerator) error {
	tree, err := h.buildTree(ctx)
	if err != nil {
		return err
	}
	return sse.PatchElementTempl(common.ContentTree(tree))
}

func (h *Handlers) buildTree(ctx context.Context) ([]common.TreeNode, error) {
	paths, err := h.lister.ContentPaths(ctx)
	if err != nil {
		return nil, err
	}
	return common.BuildContentTree(paths), nil
}
