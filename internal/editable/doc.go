// Package editable renders content nodes bound to a path-addressed model.
//
// A node is described by Props. Rendering runs four steps: the content path
// is resolved (ResolvePath), the model for that path is loaded and kept
// fresh (Instance), the model is injected into the child content (Inject),
// and the output is optionally wrapped in a styled container carrying the
// authoring tool's markers (Decide).
//
// An Instance is the mounted form of a node. It owns a cached copy of the
// model, holds at most one change listener with the model store, and
// re-renders whenever the store reports a change for its path:
//
//	inst := editable.NewInstance(editable.Deps{Store: store, Updater: updater})
//	if err := inst.Mount(ctx, props); err != nil {
//	    return err
//	}
//	defer inst.Unmount()
//
// All state changes of an Instance run on its own event loop, so callbacks
// from the store or the updater never race with prop updates.
package editable
