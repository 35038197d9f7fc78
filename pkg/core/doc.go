// Package core defines the shared language of the editable system.
//
// This package contains:
//   - Domain values (Model, EditConfig, ListenerID)
//   - Service interfaces (ModelStore, Updater)
//   - Shared constants (editor data attributes, well-known model keys)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
