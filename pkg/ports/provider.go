package ports

import (
	"context"

	"github.com/fenwick-games/parley/pkg/dialog"
)

// ContentProvider owns the named trees for one speaker (or one scripted
// scene) and receives session lifecycle callbacks from the Navigator.
type ContentProvider interface {
	// MainTree returns the default conversation, nil if the provider has
	// none.
	MainTree() *dialog.Tree

	// Tree returns a named conversation, nil if unknown.
	Tree(name string) *dialog.Tree

	// HasValidContent reports whether the provider can host a session at
	// all. The Navigator refuses to start against a provider that says no.
	HasValidContent() bool

	// SessionStarted is invoked by the Navigator right before the first
	// node-enter event of a session.
	SessionStarted()

	// SessionEnded is invoked by the Navigator when the session returns to
	// idle.
	SessionEnded()

	// HandleCustomAction receives the opaque action id of a selected
	// choice. Unknown ids are the provider's business; the core dispatches
	// and never validates them.
	HandleCustomAction(ctx context.Context, actionID string)
}

// TreeLoader reads tree definitions from a storage backend (YAML directory,
// embedded assets). Providers use loaders; the Navigator never does.
type TreeLoader interface {
	// LoadTree builds the named tree. Returns dialog.ErrTreeNotFound when
	// the backend has no such tree.
	LoadTree(name string) (*dialog.Tree, error)

	// ListTrees returns the tree names the backend can load, sorted.
	ListTrees() ([]string, error)
}
