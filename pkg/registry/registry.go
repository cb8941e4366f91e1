// Package registry maps custom-action identifiers to game-side handlers.
package registry

import (
	"context"
	"fmt"
	"sync"
)

// ActionFunc handles one custom action dispatched from a selected choice.
type ActionFunc func(ctx context.Context) error

// Registry manages the available action handlers. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]ActionFunc
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		actions: make(map[string]ActionFunc),
	}
}

// Register adds a handler for an action id. An existing handler with the
// same id is overwritten.
func (r *Registry) Register(actionID string, fn ActionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[actionID] = fn
}

// Dispatch looks up and runs the handler for actionID. Returns an error when
// no handler is registered.
func (r *Registry) Dispatch(ctx context.Context, actionID string) error {
	r.mu.RLock()
	fn, ok := r.actions[actionID]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no handler for action: %s", actionID)
	}
	return fn(ctx)
}

// Known reports whether a handler exists for actionID.
func (r *Registry) Known(actionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[actionID]
	return ok
}
