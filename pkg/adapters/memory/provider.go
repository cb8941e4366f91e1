// Package memory implements an in-memory content provider, the default for
// tests and programmatically built conversations.
package memory

import (
	"context"
	"log/slog"

	"github.com/fenwick-games/parley/internal/logging"
	"github.com/fenwick-games/parley/pkg/dialog"
	"github.com/fenwick-games/parley/pkg/registry"
)

// Provider implements ports.ContentProvider over trees held in memory.
type Provider struct {
	main    *dialog.Tree
	trees   map[string]*dialog.Tree
	actions *registry.Registry
	logger  *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithActions sets the custom-action handler registry. Without one, actions
// are logged and dropped (the core dispatches, the provider decides).
func WithActions(r *registry.Registry) Option {
	return func(p *Provider) {
		p.actions = r
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProvider creates a provider with the given main tree. Additional named
// trees attach via AddTree.
func NewProvider(main *dialog.Tree, opts ...Option) *Provider {
	p := &Provider{
		main:   main,
		trees:  make(map[string]*dialog.Tree),
		logger: logging.NewNop(),
	}
	if main != nil && main.Name() != "" {
		p.trees[main.Name()] = main
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddTree registers a named tree, overwriting any previous one.
func (p *Provider) AddTree(t *dialog.Tree) {
	if t == nil || t.Name() == "" {
		p.logger.Warn("ignoring unnamed tree")
		return
	}
	p.trees[t.Name()] = t
}

// MainTree returns the default conversation.
func (p *Provider) MainTree() *dialog.Tree { return p.main }

// Tree returns a named conversation, nil if unknown.
func (p *Provider) Tree(name string) *dialog.Tree { return p.trees[name] }

// HasValidContent reports whether a session can start at all.
func (p *Provider) HasValidContent() bool {
	return p.main != nil && p.main.IsValid()
}

// SessionStarted implements ports.ContentProvider.
func (p *Provider) SessionStarted() {
	p.logger.Debug("session started")
}

// SessionEnded implements ports.ContentProvider.
func (p *Provider) SessionEnded() {
	p.logger.Debug("session ended")
}

// HandleCustomAction dispatches the action id to the registry. Unknown ids
// are logged; the dialog core never validates them.
func (p *Provider) HandleCustomAction(ctx context.Context, actionID string) {
	if p.actions == nil {
		p.logger.Info("custom action with no registry", "action", actionID)
		return
	}
	if err := p.actions.Dispatch(ctx, actionID); err != nil {
		p.logger.Warn("custom action failed", "action", actionID, "err", err)
	}
}
