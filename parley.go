// Package parley is a branching-dialog runtime: trees of narrative nodes
// connected by player choices and automatic transitions, walked one node at
// a time by a Navigator that reports state changes to a presentation layer.
//
// The high-level entry point is NewNavigator; the domain model lives in
// pkg/dialog, collaborator contracts in pkg/ports, and content adapters
// (in-memory, YAML files) under pkg/adapters.
package parley

import (
	"context"
	"log/slog"

	"github.com/fenwick-games/parley/internal/logging"
	"github.com/fenwick-games/parley/internal/metrics"
	"github.com/fenwick-games/parley/internal/runtime"
	"github.com/fenwick-games/parley/pkg/dialog"
	"github.com/fenwick-games/parley/pkg/ports"
)

// Navigator wraps the internal runtime with a simplified API for consumers.
// One Navigator hosts at most one session at a time; the trigger layer must
// check IsActive before starting.
type Navigator struct {
	nav    *runtime.Navigator
	logger *slog.Logger
}

// Option configures a Navigator.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	hooks   []dialog.LifecycleHooks
	subs    []dialog.Subscriber
	metrics *metrics.Metrics
}

// WithLogger sets a structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHooks registers lifecycle hooks for observability. May be given more
// than once; hook sets are joined.
func WithHooks(hooks dialog.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = append(c.hooks, hooks)
	}
}

// WithSubscriber registers a presentation-layer subscriber at construction
// time. More can be added later with Subscribe.
func WithSubscriber(s dialog.Subscriber) Option {
	return func(c *config) {
		c.subs = append(c.subs, s)
	}
}

// WithMetrics wires Prometheus session/node/choice counters into the
// Navigator's lifecycle hooks.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// NewNavigator creates an idle Navigator.
func NewNavigator(opts ...Option) *Navigator {
	cfg := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	hooks := cfg.hooks
	if cfg.metrics != nil {
		hooks = append(hooks, cfg.metrics.Hooks())
	}

	nav := runtime.NewNavigator(
		runtime.WithLogger(cfg.logger),
		runtime.WithHooks(dialog.JoinHooks(hooks...)),
	)
	for _, s := range cfg.subs {
		nav.Subscribe(s)
	}

	return &Navigator{nav: nav, logger: cfg.logger}
}

// Subscribe adds a subscriber and returns its remove function.
func (n *Navigator) Subscribe(s dialog.Subscriber) func() {
	return n.nav.Subscribe(s)
}

// IsActive reports whether a session is in progress.
func (n *Navigator) IsActive() bool { return n.nav.IsActive() }

// CurrentNode returns the active node, nil when idle.
func (n *Navigator) CurrentNode() *dialog.Node { return n.nav.CurrentNode() }

// CurrentTree returns the active tree, nil when idle.
func (n *Navigator) CurrentTree() *dialog.Tree { return n.nav.CurrentTree() }

// StartDialog starts a session against the provider's main tree, or the
// named tree when treeName is non-empty. Returns false and stays idle on any
// expected failure (active session, missing provider/tree, invalid tree).
func (n *Navigator) StartDialog(ctx context.Context, provider ports.ContentProvider, treeName string) bool {
	return n.nav.StartDialog(ctx, provider, treeName)
}

// NavigateToNode moves to a specific node, firing exit then enter events.
// The presentation layer uses this to chain a node's Next successor when
// reacting to an auto-advance signal.
func (n *Navigator) NavigateToNode(ctx context.Context, node *dialog.Node) {
	n.nav.NavigateToNode(ctx, node)
}

// SelectChoice takes the i-th choice on the current node.
func (n *Navigator) SelectChoice(ctx context.Context, i int) {
	n.nav.SelectChoice(ctx, i)
}

// AdvanceDialog ends the conversation from a choiceless node; a no-op when
// the node is choice-gated.
func (n *Navigator) AdvanceDialog(ctx context.Context) {
	n.nav.AdvanceDialog(ctx)
}

// SwitchToTree swaps the active session onto another of the provider's
// trees.
func (n *Navigator) SwitchToTree(ctx context.Context, treeName string) bool {
	return n.nav.SwitchToTree(ctx, treeName)
}

// ForceNavigateToNode jumps straight to a node, bypassing gating. Escape
// hatch for scripted sequences.
func (n *Navigator) ForceNavigateToNode(ctx context.Context, node *dialog.Node) {
	n.nav.ForceNavigateToNode(ctx, node)
}

// EndDialog closes the active session and returns the Navigator to idle.
func (n *Navigator) EndDialog(ctx context.Context) {
	n.nav.EndDialog(ctx)
}
