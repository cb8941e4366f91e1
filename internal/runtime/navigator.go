package runtime

import (
	"context"
	"log/slog"
	"sort"

	"github.com/fenwick-games/parley/internal/logging"
	"github.com/fenwick-games/parley/pkg/dialog"
	"github.com/fenwick-games/parley/pkg/ports"
)

// Navigator is the single-owner state machine that holds "current position"
// in a tree. It is either idle (no node, no tree) or active, and it is the
// only place node-enter/node-exit events and custom-action dispatch fire.
//
// The Navigator is not reentrant: all mutating calls must come from one
// logical owner. Expected failures return false or are logged no-ops, per
// the error contract of the dialog core; nothing here panics on bad input.
type Navigator struct {
	logger *slog.Logger
	hooks  dialog.LifecycleHooks

	subs    map[int]dialog.Subscriber
	nextSub int

	provider ports.ContentProvider
	tree     *dialog.Tree
	current  *dialog.Node
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks. Combine several consumers with
// dialog.JoinHooks.
func WithHooks(hooks dialog.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// NewNavigator creates an idle Navigator.
func NewNavigator(opts ...Option) *Navigator {
	n := &Navigator{
		logger: logging.NewNop(),
		subs:   make(map[int]dialog.Subscriber),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Subscribe adds a presentation-layer subscriber and returns its remove
// function. Subscribers are notified synchronously in registration order.
func (n *Navigator) Subscribe(s dialog.Subscriber) func() {
	id := n.nextSub
	n.nextSub++
	n.subs[id] = s
	return func() { delete(n.subs, id) }
}

// IsActive reports whether a session is in progress.
func (n *Navigator) IsActive() bool { return n.current != nil }

// CurrentNode returns the active node, nil when idle.
func (n *Navigator) CurrentNode() *dialog.Node { return n.current }

// CurrentTree returns the active tree, nil when idle.
func (n *Navigator) CurrentTree() *dialog.Tree { return n.tree }

// StartDialog begins a session against the provider's main tree, or against
// the named override when treeName is non-empty. It returns false, leaving
// the Navigator idle and firing no events, when a session is already
// active, the provider is missing or has no valid content, or the tree is
// missing or invalid. On success the provider is told the session started
// and the starting node's enter event fires.
func (n *Navigator) StartDialog(ctx context.Context, provider ports.ContentProvider, treeName string) bool {
	if n.IsActive() {
		n.logger.Warn("start dialog rejected: session already active")
		return false
	}
	if provider == nil {
		n.logger.Warn("start dialog rejected: nil content provider")
		return false
	}
	if !provider.HasValidContent() {
		n.logger.Warn("start dialog rejected: provider has no valid content")
		return false
	}

	var tree *dialog.Tree
	if treeName == "" {
		tree = provider.MainTree()
	} else {
		tree = provider.Tree(treeName)
	}
	if tree == nil {
		n.logger.Warn("start dialog rejected: tree not found", "tree", treeName)
		return false
	}
	if !tree.IsValid() {
		n.logger.Warn("start dialog rejected: tree has no starting node", "tree", tree.Name())
		return false
	}

	n.provider = provider
	n.tree = tree
	provider.SessionStarted()
	if n.hooks.OnDialogStart != nil {
		n.hooks.OnDialogStart(ctx, tree)
	}
	n.logger.Info("dialog started", "tree", tree.Name())

	n.navigateTo(ctx, tree.StartingNode())
	return true
}

// NavigateToNode moves the current position. This is the internal primitive
// behind every transition; it is exported because the presentation layer
// drives next-chaining with it when reacting to a node's auto-advance
// signal. A nil node is a logged no-op; callers must guard.
func (n *Navigator) NavigateToNode(ctx context.Context, node *dialog.Node) {
	if node == nil {
		n.logger.Warn("navigate to nil node ignored")
		return
	}
	n.navigateTo(ctx, node)
}

// SelectChoice takes the choice at index i on the current node: the
// selection callback fires first, then any custom action is dispatched to
// the provider and announced to subscribers, then the Navigator moves to the
// choice's target, or ends the dialog when the target does not resolve.
// Out-of-range indices and calls on a choiceless or idle Navigator change
// nothing.
func (n *Navigator) SelectChoice(ctx context.Context, i int) {
	if !n.IsActive() {
		n.logger.Warn("select choice ignored: no active dialog", "index", i)
		return
	}
	choices := n.current.Choices()
	if len(choices) == 0 {
		n.logger.Warn("select choice ignored: current node has no choices", "index", i)
		return
	}
	if i < 0 || i >= len(choices) {
		n.logger.Warn("select choice ignored: index out of range",
			"index", i, "choices", len(choices))
		return
	}

	choice := choices[i]
	if choice.OnSelected != nil {
		choice.OnSelected(choice)
	}
	if choice.HasCustomAction() {
		n.provider.HandleCustomAction(ctx, choice.ActionID)
		if n.hooks.OnCustomAction != nil {
			n.hooks.OnCustomAction(ctx, choice, choice.ActionID)
		}
		for _, s := range n.subscribers() {
			s.CustomAction(choice, choice.ActionID)
		}
	}

	target := choice.Target()
	if target == nil {
		n.logger.Debug("choice has no resolvable target, ending dialog", "choice", choice.Text)
		n.EndDialog(ctx)
		return
	}
	n.navigateTo(ctx, target)
}

// AdvanceDialog ends the conversation from a choiceless node. It is a
// logged no-op when the current node has choices (advancing is not a
// substitute for choosing) or when idle. Next-chaining is not implicit
// here: the presentation layer drives it through NavigateToNode when it
// reacts to the enter event's auto-advance signal.
func (n *Navigator) AdvanceDialog(ctx context.Context) {
	if !n.IsActive() {
		n.logger.Warn("advance ignored: no active dialog")
		return
	}
	if len(n.current.Choices()) > 0 {
		n.logger.Warn("advance ignored: current node is choice-gated")
		return
	}
	n.EndDialog(ctx)
}

// SwitchToTree swaps the active session onto another of the provider's
// trees and enters its starting node. Returns false with no state change
// when idle or when the tree is missing or invalid.
func (n *Navigator) SwitchToTree(ctx context.Context, treeName string) bool {
	if !n.IsActive() {
		n.logger.Warn("switch tree ignored: no active dialog", "tree", treeName)
		return false
	}
	tree := n.provider.Tree(treeName)
	if tree == nil {
		n.logger.Warn("switch tree rejected: tree not found", "tree", treeName)
		return false
	}
	if !tree.IsValid() {
		n.logger.Warn("switch tree rejected: tree has no starting node", "tree", treeName)
		return false
	}
	n.tree = tree
	n.logger.Info("switched tree", "tree", tree.Name())
	n.navigateTo(ctx, tree.StartingNode())
	return true
}

// ForceNavigateToNode jumps straight to a node, bypassing choice and
// advance gating. Escape hatch for scripted sequences.
func (n *Navigator) ForceNavigateToNode(ctx context.Context, node *dialog.Node) {
	n.NavigateToNode(ctx, node)
}

// EndDialog closes the session: the current node's exit event fires, the
// provider is told the session ended, state clears to idle, and subscribers
// get exactly one DialogEnded. A logged no-op when idle.
func (n *Navigator) EndDialog(ctx context.Context) {
	if !n.IsActive() {
		n.logger.Warn("end dialog ignored: no active dialog")
		return
	}

	if n.hooks.OnNodeLeave != nil {
		n.hooks.OnNodeLeave(ctx, n.current)
	}
	if n.provider != nil {
		n.provider.SessionEnded()
	}

	tree := n.tree
	n.current = nil
	n.tree = nil
	n.provider = nil

	if n.hooks.OnDialogEnd != nil {
		n.hooks.OnDialogEnd(ctx)
	}
	for _, s := range n.subscribers() {
		s.DialogEnded()
	}
	if tree != nil {
		n.logger.Info("dialog ended", "tree", tree.Name())
	} else {
		n.logger.Info("dialog ended")
	}
}

// navigateTo fires the exit event of the node being left, moves the pointer,
// and fires the new node's enter event followed by subscriber notification.
func (n *Navigator) navigateTo(ctx context.Context, node *dialog.Node) {
	if n.current != nil && n.hooks.OnNodeLeave != nil {
		n.hooks.OnNodeLeave(ctx, n.current)
	}
	n.current = node
	if n.hooks.OnNodeEnter != nil {
		n.hooks.OnNodeEnter(ctx, node)
	}
	n.logger.Debug("entered node", "node", node.Name, "speaker", node.Speaker)
	for _, s := range n.subscribers() {
		s.NodeChanged(node)
	}
}

// subscribers snapshots the observer list in registration order so a
// callback can unsubscribe without corrupting the iteration.
func (n *Navigator) subscribers() []dialog.Subscriber {
	ids := make([]int, 0, len(n.subs))
	for id := range n.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]dialog.Subscriber, 0, len(ids))
	for _, id := range ids {
		out = append(out, n.subs[id])
	}
	return out
}
