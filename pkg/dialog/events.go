package dialog

import "context"

// LifecycleHooks are observability callbacks fired by the Navigator. Any
// field may be nil. Hooks run synchronously on the Navigator's calling
// goroutine; keep them cheap.
type LifecycleHooks struct {
	OnDialogStart  func(context.Context, *Tree)
	OnNodeEnter    func(context.Context, *Node)
	OnNodeLeave    func(context.Context, *Node)
	OnCustomAction func(context.Context, *Choice, string)
	OnDialogEnd    func(context.Context)
}

// JoinHooks merges hook sets so several consumers (metrics, logging, tests)
// can observe the same session. Callbacks fire in argument order.
func JoinHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var joined LifecycleHooks
	for _, h := range hooks {
		h := h
		if h.OnDialogStart != nil {
			prev := joined.OnDialogStart
			joined.OnDialogStart = func(ctx context.Context, t *Tree) {
				if prev != nil {
					prev(ctx, t)
				}
				h.OnDialogStart(ctx, t)
			}
		}
		if h.OnNodeEnter != nil {
			prev := joined.OnNodeEnter
			joined.OnNodeEnter = func(ctx context.Context, n *Node) {
				if prev != nil {
					prev(ctx, n)
				}
				h.OnNodeEnter(ctx, n)
			}
		}
		if h.OnNodeLeave != nil {
			prev := joined.OnNodeLeave
			joined.OnNodeLeave = func(ctx context.Context, n *Node) {
				if prev != nil {
					prev(ctx, n)
				}
				h.OnNodeLeave(ctx, n)
			}
		}
		if h.OnCustomAction != nil {
			prev := joined.OnCustomAction
			joined.OnCustomAction = func(ctx context.Context, c *Choice, actionID string) {
				if prev != nil {
					prev(ctx, c, actionID)
				}
				h.OnCustomAction(ctx, c, actionID)
			}
		}
		if h.OnDialogEnd != nil {
			prev := joined.OnDialogEnd
			joined.OnDialogEnd = func(ctx context.Context) {
				if prev != nil {
					prev(ctx)
				}
				h.OnDialogEnd(ctx)
			}
		}
	}
	return joined
}

// Subscriber is the presentation-layer contract. The Navigator notifies
// subscribers synchronously; a subscriber reacting to NodeChanged is
// responsible for scheduling (and canceling) any auto-advance the node
// requests.
type Subscriber interface {
	// NodeChanged fires after the Navigator enters a node: render the text
	// and choices, and schedule an auto-advance if Node.AutoAdvance > 0.
	NodeChanged(*Node)

	// CustomAction fires after a selected choice's action id was dispatched
	// to the content provider, for optional UI feedback.
	CustomAction(*Choice, string)

	// DialogEnded fires once per session when the Navigator returns to idle.
	DialogEnded()
}

// SubscriberFuncs adapts plain functions to the Subscriber interface. Nil
// fields are skipped.
type SubscriberFuncs struct {
	OnNodeChanged  func(*Node)
	OnCustomAction func(*Choice, string)
	OnDialogEnded  func()
}

func (s SubscriberFuncs) NodeChanged(n *Node) {
	if s.OnNodeChanged != nil {
		s.OnNodeChanged(n)
	}
}

func (s SubscriberFuncs) CustomAction(c *Choice, actionID string) {
	if s.OnCustomAction != nil {
		s.OnCustomAction(c, actionID)
	}
}

func (s SubscriberFuncs) DialogEnded() {
	if s.OnDialogEnded != nil {
		s.OnDialogEnded()
	}
}
