package dialog

import "time"

// NodeID uniquely identifies a node within its owning tree.
// The zero value means "no node".
type NodeID uint64

// Node is a single beat of dialog: who speaks, what is said, and where the
// conversation can go next. Nodes are created through Tree.NewNode so the
// tree's arena owns their storage; structural links (next, parent, incoming
// edges) are kept as IDs and resolved through the tree.
type Node struct {
	id   NodeID
	tree *Tree

	// Name enables convergence: choices elsewhere in the tree may target
	// this node by name. Empty is fine for purely linear nodes.
	Name string

	// Speaker is the display label of whoever delivers Text.
	Speaker string

	// Text is the body of the beat.
	Text string

	// PlayerSpeaking marks the beat as spoken by the player character.
	PlayerSpeaking bool

	// AutoAdvance is the delay after which the presentation layer should
	// move the conversation along without input. Zero means "wait for an
	// explicit advance". Only meaningful when the node has no choices;
	// scheduling (and canceling) the delayed call is the subscriber's job,
	// never the Navigator's.
	AutoAdvance time.Duration

	choices  []*Choice
	next     NodeID
	parent   NodeID
	incoming map[NodeID]struct{}
}

// ID returns the node's stable identifier within its tree.
func (n *Node) ID() NodeID { return n.id }

// Tree returns the owning tree.
func (n *Node) Tree() *Tree { return n.tree }

// Choices returns the ordered choice list. The returned slice is the live
// backing array; callers must treat it as read-only.
func (n *Node) Choices() []*Choice { return n.choices }

// Next returns the automatic successor, or nil. Next is only consulted when
// the node has no choices.
func (n *Node) Next() *Node {
	if n.next == 0 {
		return nil
	}
	return n.tree.node(n.next)
}

// Parent returns the node this one was first attached under, or nil.
func (n *Node) Parent() *Node {
	if n.parent == 0 {
		return nil
	}
	return n.tree.node(n.parent)
}

// IsEnd reports whether the node terminates the conversation: no successor
// and no choices.
func (n *Node) IsEnd() bool {
	return n.next == 0 && len(n.choices) == 0
}

// IsConvergent reports whether more than one node can lead here.
func (n *Node) IsConvergent() bool {
	return len(n.incoming) > 1
}

// IncomingReferences returns the nodes that can lead here. Order is
// unspecified.
func (n *Node) IncomingReferences() []*Node {
	refs := make([]*Node, 0, len(n.incoming))
	for id := range n.incoming {
		if src := n.tree.node(id); src != nil {
			refs = append(refs, src)
		}
	}
	return refs
}

// SetNext links an automatic successor and maintains the target's parent and
// incoming-edge bookkeeping, unregistering the previous target if one was
// set. Passing nil clears the link. Linking across trees is rejected with a
// warning.
func (n *Node) SetNext(next *Node) {
	if next != nil && next.tree != n.tree {
		n.tree.logger.Warn("refusing to link node from another tree",
			"node", n.describe(), "target", next.describe())
		return
	}

	old := n.Next()
	if next == nil {
		n.next = 0
	} else {
		n.next = next.id
	}

	if old != nil && old != next {
		n.dropReferenceTo(old)
	}
	if next != nil {
		next.noteIncoming(n)
	}
}

// AddChoice appends a player option and returns it for further
// configuration (target, callback). actionID may be empty.
func (n *Node) AddChoice(text, actionID string) *Choice {
	c := &Choice{
		owner:    n,
		Text:     text,
		ActionID: actionID,
	}
	n.choices = append(n.choices, c)
	return c
}

// RemoveChoice deletes the choice at index i, clearing the incoming edge on
// its resolved target (named or direct) when this node no longer references
// it. Out-of-range indices are a logged no-op.
func (n *Node) RemoveChoice(i int) {
	if i < 0 || i >= len(n.choices) {
		n.tree.logger.Warn("remove choice: index out of range",
			"node", n.describe(), "index", i, "choices", len(n.choices))
		return
	}
	removed := n.choices[i]
	n.choices = append(n.choices[:i], n.choices[i+1:]...)

	if target := n.tree.resolveChoiceTarget(removed); target != nil {
		n.dropReferenceTo(target)
	}
}

// Depth counts the hops along the parent chain to the root. The walk is
// guarded against malformed parent cycles.
func (n *Node) Depth() int {
	depth := 0
	seen := map[NodeID]struct{}{n.id: {}}
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if _, ok := seen[cur.id]; ok {
			break
		}
		seen[cur.id] = struct{}{}
		depth++
	}
	return depth
}

// Ancestors returns the parent chain from the immediate parent to the root,
// cycle-safe.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	seen := map[NodeID]struct{}{n.id: {}}
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if _, ok := seen[cur.id]; ok {
			break
		}
		seen[cur.id] = struct{}{}
		out = append(out, cur)
	}
	return out
}

// Descendants returns every node reachable from this one through next links
// and choice targets, excluding the node itself. Convergent nodes appear
// once; cycles terminate. The traversal mirrors the tree registry's.
func (n *Node) Descendants() []*Node {
	var out []*Node
	visited := map[NodeID]struct{}{n.id: {}}
	queue := n.successors()
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur.id]; ok {
			continue
		}
		visited[cur.id] = struct{}{}
		out = append(out, cur)
		queue = append(queue, cur.successors()...)
	}
	return out
}

// successors lists the directly reachable nodes: next first, then choice
// targets in declaration order.
func (n *Node) successors() []*Node {
	var out []*Node
	if next := n.Next(); next != nil {
		out = append(out, next)
	}
	for _, c := range n.choices {
		if t := n.tree.resolveChoiceTarget(c); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// stillReferences reports whether any remaining outgoing link of n points at
// target. Choices resolve through the precedence rule so a named target that
// reaches the node counts the same as a direct one.
func (n *Node) stillReferences(target *Node) bool {
	if n.next == target.id {
		return true
	}
	for _, c := range n.choices {
		if n.tree.resolveChoiceTarget(c) == target {
			return true
		}
	}
	return false
}

// noteIncoming registers src as a node that can lead here and adopts it as
// parent if this node has none yet.
func (n *Node) noteIncoming(src *Node) {
	if n.incoming == nil {
		n.incoming = make(map[NodeID]struct{})
	}
	n.incoming[src.id] = struct{}{}
	if n.parent == 0 && n.id != src.id {
		n.parent = src.id
	}
}

// dropReferenceTo clears the incoming edge (and parent adoption) from n on
// target, unless another link from n still points there.
func (n *Node) dropReferenceTo(target *Node) {
	if n.stillReferences(target) {
		return
	}
	delete(target.incoming, n.id)
	if target.parent == n.id {
		target.parent = 0
	}
}

// describe renders a short identifier for log lines.
func (n *Node) describe() string {
	if n.Name != "" {
		return n.Name
	}
	if n.Speaker != "" {
		return n.Speaker
	}
	return "node"
}
