package dialog

import (
	"log/slog"

	"github.com/fenwick-games/parley/internal/logging"
)

// Tree owns a connected set of nodes reachable from one starting node. It is
// the arena for node storage, provides name-based lookup, and caches a flat
// registry built by cycle-safe traversal.
//
// The registry is rebuilt on RefreshRegistry (or lazily on first use);
// staleness between a structural edit and the next refresh is an accepted
// trade-off, not a bug.
type Tree struct {
	name   string
	logger *slog.Logger

	nextID NodeID
	arena  map[NodeID]*Node
	order  []NodeID

	start NodeID

	built    bool
	building bool
	registry []*Node
	byName   map[string]*Node
	depths   map[NodeID]int
	maxDepth int
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithTreeLogger sets the structured logger used for bookkeeping warnings.
func WithTreeLogger(logger *slog.Logger) TreeOption {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTree creates an empty tree. The name identifies the tree to content
// providers (e.g. per-speaker tree sets).
func NewTree(name string, opts ...TreeOption) *Tree {
	t := &Tree{
		name:   name,
		logger: logging.NewNop(),
		arena:  make(map[NodeID]*Node),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the tree's identifying name.
func (t *Tree) Name() string { return t.name }

// NewNode allocates a node in the tree's arena and returns it for further
// configuration. The first node created becomes the starting node unless
// SetStartingNode says otherwise.
func (t *Tree) NewNode(speaker, text string) *Node {
	t.nextID++
	n := &Node{
		id:      t.nextID,
		tree:    t,
		Speaker: speaker,
		Text:    text,
	}
	t.arena[n.id] = n
	t.order = append(t.order, n.id)
	if t.start == 0 {
		t.start = n.id
	}
	return n
}

// SetStartingNode designates the traversal root. Nodes from other trees are
// rejected with a warning.
func (t *Tree) SetStartingNode(n *Node) {
	if n == nil {
		t.start = 0
		return
	}
	if n.tree != t {
		t.logger.Warn("refusing starting node from another tree", "tree", t.name)
		return
	}
	t.start = n.id
}

// StartingNode returns the traversal root, or nil.
func (t *Tree) StartingNode() *Node { return t.node(t.start) }

// IsValid reports whether the tree can host a session: a starting node
// exists.
func (t *Tree) IsValid() bool { return t.node(t.start) != nil }

// Len returns the number of nodes owned by the arena, reachable or not.
func (t *Tree) Len() int { return len(t.arena) }

// RefreshRegistry rebuilds the cached registry of reachable nodes with a
// breadth-first walk guarded by a visited set: convergent nodes are counted
// exactly once and cycles through named convergence terminate. Incoming-edge
// sets are recomputed from scratch across the whole arena, so a refresh is
// authoritative after removals and retargets, not just additions. Call after
// structural edits; derived queries use the cache as-is.
func (t *Tree) RefreshRegistry() {
	t.building = true
	defer func() { t.building = false }()

	t.built = true
	t.registry = nil
	t.byName = make(map[string]*Node)
	t.depths = make(map[NodeID]int)
	t.maxDepth = 0

	t.rebuildIncoming()

	start := t.StartingNode()
	if start == nil {
		return
	}

	type item struct {
		n     *Node
		depth int
	}
	visited := make(map[NodeID]struct{})
	queue := []item{{start, 0}}

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if _, ok := visited[it.n.id]; ok {
			continue
		}
		visited[it.n.id] = struct{}{}

		t.registry = append(t.registry, it.n)
		t.depths[it.n.id] = it.depth
		if it.depth > t.maxDepth {
			t.maxDepth = it.depth
		}
		if it.n.Name != "" {
			// First-registered wins on duplicate names.
			if _, dup := t.byName[it.n.Name]; !dup {
				t.byName[it.n.Name] = it.n
			}
		}

		for _, s := range it.n.successors() {
			if _, ok := visited[s.id]; !ok {
				queue = append(queue, item{s, it.depth + 1})
			}
		}
	}
}

// FindNodeByName looks a name up in the registry. On duplicate names the
// first node registered by the traversal wins.
func (t *Tree) FindNodeByName(name string) *Node {
	if name == "" {
		return nil
	}
	if t.building {
		return t.findInArena(name)
	}
	t.ensureRegistry()
	return t.byName[name]
}

// Nodes returns the registered (reachable) nodes in traversal order.
func (t *Tree) Nodes() []*Node {
	t.ensureRegistry()
	out := make([]*Node, len(t.registry))
	copy(out, t.registry)
	return out
}

// ConvergentNodes returns registered nodes with more than one incoming edge.
func (t *Tree) ConvergentNodes() []*Node {
	t.ensureRegistry()
	var out []*Node
	for _, n := range t.registry {
		if n.IsConvergent() {
			out = append(out, n)
		}
	}
	return out
}

// EndNodes returns registered nodes that terminate the conversation.
func (t *Tree) EndNodes() []*Node {
	t.ensureRegistry()
	var out []*Node
	for _, n := range t.registry {
		if n.IsEnd() {
			out = append(out, n)
		}
	}
	return out
}

// MaxDepth returns the number of hops from the starting node to the farthest
// reachable node, zero for a single-node or empty tree.
func (t *Tree) MaxDepth() int {
	t.ensureRegistry()
	return t.maxDepth
}

// node resolves an ID against the arena, nil for zero or unknown IDs.
func (t *Tree) node(id NodeID) *Node {
	if id == 0 {
		return nil
	}
	return t.arena[id]
}

// resolveChoiceTarget applies the precedence rule in one place: the named
// target wins when set (nil if dangling), otherwise the direct reference.
func (t *Tree) resolveChoiceTarget(c *Choice) *Node {
	if c.target.name != "" {
		return t.FindNodeByName(c.target.name)
	}
	return t.node(c.target.id)
}

// rebuildIncoming recomputes every arena node's incoming-edge set from the
// outgoing links that exist right now: next links, direct choice targets,
// and named choice targets that resolve. Edges left behind by removed or
// retargeted links are cleared; a parent whose link disappeared is dropped.
// Runs under the building flag, so name resolution scans the arena in
// creation order.
func (t *Tree) rebuildIncoming() {
	for _, id := range t.order {
		t.arena[id].incoming = nil
	}
	for _, id := range t.order {
		n := t.arena[id]
		if next := n.Next(); next != nil {
			next.noteIncoming(n)
		}
		for _, c := range n.choices {
			if target := t.resolveChoiceTarget(c); target != nil {
				target.noteIncoming(n)
			}
		}
	}
	for _, id := range t.order {
		n := t.arena[id]
		if n.parent == 0 {
			continue
		}
		if _, ok := n.incoming[n.parent]; !ok {
			n.parent = 0
		}
	}
}

// findInArena scans all owned nodes in creation order, used while the
// registry itself is being rebuilt.
func (t *Tree) findInArena(name string) *Node {
	for _, id := range t.order {
		if n := t.arena[id]; n != nil && n.Name == name {
			return n
		}
	}
	return nil
}

func (t *Tree) ensureRegistry() {
	if !t.built {
		t.RefreshRegistry()
	}
}
