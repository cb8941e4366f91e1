package dsl

import (
	"fmt"
	"log/slog"

	"github.com/fenwick-games/parley/pkg/dialog"
)

// Builder accumulates node definitions and compiles them into a
// dialog.Tree. Nodes reference each other by name; targets may be declared
// before or after the nodes they point at.
type Builder struct {
	treeName string
	logger   *slog.Logger
	order    []string
	nodes    map[string]*NodeBuilder
	start    string
}

// New creates a builder for a tree with the given name.
func New(treeName string) *Builder {
	return &Builder{
		treeName: treeName,
		nodes:    make(map[string]*NodeBuilder),
	}
}

// WithLogger attaches a logger to the built tree.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Node declares (or reopens) a named node.
func (b *Builder) Node(name string) *NodeBuilder {
	if nb, ok := b.nodes[name]; ok {
		return nb
	}
	nb := &NodeBuilder{name: name, builder: b}
	b.nodes[name] = nb
	b.order = append(b.order, name)
	return nb
}

// Start declares the starting node. Without it the first declared node is
// the start.
func (b *Builder) Start(name string) *NodeBuilder {
	b.start = name
	return b.Node(name)
}

// Build compiles the declarations into a tree, resolving name references.
// It fails on an empty builder or a start reference to an undeclared node;
// softer authoring mistakes are left to Tree.Validate.
func (b *Builder) Build() (*dialog.Tree, error) {
	if len(b.order) == 0 {
		return nil, fmt.Errorf("dsl: tree %q has no nodes", b.treeName)
	}

	var opts []dialog.TreeOption
	if b.logger != nil {
		opts = append(opts, dialog.WithTreeLogger(b.logger))
	}
	tree := dialog.NewTree(b.treeName, opts...)

	built := make(map[string]*dialog.Node, len(b.order))
	for _, name := range b.order {
		nb := b.nodes[name]
		n := tree.NewNode(nb.speaker, nb.text)
		n.Name = name
		n.PlayerSpeaking = nb.player
		n.AutoAdvance = nb.autoAdvance
		built[name] = n
	}

	for _, name := range b.order {
		nb := b.nodes[name]
		n := built[name]
		if nb.next != "" {
			target, ok := built[nb.next]
			if !ok {
				return nil, fmt.Errorf("dsl: node %q goes to undeclared node %q", name, nb.next)
			}
			n.SetNext(target)
		}
		for _, cb := range nb.choices {
			c := n.AddChoice(cb.text, cb.actionID)
			c.OnSelected = cb.onSelected
			if cb.target != "" {
				c.SetTargetByName(cb.target)
			}
		}
	}

	start := b.start
	if start == "" {
		start = b.order[0]
	}
	startNode, ok := built[start]
	if !ok {
		return nil, fmt.Errorf("dsl: starting node %q is not declared", start)
	}
	tree.SetStartingNode(startNode)
	tree.RefreshRegistry()

	return tree, nil
}
