package dialog

// choiceTarget is the explicit variant behind a choice's destination:
// direct (id set), named (name set), or unresolved (neither). When both are
// set, the name wins; see Choice.Target.
type choiceTarget struct {
	id   NodeID
	name string
}

// Choice is a player-selectable option attached to a node.
type Choice struct {
	owner *Node

	// Text is the display label shown to the player.
	Text string

	// ActionID is an opaque identifier dispatched to the content provider
	// when the choice is taken. Empty means no custom action.
	ActionID string

	// OnSelected fires synchronously when the choice is taken, before any
	// navigation happens.
	OnSelected func(*Choice)

	target choiceTarget
}

// Owner returns the node this choice is attached to.
func (c *Choice) Owner() *Node { return c.owner }

// HasCustomAction reports whether the choice carries an action id.
func (c *Choice) HasCustomAction() bool { return c.ActionID != "" }

// SetTarget points the choice directly at a node and registers the incoming
// edge on it. A nil node clears the direct reference. Note that a named
// target, if also set, still takes precedence at resolution time.
func (c *Choice) SetTarget(target *Node) {
	if target != nil && target.tree != c.owner.tree {
		c.owner.tree.logger.Warn("refusing to target node from another tree",
			"node", c.owner.describe(), "choice", c.Text)
		return
	}

	old := c.directTarget()
	if target == nil {
		c.target.id = 0
	} else {
		c.target.id = target.id
	}

	if old != nil && old != target {
		c.owner.dropReferenceTo(old)
	}
	if target != nil {
		target.noteIncoming(c.owner)
	}
}

// SetTargetByName stores a name for lazy resolution against the owning
// tree's registry. A named target takes precedence over a direct reference
// when both are set.
func (c *Choice) SetTargetByName(name string) {
	c.target.name = name
}

// TargetName returns the pending named target, empty once resolved or when
// none was set.
func (c *Choice) TargetName() string { return c.target.name }

// ResolveNamedTarget looks the stored name up in the tree's registry. On
// success it converts the choice to a direct reference (registering the
// incoming edge) and returns true. On failure it logs a warning and leaves
// the choice untouched, so selecting it ends the dialog.
func (c *Choice) ResolveNamedTarget(t *Tree) bool {
	if c.target.name == "" {
		return false
	}
	found := t.FindNodeByName(c.target.name)
	if found == nil {
		t.logger.Warn("named choice target did not resolve",
			"node", c.owner.describe(), "choice", c.Text, "target", c.target.name)
		return false
	}
	name := c.target.name
	c.target.name = ""
	c.SetTarget(found)
	t.logger.Debug("resolved named choice target",
		"node", c.owner.describe(), "target", name)
	return true
}

// Target resolves the destination against the owning tree: the named target
// wins when set (nil if the name is dangling), otherwise the direct
// reference. A nil result means selecting this choice ends the dialog.
func (c *Choice) Target() *Node {
	return c.owner.tree.resolveChoiceTarget(c)
}

// directTarget returns the direct reference, ignoring any named target.
func (c *Choice) directTarget() *Node {
	if c.target.id == 0 {
		return nil
	}
	return c.owner.tree.node(c.target.id)
}
