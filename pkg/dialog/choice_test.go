package dialog

import (
	"testing"
)

func TestChoiceTargetPrecedence(t *testing.T) {
	t.Run("named target wins over direct reference", func(t *testing.T) {
		tree := NewTree("precedence")
		a := tree.NewNode("A", "pick")
		direct := tree.NewNode("B", "direct")
		named := tree.NewNode("C", "named")
		named.Name = "by-name"
		a.AddChoice("reach named", "").SetTarget(named)
		tree.RefreshRegistry()

		c := a.AddChoice("ambiguous", "")
		c.SetTarget(direct)
		c.SetTargetByName("by-name")

		if got := c.Target(); got != named {
			t.Errorf("named target should win, got %v", got)
		}
	})

	t.Run("dangling name resolves to nil even with a direct reference", func(t *testing.T) {
		tree := NewTree("dangling")
		a := tree.NewNode("A", "pick")
		direct := tree.NewNode("B", "direct")

		c := a.AddChoice("broken", "")
		c.SetTarget(direct)
		c.SetTargetByName("nowhere")
		tree.RefreshRegistry()

		if got := c.Target(); got != nil {
			t.Errorf("dangling name should resolve to nil, got %v", got)
		}
	})

	t.Run("direct reference used when no name is set", func(t *testing.T) {
		tree := NewTree("direct")
		a := tree.NewNode("A", "pick")
		b := tree.NewNode("B", "target")

		c := a.AddChoice("go", "")
		c.SetTarget(b)

		if got := c.Target(); got != b {
			t.Errorf("expected direct target, got %v", got)
		}
	})

	t.Run("no target at all resolves to nil", func(t *testing.T) {
		tree := NewTree("none")
		a := tree.NewNode("A", "pick")
		c := a.AddChoice("bail", "")

		if got := c.Target(); got != nil {
			t.Errorf("expected nil target, got %v", got)
		}
	})
}

func TestChoiceResolveNamedTarget(t *testing.T) {
	t.Run("successful resolution converts to a direct reference", func(t *testing.T) {
		tree := NewTree("resolve")
		a := tree.NewNode("A", "pick")
		b := tree.NewNode("B", "target")
		b.Name = "dest"
		a.AddChoice("seed reachability", "").SetTarget(b)
		tree.RefreshRegistry()

		c := a.AddChoice("go", "")
		c.SetTargetByName("dest")

		if !c.ResolveNamedTarget(tree) {
			t.Fatal("resolution should succeed")
		}
		if c.TargetName() != "" {
			t.Errorf("name should be cleared after resolution, got %q", c.TargetName())
		}
		if got := c.Target(); got != b {
			t.Errorf("expected direct target b, got %v", got)
		}
	})

	t.Run("failed resolution leaves the choice untouched", func(t *testing.T) {
		tree := NewTree("resolve")
		a := tree.NewNode("A", "pick")
		c := a.AddChoice("go", "")
		c.SetTargetByName("ghost")
		tree.RefreshRegistry()

		if c.ResolveNamedTarget(tree) {
			t.Fatal("resolution should fail")
		}
		if c.TargetName() != "ghost" {
			t.Errorf("name should survive a failed resolution, got %q", c.TargetName())
		}
	})

	t.Run("no name is a false return", func(t *testing.T) {
		tree := NewTree("resolve")
		a := tree.NewNode("A", "pick")
		c := a.AddChoice("go", "")

		if c.ResolveNamedTarget(tree) {
			t.Error("resolution without a name should return false")
		}
	})
}

func TestChoiceCrossTreeTarget(t *testing.T) {
	tree := NewTree("one")
	other := NewTree("two")
	a := tree.NewNode("A", "pick")
	x := other.NewNode("X", "elsewhere")

	c := a.AddChoice("forbidden", "")
	c.SetTarget(x)

	if got := c.Target(); got != nil {
		t.Errorf("cross-tree target should be refused, got %v", got)
	}
}

func TestChoiceCustomAction(t *testing.T) {
	tree := NewTree("actions")
	a := tree.NewNode("A", "pick")

	plain := a.AddChoice("plain", "")
	acted := a.AddChoice("acted", "open_shop")

	if plain.HasCustomAction() {
		t.Error("empty action id should not count as a custom action")
	}
	if !acted.HasCustomAction() {
		t.Error("non-empty action id should count as a custom action")
	}
	if acted.Owner() != a {
		t.Errorf("owner should be a, got %v", acted.Owner())
	}
}
