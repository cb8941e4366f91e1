package dialog

import (
	"testing"
)

func TestNodeLinking(t *testing.T) {
	t.Run("SetNext adopts parent and incoming edge", func(t *testing.T) {
		tree := NewTree("linking")
		a := tree.NewNode("A", "first")
		b := tree.NewNode("B", "second")

		a.SetNext(b)

		if b.Parent() != a {
			t.Errorf("expected parent A, got %v", b.Parent())
		}
		if got := len(b.IncomingReferences()); got != 1 {
			t.Errorf("expected 1 incoming reference, got %d", got)
		}
		if a.Next() != b {
			t.Errorf("expected next B, got %v", a.Next())
		}
	})

	t.Run("relinking clears the old target's bookkeeping", func(t *testing.T) {
		tree := NewTree("relink")
		a := tree.NewNode("A", "first")
		b := tree.NewNode("B", "old target")
		c := tree.NewNode("C", "new target")

		a.SetNext(b)
		a.SetNext(c)

		if b.Parent() != nil {
			t.Errorf("old target should have no parent, got %v", b.Parent())
		}
		if got := len(b.IncomingReferences()); got != 0 {
			t.Errorf("old target should have no incoming references, got %d", got)
		}
		if c.Parent() != a {
			t.Errorf("new target should have parent A, got %v", c.Parent())
		}
	})

	t.Run("relink keeps bookkeeping when a choice still points there", func(t *testing.T) {
		tree := NewTree("keep")
		a := tree.NewNode("A", "first")
		b := tree.NewNode("B", "shared target")
		c := tree.NewNode("C", "other")

		a.SetNext(b)
		a.AddChoice("also to b", "").SetTarget(b)
		a.SetNext(c)

		if got := len(b.IncomingReferences()); got != 1 {
			t.Errorf("choice link should keep the incoming edge, got %d", got)
		}
	})

	t.Run("cross-tree link is refused", func(t *testing.T) {
		tree := NewTree("one")
		other := NewTree("two")
		a := tree.NewNode("A", "here")
		x := other.NewNode("X", "elsewhere")

		a.SetNext(x)

		if a.Next() != nil {
			t.Errorf("cross-tree next should be refused, got %v", a.Next())
		}
	})

	t.Run("SetNext nil clears the link", func(t *testing.T) {
		tree := NewTree("clear")
		a := tree.NewNode("A", "first")
		b := tree.NewNode("B", "second")

		a.SetNext(b)
		a.SetNext(nil)

		if a.Next() != nil {
			t.Errorf("expected cleared next, got %v", a.Next())
		}
		if b.Parent() != nil {
			t.Errorf("expected cleared parent, got %v", b.Parent())
		}
	})
}

func TestNodeChoices(t *testing.T) {
	t.Run("RemoveChoice drops the target reference", func(t *testing.T) {
		tree := NewTree("choices")
		a := tree.NewNode("A", "pick one")
		b := tree.NewNode("B", "target")

		a.AddChoice("to b", "").SetTarget(b)
		a.RemoveChoice(0)

		if got := len(a.Choices()); got != 0 {
			t.Errorf("expected 0 choices, got %d", got)
		}
		if got := len(b.IncomingReferences()); got != 0 {
			t.Errorf("expected 0 incoming references, got %d", got)
		}
	})

	t.Run("RemoveChoice out of range is a no-op", func(t *testing.T) {
		tree := NewTree("choices")
		a := tree.NewNode("A", "pick one")
		a.AddChoice("only", "")

		a.RemoveChoice(5)
		a.RemoveChoice(-1)

		if got := len(a.Choices()); got != 1 {
			t.Errorf("expected the choice to survive, got %d", got)
		}
	})
}

func TestNodeTerminality(t *testing.T) {
	tree := NewTree("ends")
	a := tree.NewNode("A", "start")
	b := tree.NewNode("B", "middle")
	c := tree.NewNode("C", "end")
	a.SetNext(b)
	b.AddChoice("onward", "").SetTarget(c)

	if a.IsEnd() {
		t.Error("node with next should not be an end")
	}
	if b.IsEnd() {
		t.Error("node with choices should not be an end")
	}
	if !c.IsEnd() {
		t.Error("node with no successor and no choices should be an end")
	}
}

func TestNodeHierarchy(t *testing.T) {
	tree := NewTree("hierarchy")
	a := tree.NewNode("A", "root")
	b := tree.NewNode("B", "child")
	c := tree.NewNode("C", "grandchild")
	a.SetNext(b)
	b.SetNext(c)

	if got := c.Depth(); got != 2 {
		t.Errorf("expected depth 2, got %d", got)
	}
	anc := c.Ancestors()
	if len(anc) != 2 || anc[0] != b || anc[1] != a {
		t.Errorf("unexpected ancestor chain: %v", anc)
	}

	desc := a.Descendants()
	if len(desc) != 2 {
		t.Errorf("expected 2 descendants, got %d", len(desc))
	}
}

func TestNodeDescendantsWithCycle(t *testing.T) {
	tree := NewTree("cycle")
	a := tree.NewNode("A", "start")
	b := tree.NewNode("B", "loops back")
	a.Name = "a"
	b.Name = "b"
	a.SetNext(b)
	b.AddChoice("again", "").SetTargetByName("a")
	tree.RefreshRegistry()

	desc := a.Descendants()
	if len(desc) != 1 || desc[0] != b {
		t.Fatalf("cycle should terminate with b as the only descendant, got %v", desc)
	}
}
