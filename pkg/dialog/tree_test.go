package dialog

import (
	"testing"
)

// branchingTree builds a small scene with a convergence point:
//
//	greet -> offer -(buy)-> shop -> farewell
//	              \-(talk)-> gossip -> farewell
func branchingTree(t *testing.T) (*Tree, map[string]*Node) {
	t.Helper()
	tree := NewTree("market")

	greet := tree.NewNode("Vendor", "Welcome!")
	offer := tree.NewNode("Vendor", "Buying or talking?")
	shop := tree.NewNode("Vendor", "Here are my wares.")
	gossip := tree.NewNode("Vendor", "Have you heard?")
	farewell := tree.NewNode("Vendor", "Safe travels.")

	greet.Name = "greet"
	offer.Name = "offer"
	shop.Name = "shop"
	gossip.Name = "gossip"
	farewell.Name = "farewell"

	greet.SetNext(offer)
	offer.AddChoice("Buying.", "").SetTarget(shop)
	offer.AddChoice("Talking.", "").SetTarget(gossip)
	shop.SetNext(farewell)
	gossip.AddChoice("Go on...", "").SetTargetByName("farewell")

	tree.RefreshRegistry()
	return tree, map[string]*Node{
		"greet": greet, "offer": offer, "shop": shop,
		"gossip": gossip, "farewell": farewell,
	}
}

func TestTreeRegistry(t *testing.T) {
	tree, nodes := branchingTree(t)

	t.Run("registry counts a convergent node once", func(t *testing.T) {
		if got := len(tree.Nodes()); got != 5 {
			t.Errorf("expected 5 registered nodes, got %d", got)
		}
	})

	t.Run("convergent node is reported", func(t *testing.T) {
		conv := tree.ConvergentNodes()
		if len(conv) != 1 || conv[0] != nodes["farewell"] {
			t.Errorf("expected farewell as the only convergent node, got %v", conv)
		}
	})

	t.Run("end nodes", func(t *testing.T) {
		ends := tree.EndNodes()
		if len(ends) != 1 || ends[0] != nodes["farewell"] {
			t.Errorf("expected farewell as the only end node, got %v", ends)
		}
	})

	t.Run("max depth follows the shortest path", func(t *testing.T) {
		// BFS depth: greet 0, offer 1, shop/gossip 2, farewell 3.
		if got := tree.MaxDepth(); got != 3 {
			t.Errorf("expected max depth 3, got %d", got)
		}
	})

	t.Run("lookup by name", func(t *testing.T) {
		if got := tree.FindNodeByName("gossip"); got != nodes["gossip"] {
			t.Errorf("expected gossip node, got %v", got)
		}
		if got := tree.FindNodeByName("nope"); got != nil {
			t.Errorf("expected nil for unknown name, got %v", got)
		}
		if got := tree.FindNodeByName(""); got != nil {
			t.Errorf("expected nil for empty name, got %v", got)
		}
	})
}

func TestTreeCycleTermination(t *testing.T) {
	tree := NewTree("loop")
	a := tree.NewNode("A", "start")
	b := tree.NewNode("B", "middle")
	a.Name = "a"
	b.Name = "b"
	a.SetNext(b)
	b.AddChoice("back to the top", "").SetTargetByName("a")

	tree.RefreshRegistry()

	if got := len(tree.Nodes()); got != 2 {
		t.Fatalf("cyclic tree should register 2 nodes, got %d", got)
	}
	if got := len(a.IncomingReferences()); got != 1 {
		t.Errorf("the named back-edge should register an incoming edge on a, got %d", got)
	}
}

func TestIncomingEdgesForNamedTargets(t *testing.T) {
	// start -> a -> end (next links), plus a named choice a -> end.
	build := func() (*Tree, *Node, *Node) {
		tree := NewTree("edges")
		a := tree.NewNode("A", "branch point")
		b := tree.NewNode("B", "detour")
		end := tree.NewNode("C", "both roads lead here")
		end.Name = "end"
		a.SetNext(b)
		b.SetNext(end)
		a.AddChoice("skip ahead", "").SetTargetByName("end")
		tree.RefreshRegistry()
		return tree, a, end
	}

	t.Run("named choice registers an incoming edge", func(t *testing.T) {
		_, _, end := build()
		if !end.IsConvergent() {
			t.Fatal("end should be convergent with a next link and a named choice")
		}
		if got := len(end.IncomingReferences()); got != 2 {
			t.Fatalf("expected 2 incoming references, got %d", got)
		}
	})

	t.Run("removing a named-target choice clears its incoming edge", func(t *testing.T) {
		_, a, end := build()
		a.RemoveChoice(0)

		if end.IsConvergent() {
			t.Error("end should no longer be convergent after the choice is removed")
		}
		if got := len(end.IncomingReferences()); got != 1 {
			t.Errorf("expected 1 incoming reference, got %d", got)
		}
	})

	t.Run("refresh recomputes incoming edges from scratch", func(t *testing.T) {
		tree, a, end := build()
		a.RemoveChoice(0)
		tree.RefreshRegistry()

		if end.IsConvergent() {
			t.Error("refresh must not resurrect the removed choice's edge")
		}
		if got := len(end.IncomingReferences()); got != 1 {
			t.Errorf("expected 1 incoming reference after refresh, got %d", got)
		}
		if conv := tree.ConvergentNodes(); len(conv) != 0 {
			t.Errorf("expected no convergent nodes, got %v", conv)
		}
	})

	t.Run("relinking next keeps an edge a named choice still justifies", func(t *testing.T) {
		tree := NewTree("relink")
		a := tree.NewNode("A", "source")
		end := tree.NewNode("B", "target")
		other := tree.NewNode("C", "elsewhere")
		end.Name = "end"
		a.SetNext(end)
		a.AddChoice("also here", "").SetTargetByName("end")
		tree.RefreshRegistry()

		a.SetNext(other)

		if got := len(end.IncomingReferences()); got != 1 {
			t.Errorf("the named choice should keep the incoming edge, got %d", got)
		}
	})
}

func TestTreeDuplicateNames(t *testing.T) {
	tree := NewTree("dupes")
	first := tree.NewNode("A", "first claimant")
	second := tree.NewNode("B", "second claimant")
	first.Name = "twin"
	second.Name = "twin"
	first.SetNext(second)

	tree.RefreshRegistry()

	if got := tree.FindNodeByName("twin"); got != first {
		t.Errorf("first registered node should win the name, got %v", got)
	}
}

func TestTreeStartingNode(t *testing.T) {
	t.Run("first node becomes the start", func(t *testing.T) {
		tree := NewTree("start")
		a := tree.NewNode("A", "hello")
		tree.NewNode("B", "unreachable")

		if tree.StartingNode() != a {
			t.Errorf("expected first node as start, got %v", tree.StartingNode())
		}
		if !tree.IsValid() {
			t.Error("tree with a start should be valid")
		}
	})

	t.Run("empty tree is invalid", func(t *testing.T) {
		tree := NewTree("empty")
		if tree.IsValid() {
			t.Error("empty tree should be invalid")
		}
		if got := len(tree.Nodes()); got != 0 {
			t.Errorf("empty tree should register nothing, got %d", got)
		}
	})

	t.Run("unreachable nodes stay out of the registry", func(t *testing.T) {
		tree := NewTree("island")
		tree.NewNode("A", "start")
		tree.NewNode("B", "island")

		tree.RefreshRegistry()

		if got := len(tree.Nodes()); got != 1 {
			t.Errorf("expected 1 reachable node, got %d", got)
		}
		if got := tree.Len(); got != 2 {
			t.Errorf("arena should still own 2 nodes, got %d", got)
		}
	})

	t.Run("starting node from another tree is refused", func(t *testing.T) {
		tree := NewTree("mine")
		other := NewTree("theirs")
		a := tree.NewNode("A", "hello")
		x := other.NewNode("X", "intruder")

		tree.SetStartingNode(x)

		if tree.StartingNode() != a {
			t.Errorf("start should stay on a, got %v", tree.StartingNode())
		}
	})
}
