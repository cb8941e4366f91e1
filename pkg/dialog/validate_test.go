package dialog

import (
	"testing"
)

func hasProblem(problems []Problem, code string) bool {
	for _, p := range problems {
		if p.Code == code {
			return true
		}
	}
	return false
}

func TestValidate(t *testing.T) {
	t.Run("clean tree reports nothing", func(t *testing.T) {
		tree, _ := branchingTree(t)
		if problems := tree.Validate(); len(problems) != 0 {
			t.Errorf("expected no problems, got %v", problems)
		}
	})

	t.Run("missing start is an error", func(t *testing.T) {
		tree := NewTree("empty")
		problems := tree.Validate()
		if !hasProblem(problems, ProblemMissingStart) {
			t.Fatalf("expected missing-start, got %v", problems)
		}
		if problems[0].Severity != SeverityError {
			t.Errorf("missing start should be an error, got %s", problems[0].Severity)
		}
	})

	t.Run("no end nodes is a warning", func(t *testing.T) {
		tree := NewTree("loop")
		a := tree.NewNode("A", "start")
		b := tree.NewNode("B", "middle")
		a.Name = "a"
		a.SetNext(b)
		b.AddChoice("again", "").SetTargetByName("a")

		problems := tree.Validate()
		if !hasProblem(problems, ProblemNoEndNodes) {
			t.Errorf("expected no-end-nodes, got %v", problems)
		}
	})

	t.Run("duplicate names are reported once per set", func(t *testing.T) {
		tree := NewTree("dupes")
		a := tree.NewNode("A", "first")
		b := tree.NewNode("B", "second")
		a.Name = "twin"
		b.Name = "twin"
		a.SetNext(b)

		problems := tree.Validate()
		count := 0
		for _, p := range problems {
			if p.Code == ProblemDuplicateName {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected exactly one duplicate-name finding, got %d (%v)", count, problems)
		}
	})

	t.Run("dangling named target is a warning, never a panic", func(t *testing.T) {
		tree := NewTree("dangling")
		a := tree.NewNode("A", "pick")
		a.AddChoice("into the void", "").SetTargetByName("missing")

		problems := tree.Validate()
		if !hasProblem(problems, ProblemDanglingTarget) {
			t.Errorf("expected dangling-target, got %v", problems)
		}
	})
}
