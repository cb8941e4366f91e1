package dialog

import "fmt"

// Severity classifies a validation finding.
type Severity string

const (
	// SeverityError marks findings that make the tree unusable for a session.
	SeverityError Severity = "error"
	// SeverityWarning marks findings the runtime tolerates but authors
	// should fix.
	SeverityWarning Severity = "warning"
)

// Problem codes reported by Tree.Validate.
const (
	ProblemMissingStart   = "missing-start"
	ProblemNoEndNodes     = "no-end-nodes"
	ProblemDuplicateName  = "duplicate-name"
	ProblemDanglingTarget = "dangling-target"
)

// Problem is one validation finding. Validation reports, it never panics:
// authoring mistakes surface as a list the tooling can print.
type Problem struct {
	Code     string
	Severity Severity
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s (%s)", p.Severity, p.Message, p.Code)
}

// Validate refreshes the registry and reports structural findings:
//   - missing starting node (error)
//   - zero end nodes, i.e. the dialog may loop indefinitely (warning)
//   - duplicate node names, lookup resolves to the first registered (warning)
//   - choices whose named target cannot be resolved; selecting such a choice
//     ends the dialog (warning)
func (t *Tree) Validate() []Problem {
	var problems []Problem

	// Duplicates are checked over the whole arena: a collision anywhere
	// breaks name lookup, reachable or not.
	counts := make(map[string]int)
	for _, id := range t.order {
		if n := t.arena[id]; n != nil && n.Name != "" {
			counts[n.Name]++
		}
	}
	for _, id := range t.order {
		n := t.arena[id]
		if n == nil || n.Name == "" {
			continue
		}
		if counts[n.Name] > 1 {
			problems = append(problems, Problem{
				Code:     ProblemDuplicateName,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("node name %q is used by %d nodes; lookup returns the first registered", n.Name, counts[n.Name]),
			})
			counts[n.Name] = 0 // report each duplicate set once
		}
	}

	if !t.IsValid() {
		problems = append(problems, Problem{
			Code:     ProblemMissingStart,
			Severity: SeverityError,
			Message:  fmt.Sprintf("tree %q has no starting node", t.name),
		})
		return problems
	}

	t.RefreshRegistry()

	if len(t.EndNodes()) == 0 {
		problems = append(problems, Problem{
			Code:     ProblemNoEndNodes,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("tree %q has no end nodes and may loop indefinitely", t.name),
		})
	}

	for _, n := range t.registry {
		for _, c := range n.choices {
			if c.target.name != "" && t.FindNodeByName(c.target.name) == nil {
				problems = append(problems, Problem{
					Code:     ProblemDanglingTarget,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("choice %q on node %q targets unknown name %q; selecting it will end the dialog", c.Text, n.describe(), c.target.name),
				})
			}
		}
	}

	for _, p := range problems {
		t.logger.Warn("tree validation finding", "tree", t.name, "code", p.Code, "detail", p.Message)
	}

	return problems
}
