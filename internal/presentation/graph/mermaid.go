// Package graph renders dialog trees as Mermaid flowcharts for inspection
// tooling.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fenwick-games/parley/pkg/dialog"
)

// GenerateMermaid produces Mermaid flowchart syntax for a tree's reachable
// nodes. Shapes carry the semantics:
//   - starting node: ((circle))
//   - end node: [[subroutine]]
//   - choice-gated node: {diamond}
//   - plain beat: [rectangle]
//
// Next links are solid arrows, choices are labeled arrows, and dangling
// named targets point at a styled "missing" placeholder.
func GenerateMermaid(t *dialog.Tree) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	start := t.StartingNode()
	missing := make(map[string]bool)

	for _, n := range t.Nodes() {
		id := mermaidID(n)

		opener, closer := "[", "]"
		switch {
		case n == start:
			opener, closer = "((", "))"
		case n.IsEnd():
			opener, closer = "[[", "]]"
		case len(n.Choices()) > 0:
			opener, closer = "{", "}"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, mermaidLabel(n), closer))

		if next := n.Next(); next != nil {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, mermaidID(next)))
		}
		for _, c := range n.Choices() {
			label := strings.ReplaceAll(c.Text, "\"", "'")
			if target := c.Target(); target != nil {
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", id, label, mermaidID(target)))
			} else if name := c.TargetName(); name != "" {
				ph := "missing_" + sanitize(name)
				if !missing[ph] {
					missing[ph] = true
					sb.WriteString(fmt.Sprintf("    %s[\"%s?\"]\n", ph, name))
				}
				sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", id, label, ph))
			}
		}
	}

	if len(missing) > 0 {
		sb.WriteString("\n    classDef missing fill:#fee2e2,stroke:#b91c1c,stroke-width:2px,color:#000;\n")
		placeholders := make([]string, 0, len(missing))
		for ph := range missing {
			placeholders = append(placeholders, ph)
		}
		sort.Strings(placeholders)
		for _, ph := range placeholders {
			sb.WriteString(fmt.Sprintf("    class %s missing;\n", ph))
		}
	}

	return sb.String()
}

func mermaidID(n *dialog.Node) string {
	if n.Name != "" {
		return "n_" + sanitize(n.Name)
	}
	return fmt.Sprintf("n_%d", n.ID())
}

func mermaidLabel(n *dialog.Node) string {
	if n.Name != "" {
		return n.Name
	}
	if n.Speaker != "" {
		return n.Speaker
	}
	return fmt.Sprintf("#%d", n.ID())
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
