// Package tui renders dialog beats for the interactive terminal player.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/fenwick-games/parley/pkg/dialog"
)

// NewRenderer returns a function that renders a node's text as markdown.
// Falls back to plain text when the terminal renderer cannot initialize
// (e.g. in a pipe).
func NewRenderer() func(*dialog.Node) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	return func(n *dialog.Node) string {
		var sb strings.Builder
		sb.WriteString(speakerStyle(n).Render(speakerLabel(n)))
		sb.WriteString("\n")

		if err != nil || r == nil {
			sb.WriteString(n.Text)
			sb.WriteString("\n")
			return sb.String()
		}
		out, rerr := r.Render(n.Text)
		if rerr != nil {
			sb.WriteString(n.Text)
			sb.WriteString("\n")
			return sb.String()
		}
		sb.WriteString(out)
		return sb.String()
	}
}

// RenderChoices formats the numbered choice menu.
func RenderChoices(choices []*dialog.Choice) string {
	var sb strings.Builder
	for i, c := range choices {
		line := fmt.Sprintf("%d) %s", i+1, c.Text)
		if c.HasCustomAction() {
			line += actionBadge.Render(" [" + c.ActionID + "]")
		}
		sb.WriteString(choiceStyle.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

func speakerLabel(n *dialog.Node) string {
	if n.Speaker == "" {
		return "…"
	}
	if n.PlayerSpeaking {
		return n.Speaker + " (you)"
	}
	return n.Speaker
}
