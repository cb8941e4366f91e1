package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fenwick-games/parley/pkg/dialog"
)

var (
	npcStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#a78bfa"))

	playerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#34d399"))

	choiceStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("#e5e7eb"))

	actionBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))
)

func speakerStyle(n *dialog.Node) lipgloss.Style {
	if n.PlayerSpeaking {
		return playerStyle
	}
	return npcStyle
}
