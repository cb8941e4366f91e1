package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Banner writes the player's startup header to w, colored when the terminal
// supports it.
func Banner(w io.Writer, treeName string) {
	p := termenv.ColorProfile()

	title := termenv.String(" parley ").
		Foreground(p.Color("#0b0b0f")).
		Background(p.Color("#a78bfa")).
		Bold()
	sub := termenv.String(" " + treeName).Foreground(p.Color("#6b7280"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, title.String()+sub.String())
	fmt.Fprintln(w)
}
