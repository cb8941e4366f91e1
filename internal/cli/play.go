// Package cli implements the interactive terminal player: the reference
// presentation layer for the dialog runtime. It subscribes to the
// Navigator, renders beats, schedules auto-advance, and feeds player input
// back as choice selections.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/fenwick-games/parley"
	"github.com/fenwick-games/parley/internal/presentation/tui"
	"github.com/fenwick-games/parley/pkg/adapters/yamlfile"
	"github.com/fenwick-games/parley/pkg/dialog"
	"github.com/fenwick-games/parley/pkg/ports"
)

// PlayOptions configures an interactive run.
type PlayOptions struct {
	// Dir is a directory of YAML trees. Empty runs the built-in sample
	// scene.
	Dir string

	// Tree selects the conversation to start; empty means the provider's
	// main tree.
	Tree string

	Logger *slog.Logger
	Input  io.Reader
	Output io.Writer
}

// Play runs one conversation to completion (or until the player quits).
func Play(opts PlayOptions) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	provider, err := resolveProvider(opts)
	if err != nil {
		return err
	}

	render := tui.NewRenderer()
	nav := parley.NewNavigator(
		parley.WithLogger(opts.Logger),
		parley.WithSubscriber(dialog.SubscriberFuncs{
			OnNodeChanged: func(n *dialog.Node) {
				fmt.Fprint(opts.Output, render(n))
				if choices := n.Choices(); len(choices) > 0 {
					fmt.Fprint(opts.Output, tui.RenderChoices(choices))
				}
			},
			OnCustomAction: func(c *dialog.Choice, actionID string) {
				opts.Logger.Debug("custom action acknowledged", "action", actionID, "choice", c.Text)
			},
			OnDialogEnded: func() {
				fmt.Fprintln(opts.Output, "\n(conversation over)")
			},
		}),
	)

	ctx := context.Background()
	if !nav.StartDialog(ctx, provider, opts.Tree) {
		return fmt.Errorf("could not start dialog (tree %q)", opts.Tree)
	}

	if f, ok := opts.Input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tui.Banner(opts.Output, nav.CurrentTree().Name())
	}

	scanner := bufio.NewScanner(opts.Input)
	for nav.IsActive() {
		node := nav.CurrentNode()

		if choices := node.Choices(); len(choices) > 0 {
			fmt.Fprintf(opts.Output, "choose 1-%d (q to quit) > ", len(choices))
			line, ok := readLine(scanner)
			if !ok || isQuit(line) {
				nav.EndDialog(ctx)
				break
			}
			i, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintln(opts.Output, "enter a number")
				continue
			}
			nav.SelectChoice(ctx, i-1)
			continue
		}

		if next := node.Next(); next != nil {
			if node.AutoAdvance > 0 {
				// The schedule belongs to the presentation layer: capture
				// the node and fire only if it is still current.
				captured := node
				timer := time.NewTimer(node.AutoAdvance)
				<-timer.C
				if nav.CurrentNode() == captured {
					nav.NavigateToNode(ctx, next)
				}
				continue
			}
			if !pressEnter(opts.Output, scanner) {
				nav.EndDialog(ctx)
				break
			}
			nav.NavigateToNode(ctx, next)
			continue
		}

		// End node: one last acknowledgment, then close the session.
		if !pressEnter(opts.Output, scanner) {
			nav.EndDialog(ctx)
			break
		}
		nav.AdvanceDialog(ctx)
	}

	return nil
}

func resolveProvider(opts PlayOptions) (ports.ContentProvider, error) {
	if opts.Dir == "" {
		return sampleProvider(opts.Logger, opts.Output), nil
	}

	loader := yamlfile.NewLoader(opts.Dir, yamlfile.WithLogger(opts.Logger))
	main := opts.Tree
	if main == "" {
		names, err := loader.ListTrees()
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("no trees in %s", opts.Dir)
		}
		main = names[0]
	}
	return yamlfile.NewProvider(loader, main, yamlfile.WithProviderLogger(opts.Logger)), nil
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func isQuit(line string) bool {
	return line == "q" || line == "quit" || line == "exit"
}

func pressEnter(out io.Writer, scanner *bufio.Scanner) bool {
	fmt.Fprint(out, "(enter) > ")
	line, ok := readLine(scanner)
	return ok && !isQuit(line)
}
