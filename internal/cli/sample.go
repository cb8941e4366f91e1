package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fenwick-games/parley/pkg/adapters/memory"
	"github.com/fenwick-games/parley/pkg/dialog"
	"github.com/fenwick-games/parley/pkg/dsl"
	"github.com/fenwick-games/parley/pkg/registry"
)

// SampleTree builds the demo tavern scene used when no content directory is
// given. It exercises choices, named convergence and an auto-advancing beat.
func SampleTree(logger *slog.Logger) *dialog.Tree {
	b := dsl.New("tavern").WithLogger(logger)

	b.Node("greeting").Say("Innkeeper", "Evening, traveler. What'll it be?").
		Choice("An ale, please.", "order").
		ChoiceWithAction("Just information.", "gossip", "mark_curious").
		Choice("Nothing. Goodbye.", "")

	b.Node("order").Say("Innkeeper", "Coming right up.").
		AutoAdvance(1200 * time.Millisecond).
		Go("closing")

	b.Node("gossip").Say("Innkeeper", "Word is the old mill's haunted. Don't go poking around.").
		Go("closing")

	b.Node("closing").Say("Innkeeper", "Safe travels out there.")

	b.Start("greeting")

	t, err := b.Build()
	if err != nil {
		// The scene is static; a build failure is a programming error.
		panic(fmt.Sprintf("sample tree: %v", err))
	}
	return t
}

func sampleProvider(logger *slog.Logger, out io.Writer) *memory.Provider {
	actions := registry.New()
	actions.Register("mark_curious", func(ctx context.Context) error {
		fmt.Fprintln(out, "* the innkeeper eyes you with new interest *")
		return nil
	})
	return memory.NewProvider(SampleTree(logger),
		memory.WithActions(actions),
		memory.WithLogger(logger),
	)
}
