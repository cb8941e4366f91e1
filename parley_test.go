package parley_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-games/parley"
	"github.com/fenwick-games/parley/internal/metrics"
	"github.com/fenwick-games/parley/pkg/adapters/memory"
	"github.com/fenwick-games/parley/pkg/dialog"
)

func demoProvider() *memory.Provider {
	tree := dialog.NewTree("demo")
	a := tree.NewNode("Guide", "Hello.")
	b := tree.NewNode("Guide", "Goodbye.")
	a.SetNext(b)
	return memory.NewProvider(tree)
}

func TestNavigatorFacade(t *testing.T) {
	ctx := context.Background()

	var entered []string
	nav := parley.NewNavigator(
		parley.WithSubscriber(dialog.SubscriberFuncs{
			OnNodeChanged: func(n *dialog.Node) {
				entered = append(entered, n.Text)
			},
		}),
	)

	require.True(t, nav.StartDialog(ctx, demoProvider(), ""))
	assert.True(t, nav.IsActive())
	assert.Equal(t, "demo", nav.CurrentTree().Name())

	nav.NavigateToNode(ctx, nav.CurrentNode().Next())
	nav.AdvanceDialog(ctx)

	assert.False(t, nav.IsActive())
	assert.Equal(t, []string{"Hello.", "Goodbye."}, entered)
}

func TestNavigatorMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	nav := parley.NewNavigator(parley.WithMetrics(m))
	require.True(t, nav.StartDialog(ctx, demoProvider(), ""))
	nav.NavigateToNode(ctx, nav.CurrentNode().Next())
	nav.EndDialog(ctx)

	families, err := reg.Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, mf := range families {
		total := 0.0
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		got[mf.GetName()] = total
	}

	assert.Equal(t, 1.0, got["parley_sessions_started_total"])
	assert.Equal(t, 1.0, got["parley_sessions_ended_total"])
	assert.Equal(t, 2.0, got["parley_nodes_entered_total"])
}

func TestNavigatorJoinedHooks(t *testing.T) {
	ctx := context.Background()
	var order []string

	nav := parley.NewNavigator(
		parley.WithHooks(dialog.LifecycleHooks{
			OnDialogStart: func(context.Context, *dialog.Tree) { order = append(order, "first") },
		}),
		parley.WithHooks(dialog.LifecycleHooks{
			OnDialogStart: func(context.Context, *dialog.Tree) { order = append(order, "second") },
		}),
	)

	require.True(t, nav.StartDialog(ctx, demoProvider(), ""))
	assert.Equal(t, []string{"first", "second"}, order)
}
