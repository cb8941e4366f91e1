// Package metrics exposes Prometheus collectors for dialog sessions, fed by
// the Navigator's lifecycle hooks.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fenwick-games/parley/pkg/dialog"
)

// Metrics holds the session counters. Create with New and attach to a
// Navigator via parley.WithMetrics.
type Metrics struct {
	sessionsStarted prometheus.Counter
	sessionsEnded   prometheus.Counter
	nodesEntered    *prometheus.CounterVec
	customActions   *prometheus.CounterVec
}

// New builds and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parley",
			Name:      "sessions_started_total",
			Help:      "Dialog sessions started.",
		}),
		sessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parley",
			Name:      "sessions_ended_total",
			Help:      "Dialog sessions ended.",
		}),
		nodesEntered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parley",
			Name:      "nodes_entered_total",
			Help:      "Dialog nodes entered, by tree.",
		}, []string{"tree"}),
		customActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parley",
			Name:      "custom_actions_total",
			Help:      "Custom actions dispatched to content providers, by action id.",
		}, []string{"action"}),
	}
	reg.MustRegister(m.sessionsStarted, m.sessionsEnded, m.nodesEntered, m.customActions)
	return m
}

// Hooks returns lifecycle hooks that increment the counters.
func (m *Metrics) Hooks() dialog.LifecycleHooks {
	return dialog.LifecycleHooks{
		OnDialogStart: func(_ context.Context, _ *dialog.Tree) {
			m.sessionsStarted.Inc()
		},
		OnNodeEnter: func(_ context.Context, n *dialog.Node) {
			tree := ""
			if n.Tree() != nil {
				tree = n.Tree().Name()
			}
			m.nodesEntered.WithLabelValues(tree).Inc()
		},
		OnCustomAction: func(_ context.Context, _ *dialog.Choice, actionID string) {
			m.customActions.WithLabelValues(actionID).Inc()
		},
		OnDialogEnd: func(_ context.Context) {
			m.sessionsEnded.Inc()
		},
	}
}
