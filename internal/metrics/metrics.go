// Package metrics exposes Prometheus instrumentation for the conversation
// engine. All metrics are prefixed with "concierge_".
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	// TurnsTotal counts processed conversation turns.
	TurnsTotal prometheus.Counter

	// IntentsTotal counts classified intents by label, including "unknown".
	IntentsTotal *prometheus.CounterVec

	// BookingsTotal counts confirmed bookings.
	BookingsTotal prometheus.Counter

	// RecoveriesTotal counts turns rescued by the controller safety net.
	RecoveriesTotal prometheus.Counter

	// ActiveSessions tracks the number of persisted sessions.
	ActiveSessions prometheus.Gauge

	// TurnDuration observes end-to-end turn handling time.
	TurnDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg. Passing a fresh
// registry in tests avoids duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TurnsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "concierge_turns_total",
			Help: "Total number of conversation turns processed",
		}),
		IntentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "concierge_intents_total",
			Help: "Total number of classified intents by label",
		}, []string{"intent"}),
		BookingsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "concierge_bookings_total",
			Help: "Total number of confirmed bookings",
		}),
		RecoveriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "concierge_recoveries_total",
			Help: "Total number of turns recovered by the safety net",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "concierge_active_sessions",
			Help: "Current number of persisted sessions",
		}),
		TurnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "concierge_turn_duration_seconds",
			Help:    "End-to-end turn handling time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

// NewNop returns metrics bound to a discarded registry, for callers that do
// not export telemetry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// RecordIntent counts one classified intent.
func (m *Metrics) RecordIntent(intent string) {
	m.IntentsTotal.WithLabelValues(intent).Inc()
}
