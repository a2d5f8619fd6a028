// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks HTTP requests by surface (web or api).
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resell_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"surface", "method", "status"},
	)

	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resell_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"surface", "method"},
	)

	// RecordsStored counts records handed to the inventory, by list.
	RecordsStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resell_records_stored_total",
			Help: "Total number of records added to the inventory",
		},
		[]string{"list"},
	)

	// RecordsRemoved counts confirmed items deleted from the dashboard.
	RecordsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resell_records_removed_total",
			Help: "Total number of confirmed items removed",
		},
	)

	// WizardEvents counts wizard events by outcome (applied or refused).
	WizardEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resell_wizard_events_total",
			Help: "Total number of wizard events",
		},
		[]string{"event", "outcome"},
	)

	// WizardSessions is the number of open wizard sessions.
	WizardSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resell_wizard_sessions",
			Help: "Number of open wizard sessions",
		},
	)
)

// Outcome labels for WizardEvents.
const (
	OutcomeApplied = "applied"
	OutcomeRefused = "refused"
)

// Outcome maps a boolean result to an outcome label.
func Outcome(ok bool) string {
	if ok {
		return OutcomeApplied
	}
	return OutcomeRefused
}
