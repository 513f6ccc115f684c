// Package metrics defines the Prometheus collectors for the chatbot.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// MessagesTotal counts handled messages by resolved intent.
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trialbot_messages_total",
			Help: "Total messages handled, by resolved intent",
		},
		[]string{"intent"},
	)

	// SearchesTotal counts trial searches by outcome
	// (local, nationwide, empty, degraded).
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trialbot_trial_searches_total",
			Help: "Total trial searches, by outcome",
		},
		[]string{"outcome"},
	)

	// RegistryDuration observes round-trip time per registry request.
	RegistryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "trialbot_registry_request_duration_seconds",
			Help: "Duration of ClinicalTrials.gov requests",
		},
	)
)

// MustRegister registers all collectors with the default registry. Called
// once from main; the collectors work unregistered in tests.
func MustRegister() {
	prometheus.MustRegister(MessagesTotal, SearchesTotal, RegistryDuration)
}
