// Package metrics exposes coordinator counters for Prometheus scraping.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "codepair",
		Name:      "sessions_created_total",
		Help:      "Sessions created by an interviewer first-join.",
	})
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "codepair",
		Name:      "active_sessions",
		Help:      "Sessions currently held in the registry.",
	})
	ConnectedParticipants = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "codepair",
		Name:      "connected_participants",
		Help:      "Live session memberships across all sessions.",
	})
	DocumentUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codepair",
		Name:      "document_updates_total",
		Help:      "Canonical document updates relayed, by field.",
	}, []string{"field"})
	ActivityRelayed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "codepair",
		Name:      "activity_events_total",
		Help:      "Candidate activity events fanned out to interviewers.",
	})
	ActivityDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "codepair",
		Name:      "activity_dropped_total",
		Help:      "Candidate activity events dropped by rate limiting or backpressure.",
	})
)

func init() {
	prometheus.MustRegister(
		SessionsCreated,
		ActiveSessions,
		ConnectedParticipants,
		DocumentUpdates,
		ActivityRelayed,
		ActivityDropped,
	)
}
