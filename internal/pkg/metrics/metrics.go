// Package metrics declares the Prometheus collectors shared by both services.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "orderflow"

// Consumed message outcomes.
const (
	OutcomeAcked        = "acked"
	OutcomeRetried      = "retried"
	OutcomeRequeued     = "requeued"
	OutcomeDeadLettered = "dead_lettered"
)

var (
	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of domain events handed to a transport",
		},
		[]string{"transport", "event_type", "result"},
	)

	MessagesConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total number of consumed messages by final outcome",
		},
		[]string{"queue", "outcome"},
	)

	StatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Total number of persisted status transitions",
		},
		[]string{"entity", "status"},
	)

	MessageProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_processing_duration_seconds",
			Help:      "Duration of consumed message processing",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"queue"},
	)

	StoreUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_up",
			Help:      "1 when the last store health probe succeeded",
		},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			EventsPublishedTotal,
			MessagesConsumedTotal,
			StatusTransitionsTotal,
			MessageProcessingDuration,
			StoreUp,
		)
	})
}

// PublishResult maps a publish error to the result label.
func PublishResult(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
