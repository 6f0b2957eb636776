// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_classifications_total",
			Help: "Total number of classifications by path and resolved intent",
		},
		[]string{"path", "intent"},
	)

	ClassificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intent_classification_duration_seconds",
			Help: "Duration of a full classification call in seconds",
		},
		[]string{"path"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_cache_requests_total",
			Help: "Result cache lookups by outcome",
		},
		[]string{"result"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_llm_requests_total",
			Help: "LLM completion calls by outcome",
		},
		[]string{"status"},
	)

	LLMRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "intent_llm_request_duration_seconds",
			Help: "Duration of LLM completion calls in seconds",
		},
	)
)
