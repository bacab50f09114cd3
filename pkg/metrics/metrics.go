package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric this service exports.
const Namespace = "hybrid_travel"

// Chat outcomes.
const (
	OutcomeAnswered = "answered"
	OutcomeFallback = "fallback"
	OutcomeFailed   = "failed"
)

// Retrieval sources.
const (
	SourceVector = "vector"
	SourceGraph  = "graph"
)

/*
Collector owns a private registry so several collectors (one per server, or
one per test) never clash over registration.
*/
type Collector struct {
	registry *prometheus.Registry

	ChatRequests     *prometheus.CounterVec
	Fallbacks        *prometheus.CounterVec
	RetrievalResults *prometheus.HistogramVec
	ChatDuration     prometheus.Histogram
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	chatRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "chat_requests_total",
			Help:      "Chat questions answered, by outcome",
		},
		[]string{"outcome"},
	)

	fallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fallback_total",
			Help:      "Answers produced by the template generator, by reason",
		},
		[]string{"reason"},
	)

	retrievalResults := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "retrieval_results",
			Help:      "Results returned per question, by source",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
		[]string{"source"},
	)

	chatDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "chat_duration_seconds",
			Help:      "Time spent answering a question",
			Buckets:   prometheus.DefBuckets,
		},
	)

	registry.MustRegister(chatRequests, fallbacks, retrievalResults, chatDuration)

	return &Collector{
		registry:         registry,
		ChatRequests:     chatRequests,
		Fallbacks:        fallbacks,
		RetrievalResults: retrievalResults,
		ChatDuration:     chatDuration,
	}
}

// RecordRetrieval observes how many matches and facts one question produced.
func (c *Collector) RecordRetrieval(vectorResults, graphResults int) {
	c.RetrievalResults.WithLabelValues(SourceVector).Observe(float64(vectorResults))
	c.RetrievalResults.WithLabelValues(SourceGraph).Observe(float64(graphResults))
}

// RecordOutcome counts a finished question and how long it took.
func (c *Collector) RecordOutcome(outcome string, seconds float64) {
	c.ChatRequests.WithLabelValues(outcome).Inc()
	c.ChatDuration.Observe(seconds)
}

// RecordFallback counts a template answer. reason is a short label such as
// "timeout" or "backend_error".
func (c *Collector) RecordFallback(reason string) {
	c.Fallbacks.WithLabelValues(reason).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the exposition format for this collector only.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
