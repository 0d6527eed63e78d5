// Package metrics exposes Prometheus collectors for the HTTP service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vijay-prabhu/replybot/internal/responder"
)

const namespace = "replybot"

// FallbackLabel is the rule label recorded when no rule matched
const FallbackLabel = "_fallback"

// Metrics holds the service collectors
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	ruleHits *prometheus.CounterVec
	scores   prometheus.Histogram
}

// MustNewMetrics creates the collectors and registers them with reg. A
// registration error panics, as promauto does.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		ruleHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "responder",
				Name:      "selections_total",
				Help:      "Responses served, by winning rule.",
			},
			[]string{"rule"},
		),
		scores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "responder",
				Name:      "winning_score",
				Help:      "Distribution of the best rule score per utterance.",
				Buckets:   []float64{0, 1, 10, 25, 50, 75, 100, 150},
			},
		),
	}

	reg.MustRegister(m.requests, m.duration, m.ruleHits, m.scores)
	return m
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveSelection records which rule answered an utterance
func (m *Metrics) ObserveSelection(res responder.Result) {
	if m == nil {
		return
	}
	rule := res.Rule
	if res.Fallback {
		rule = FallbackLabel
	}
	m.ruleHits.WithLabelValues(rule).Inc()
	m.scores.Observe(float64(res.Score))
}
