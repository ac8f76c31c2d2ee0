package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal   *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	indicatorValue *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
	signalsEmitted prometheus.Counter
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropull_fetches_total",
				Help: "Total number of successful series fetches",
			},
			[]string{"series"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropull_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		indicatorValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macropull_indicator_value",
				Help: "Latest observed value for an indicator series",
			},
			[]string{"series"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macropull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		signalsEmitted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "macropull_signals_emitted_total",
				Help: "Total number of trading signals emitted across runs",
			},
		),
	}
}

// RecordFetch records one successful series fetch.
func (r *Recorder) RecordFetch(series string) {
	r.fetchesTotal.WithLabelValues(series).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordIndicatorValue records the latest value for a series.
func (r *Recorder) RecordIndicatorValue(series string, value float64) {
	r.indicatorValue.WithLabelValues(series).Set(value)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordSignals adds the signal count of one run.
func (r *Recorder) RecordSignals(count int) {
	r.signalsEmitted.Add(float64(count))
}
