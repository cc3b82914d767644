// Package metrics exposes Prometheus collectors for remote loading.
package metrics

import (
	"net/http"

	"remote-loader/core/remote"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeLoaded   = "loaded"
	OutcomeTimeout  = "timeout"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
	ResultLoaded    = "loaded"
	ResultLoadError = "error"
)

// Observer records remote.Loader events into a Prometheus registry.
type Observer struct {
	registry    *prometheus.Registry
	loads       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	stylesheets *prometheus.CounterVec
}

// New creates an Observer with its own registry, including the process and Go
// runtime collectors.
func New() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "remote_loader",
				Name:      "loads_total",
				Help:      "Total number of remote feature loads by outcome.",
			},
			[]string{"remote", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "remote_loader",
				Name:      "load_duration_seconds",
				Help:      "Time until a remote feature load settled.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"remote"},
		),
		stylesheets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "remote_loader",
				Name:      "stylesheets_total",
				Help:      "Total number of stylesheet links inserted by result.",
			},
			[]string{"result"},
		),
	}

	o.registry.MustRegister(
		o.loads,
		o.duration,
		o.stylesheets,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return o
}

// Registry returns the underlying registry.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// Handler returns an HTTP handler exposing the registered metrics.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

// LoadFinished implements remote.Observer.
func (o *Observer) LoadFinished(out remote.LoadOutcome) {
	name := out.Name
	if name == "" {
		name = "adhoc"
	}
	o.loads.WithLabelValues(name, Outcome(out)).Inc()
	o.duration.WithLabelValues(name).Observe(out.Elapsed.Seconds())
}

// StylesheetInserted implements remote.Observer.
func (o *Observer) StylesheetInserted(_ remote.Link, err error) {
	result := ResultLoaded
	if err != nil {
		result = ResultLoadError
	}
	o.stylesheets.WithLabelValues(result).Inc()
}

// Outcome classifies a load for the outcome label.
func Outcome(out remote.LoadOutcome) string {
	switch {
	case !out.Fallback:
		return OutcomeLoaded
	case remote.IsTimeout(out.Err):
		return OutcomeTimeout
	case remote.IsInvalidRoutes(out.Err):
		return OutcomeInvalid
	default:
		return OutcomeFailed
	}
}
