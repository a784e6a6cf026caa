// Package metrics exposes Prometheus metrics for generation runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "routegen").
	Namespace string

	// Buckets are the histogram buckets for run duration, in seconds.
	Buckets []float64

	// Registry receives the metrics. Default: a new private registry.
	Registry *prometheus.Registry
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Metrics records generation runs. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	runDuration   prometheus.Histogram
	routes        prometheus.Gauge
	moduleRefs    prometheus.Gauge
	globalModules prometheus.Gauge
	reloadClients prometheus.Gauge
}

// New creates the collector and registers it.
func New(opts ...Option) *Metrics {
	cfg := Config{
		Namespace: "routegen",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
		cfg.Registry.MustRegister(collectors.NewGoCollector())
	}

	factory := promauto.With(cfg.Registry)
	return &Metrics{
		registry: cfg.Registry,

		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "runs_total",
			Help:      "Total number of generation runs by status",
		}, []string{"status"}),

		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "run_duration_seconds",
			Help:      "Generation run duration in seconds",
			Buckets:   cfg.Buckets,
		}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "routes",
			Help:      "Number of routes in the last successful run",
		}),

		moduleRefs: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "route_module_refs",
			Help:      "Number of per-route state module references in the last successful run",
		}),

		globalModules: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "global_modules",
			Help:      "Number of global state modules in the last successful run",
		}),

		reloadClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "reload_clients",
			Help:      "Number of connected live-reload clients",
		}),
	}
}

// ObserveRun records one run. Counts are only recorded for successful runs.
func (m *Metrics) ObserveRun(status string, d time.Duration, routes, moduleRefs, globals int) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(status).Inc()
	m.runDuration.Observe(d.Seconds())
	if status == "success" {
		m.routes.Set(float64(routes))
		m.moduleRefs.Set(float64(moduleRefs))
		m.globalModules.Set(float64(globals))
	}
}

// SetReloadClients records the number of connected live-reload clients.
func (m *Metrics) SetReloadClients(n int) {
	if m == nil {
		return
	}
	m.reloadClients.Set(float64(n))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
