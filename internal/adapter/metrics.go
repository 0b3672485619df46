package adapter

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "warden"

// Outcome labels.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// RescanMetrics records what the rescan pipeline does.
type RescanMetrics interface {
	ObserveBootstrap(outcome string, findings int, elapsed time.Duration)
	ObserveRescan(outcome string, paths, added, fixed int, elapsed time.Duration)
	ObservePublish(files int)
	SetQueueDepth(depth int)
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) ObserveBootstrap(string, int, time.Duration)        {}
func (NoopMetrics) ObserveRescan(string, int, int, int, time.Duration) {}
func (NoopMetrics) ObservePublish(int)                                 {}
func (NoopMetrics) SetQueueDepth(int)                                  {}

// PrometheusMetrics exports RescanMetrics on its own registry.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	bootstraps      *prometheus.CounterVec
	rescans         *prometheus.CounterVec
	rescanDuration  *prometheus.HistogramVec
	rescannedPaths  prometheus.Counter
	findingsNew     prometheus.Counter
	findingsFixed   prometheus.Counter
	findingsInitial prometheus.Gauge
	publishedFiles  prometheus.Counter
	queueDepth      prometheus.Gauge
}

var _ RescanMetrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the pipeline collectors on a fresh registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		bootstraps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bootstrap_total",
			Help:      "Initial full scans by outcome.",
		}, []string{"outcome"}),
		rescans: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rescans_total",
			Help:      "Partial rescans by outcome.",
		}, []string{"outcome"}),
		rescanDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "scan_duration_seconds",
			Help:      "Scan duration by kind.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		rescannedPaths: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rescanned_paths_total",
			Help:      "Paths handed to partial rescans.",
		}),
		findingsNew: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "findings_new_total",
			Help:      "Findings introduced by rescans.",
		}),
		findingsFixed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "findings_fixed_total",
			Help:      "Findings resolved by rescans.",
		}),
		findingsInitial: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "findings_initial",
			Help:      "Findings reported by the initial scan.",
		}),
		publishedFiles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "published_files_total",
			Help:      "Per-file diagnostic notifications sent.",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "queue_depth",
			Help:      "Paths waiting in the change queue.",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (p *PrometheusMetrics) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *PrometheusMetrics) ObserveBootstrap(outcome string, findings int, elapsed time.Duration) {
	p.bootstraps.WithLabelValues(outcome).Inc()
	p.rescanDuration.WithLabelValues("full").Observe(elapsed.Seconds())

	if outcome == OutcomeOK {
		p.findingsInitial.Set(float64(findings))
	}
}

func (p *PrometheusMetrics) ObserveRescan(outcome string, paths, added, fixed int, elapsed time.Duration) {
	p.rescans.WithLabelValues(outcome).Inc()
	p.rescanDuration.WithLabelValues("partial").Observe(elapsed.Seconds())
	p.rescannedPaths.Add(float64(paths))
	p.findingsNew.Add(float64(added))
	p.findingsFixed.Add(float64(fixed))
}

func (p *PrometheusMetrics) ObservePublish(files int) {
	p.publishedFiles.Add(float64(files))
}

func (p *PrometheusMetrics) SetQueueDepth(depth int) {
	p.queueDepth.Set(float64(depth))
}
