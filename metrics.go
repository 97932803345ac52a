package sensordash

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records page and chart traffic. Each instance owns its registry so
// several servers can live in one process (tests do this).
type Metrics struct {
	registry *prometheus.Registry

	pageRenders    prometheus.Counter
	chartBuilds    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	errorsTotal    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		pageRenders: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sensordash_page_renders_total",
				Help: "Total number of dashboard pages rendered",
			},
		),
		chartBuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sensordash_chart_builds_total",
				Help: "Total number of chart specifications built, by panel",
			},
			[]string{"panel"},
		),
		renderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sensordash_render_duration_seconds",
				Help:    "Time spent building a response, by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sensordash_errors_total",
				Help: "Total number of errors encountered, by kind",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) RecordPageRender() {
	m.pageRenders.Inc()
}

func (m *Metrics) RecordChartBuild(panel string) {
	m.chartBuilds.WithLabelValues(panel).Inc()
}

func (m *Metrics) RecordDuration(route string, seconds float64) {
	m.renderDuration.WithLabelValues(route).Observe(seconds)
}

func (m *Metrics) RecordError(kind string) {
	m.errorsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
