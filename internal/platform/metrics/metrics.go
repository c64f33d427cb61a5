package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

const namespace = "siteaudit"

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AuditsTotal         *prometheus.CounterVec
	AuditDuration       prometheus.Histogram
	CategoryScore       *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the collectors with a fresh registry that also carries the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newWithRegistry(reg, reg)
}

func newWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AuditsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audits_total",
				Help:      "Total number of audits by outcome.",
			},
			[]string{"outcome"},
		),
		AuditDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "audit_duration_seconds",
				Help:      "Duration of audits including both fetches.",
				Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
		),
		CategoryScore: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "category_score",
				Help:      "Distribution of category scores of completed audits.",
				Buckets:   prometheus.LinearBuckets(10, 10, 10),
			},
			[]string{"category"},
		),
		gatherer: gatherer,
	}
}

// ObserveAudit records one audit. outcome is "success" or an error kind.
func (m *Metrics) ObserveAudit(outcome string, elapsed time.Duration, report *model.AuditReport) {
	m.AuditsTotal.WithLabelValues(outcome).Inc()
	m.AuditDuration.Observe(elapsed.Seconds())
	if report == nil {
		return
	}
	m.CategoryScore.WithLabelValues("security").Observe(float64(report.Scores.Security))
	m.CategoryScore.WithLabelValues("seo").Observe(float64(report.Scores.SEO))
	m.CategoryScore.WithLabelValues("performance").Observe(float64(report.Scores.Performance))
	m.CategoryScore.WithLabelValues("accessibility").Observe(float64(report.Scores.Accessibility))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
