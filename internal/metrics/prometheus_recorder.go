package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lessonindex"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration      *prom.HistogramVec
	generationDuration prom.Histogram
	outcomes           *prom.CounterVec
	scanWarnings       *prom.CounterVec
	sections           prom.Gauge
	items              prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual generation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		generationDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Total manifest generation duration",
			Buckets:   prom.DefBuckets,
		}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generation_outcomes_total",
			Help:      "Generation runs by final status",
		}, []string{"outcome"}),
		scanWarnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "scan_warnings_total",
			Help:      "Skipped or rewritten entries by reason",
		}, []string{"reason"}),
		sections: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "manifest_sections",
			Help:      "Sections in the last generated manifest",
		}),
		items: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "manifest_items",
			Help:      "Items in the last generated manifest",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.generationDuration, pr.outcomes, pr.scanWarnings, pr.sections, pr.items)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveGenerationDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.generationDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncGenerationOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncScanWarning(reason string) {
	if p == nil {
		return
	}
	p.scanWarnings.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) SetManifestSize(sections, items int) {
	if p == nil {
		return
	}
	p.sections.Set(float64(sections))
	p.items.Set(float64(items))
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
