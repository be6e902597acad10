// Package metrics records plan generation activity and process health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"diet-planner/internal/shared"
)

// Recorder exposes submission and completion metrics to Prometheus.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	submissionsTotal  *prometheus.CounterVec
	tokensTotal       *prometheus.CounterVec
	completionLatency *prometheus.HistogramVec
	exportsTotal      *prometheus.CounterVec
}

// NewRecorder registers the diet planner metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		submissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diet_plan_submissions_total",
				Help: "Total number of plan submissions by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		tokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diet_plan_tokens_total",
				Help: "Total number of tokens used by completion calls",
			},
			[]string{"model", "type"},
		),
		completionLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "diet_plan_completion_duration_seconds",
				Help:    "Duration of completion calls in seconds",
				Buckets: []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
			},
			[]string{"provider"},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diet_plan_exports_total",
				Help: "Total number of exported artifacts by format and outcome",
			},
			[]string{"format", "outcome"},
		),
	}
}

// RecordSubmission records the outcome of one submission. err is classified
// with shared.Kind; meta is only counted when the completion call was made.
func (r *Recorder) RecordSubmission(meta shared.GenerationMeta, err error) {
	if r == nil {
		return
	}
	r.submissionsTotal.WithLabelValues(meta.Provider, shared.Kind(err)).Inc()
	if meta.Latency > 0 {
		r.completionLatency.WithLabelValues(meta.Provider).Observe(meta.Latency.Seconds())
	}
	if err == nil {
		r.tokensTotal.WithLabelValues(meta.Usage.Model, "prompt").Add(float64(meta.Usage.PromptTokens))
		r.tokensTotal.WithLabelValues(meta.Usage.Model, "completion").Add(float64(meta.Usage.CompletionTokens))
	}
}

// RecordExport records one artifact export.
func (r *Recorder) RecordExport(format string, err error) {
	if r == nil {
		return
	}
	r.exportsTotal.WithLabelValues(format, shared.Kind(err)).Inc()
}
