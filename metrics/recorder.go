package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/optim"
)

const namespace = "modelfree"

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Warning label values.
const (
	WarningMaxIter      = "max_iter"
	WarningMuTooSmall   = "mu_too_small"
	WarningNotOptimised = "not_optimised"
	WarningOther        = "other"
)

// WarningLabel maps an optimiser warning onto the fixed set of warning label
// values. Free-form warnings, such as gonum termination errors, become
// WarningOther.
func WarningLabel(w string) string {
	switch w {
	case optim.WarnMaxIter:
		return WarningMaxIter
	case optim.WarnMuTooSmall:
		return WarningMuTooSmall
	case optim.WarnNoOptimised:
		return WarningNotOptimised
	}

	return WarningOther
}

// Recorder collects driver events. It is safe for concurrent use.
type Recorder struct {
	reg *prometheus.Registry

	instances *prometheus.CounterVec
	iters     *prometheus.CounterVec
	fevals    *prometheus.CounterVec
	warnings  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	chi2      *prometheus.HistogramVec
}

var _ minimise.Recorder = (*Recorder)(nil)

// NewRecorder builds a Recorder on a fresh registry.
func NewRecorder() *Recorder {
	labels := []string{"op", "model_type"}
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		instances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instances_total",
			Help:      "Finished optimisation instances.",
		}, append(labels, "outcome")),
		iters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Optimiser iterations summed over instances.",
		}, labels),
		fevals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "function_evaluations_total",
			Help:      "Chi-squared evaluations summed over instances.",
		}, labels),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Instances that finished with an optimiser warning.",
		}, append(labels, "warning")),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "instance_duration_seconds",
			Help:      "Wall time of one optimisation instance.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 10),
		}, labels),
		chi2: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chi2",
			Help:      "Final chi-squared of successful instances.",
			Buckets:   prometheus.ExponentialBuckets(1e-3, 10, 9),
		}, labels),
	}
	r.reg.MustRegister(r.instances, r.iters, r.fevals, r.warnings, r.duration, r.chi2)

	return r
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Record implements minimise.Recorder.
func (r *Recorder) Record(ev minimise.Event) {
	op, mt := string(ev.Op), ev.ModelType.String()
	r.duration.WithLabelValues(op, mt).Observe(ev.Elapsed.Seconds())
	if ev.Err != nil {
		r.instances.WithLabelValues(op, mt, OutcomeError).Inc()
		return
	}
	r.instances.WithLabelValues(op, mt, OutcomeOK).Inc()
	r.iters.WithLabelValues(op, mt).Add(float64(ev.Result.Iter))
	r.fevals.WithLabelValues(op, mt).Add(float64(ev.Result.FCount))
	r.chi2.WithLabelValues(op, mt).Observe(ev.Result.F)
	if ev.Result.Warning != "" {
		r.warnings.WithLabelValues(op, mt, WarningLabel(ev.Result.Warning)).Inc()
	}
}

// WriteTextfile writes the registry to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("WriteTextfile(%q): %w", path, err)
	}

	return nil
}
