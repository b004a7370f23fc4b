package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "specdec"

// Recorder owns a private registry so that tests and repeated runs never
// collide on the global one.
type Recorder struct {
	registry *prometheus.Registry

	gridPoints     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	failures       *prometheus.CounterVec
	breakEven      prometheus.Gauge
	optimalN       *prometheus.HistogramVec
	chartsRendered *prometheus.CounterVec
}

// NewRecorder creates a Recorder with every collector registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		gridPoints: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grid_points_total",
			Help:      "Formula evaluations performed, by analysis.",
		}, []string{"analysis"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one analysis sweep.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"analysis"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_failures_total",
			Help:      "Analyses that returned an error.",
		}, []string{"analysis"}),
		breakEven: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "break_even_points",
			Help:      "Interpolated break-even points of the last surface analysis.",
		}),
		optimalN: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "optimal_n",
			Help:      "Distribution of the optimal N over the sweep grid.",
			Buckets:   prometheus.LinearBuckets(1, 1, 20),
		}, []string{"analysis"}),
		chartsRendered: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_rendered_total",
			Help:      "Chart files written, by format.",
		}, []string{"format"}),
	}
}

// Registry exposes the underlying registry, for gathering in tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveAnalysis records one finished sweep.
func (r *Recorder) ObserveAnalysis(name string, points int, d time.Duration, err error) {
	if err != nil {
		r.failures.WithLabelValues(name).Inc()
		return
	}
	r.gridPoints.WithLabelValues(name).Add(float64(points))
	r.duration.WithLabelValues(name).Observe(d.Seconds())
}

// ObserveOptimalN adds every optimal N of a sweep to the histogram.
func (r *Recorder) ObserveOptimalN(name string, ns []int) {
	h := r.optimalN.WithLabelValues(name)
	for _, n := range ns {
		h.Observe(float64(n))
	}
}

// SetBreakEvenPoints sets the break-even gauge.
func (r *Recorder) SetBreakEvenPoints(n int) { r.breakEven.Set(float64(n)) }

// ChartRendered counts one written chart file.
func (r *Recorder) ChartRendered(format string) { r.chartsRendered.WithLabelValues(format).Inc() }

// WriteTextfile writes every metric to path in the Prometheus text format
// read by the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
