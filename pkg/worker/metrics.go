package worker

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for worker monitoring.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	added             prometheus.Counter
	processed         prometheus.Counter
	dropped           prometheus.Counter
	failed            prometheus.Counter
	wakeups           prometheus.Counter
	inputDepth        prometheus.Gauge
	outputDepth       prometheus.Gauge
	awake             prometheus.Gauge
	transformDuration prometheus.Histogram
}

// newMetrics creates the worker metrics and registers them with reg
func newMetrics(reg prometheus.Registerer, prefix, workerID string) (*Metrics, error) {
	labels := prometheus.Labels{"worker_id": workerID}

	m := &Metrics{
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        prefix + "_added_total",
			Help:        "Total items added to the worker input queue",
			ConstLabels: labels,
		}),
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        prefix + "_processed_total",
			Help:        "Total items transformed and written to the output queue",
			ConstLabels: labels,
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        prefix + "_dropped_total",
			Help:        "Total items discarded because no transform was set",
			ConstLabels: labels,
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        prefix + "_failed_total",
			Help:        "Total items whose transform failed",
			ConstLabels: labels,
		}),
		wakeups: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        prefix + "_wakeups_total",
			Help:        "Total wake-up requests",
			ConstLabels: labels,
		}),
		inputDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        prefix + "_input_depth",
			Help:        "Current input queue depth",
			ConstLabels: labels,
		}),
		outputDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        prefix + "_output_depth",
			Help:        "Current output queue depth",
			ConstLabels: labels,
		}),
		awake: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        prefix + "_awake",
			Help:        "1 while the worker is awake, 0 otherwise",
			ConstLabels: labels,
		}),
		transformDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        prefix + "_transform_duration_seconds",
			Help:        "Time spent in the transform per item",
			ConstLabels: labels,
			Buckets:     []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),
	}

	collectors := []prometheus.Collector{
		m.added, m.processed, m.dropped, m.failed, m.wakeups,
		m.inputDepth, m.outputDepth, m.awake, m.transformDuration,
	}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			for _, registered := range collectors[:i] {
				reg.Unregister(registered)
			}
			return nil, fmt.Errorf("register worker metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) recordAdded(inputDepth int) {
	if m == nil {
		return
	}
	m.added.Inc()
	m.inputDepth.Set(float64(inputDepth))
}

func (m *Metrics) recordWakeUp() {
	if m == nil {
		return
	}
	m.wakeups.Inc()
	m.awake.Set(1)
}

func (m *Metrics) recordAwake(awake bool) {
	if m == nil {
		return
	}
	if awake {
		m.awake.Set(1)
	} else {
		m.awake.Set(0)
	}
}

func (m *Metrics) recordDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}

func (m *Metrics) recordTransform(d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.transformDuration.Observe(d.Seconds())
	if failed {
		m.failed.Inc()
	} else {
		m.processed.Inc()
	}
}

func (m *Metrics) recordDepths(input, output int) {
	if m == nil {
		return
	}
	m.inputDepth.Set(float64(input))
	m.outputDepth.Set(float64(output))
}
