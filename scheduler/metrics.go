package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors the scheduler updates as it
// dispatches tasks. Unlike the teacher's hand-rolled atomic Metrics struct,
// these are real collectors so a caller can wire them into whatever
// registry its process already exposes; NewMetrics does not register them
// anywhere, since a library package should never touch the default
// registry on a caller's behalf. Metrics are never read or updated from
// inside the heap-manipulation hot path — only right after a task's
// Callable returns, and when a schedule call finds the pending ring full —
// per spec §9's "the core does not call the
// logger/metrics sink from inside the scheduler's hot path" guidance.
type Metrics struct {
	TasksFired      prometheus.Counter
	TaskLatency     prometheus.Histogram
	PendingDropped  prometheus.Counter
	QueueDepth      prometheus.Gauge
}

// NewMetrics constructs an unregistered set of scheduler collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		TasksFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranger_scheduler_tasks_fired_total",
			Help: "Total number of scheduled callables that have run.",
		}),
		TaskLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ranger_scheduler_task_latency_seconds",
			Help:    "Wall-clock time spent inside a single task callable.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		PendingDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranger_scheduler_pending_capacity_exceeded_total",
			Help: "Times a task post was rejected because the pending ring was full.",
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ranger_scheduler_queue_depth",
			Help: "Current number of tasks pending in the heap.",
		}),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.TasksFired, m.TaskLatency, m.PendingDropped, m.QueueDepth} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observeFired(depth int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.TasksFired.Inc()
	m.TaskLatency.Observe(elapsed.Seconds())
	m.QueueDepth.Set(float64(depth))
}

func (m *Metrics) observeDropped() {
	if m == nil {
		return
	}
	m.PendingDropped.Inc()
}
