package pinmonitor

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors a Monitor updates as pin changes
// are observed, the same unregistered-by-default shape as
// scheduler.Metrics.
type Metrics struct {
	PinChanges prometheus.Counter
}

// NewMetrics constructs an unregistered set of pin monitor collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		PinChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranger_pinmonitor_pin_changes_total",
			Help: "Total number of pin level changes observed, with or without a registered callback.",
		}),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	return reg.Register(m.PinChanges)
}

func (m *Metrics) observeChanged(n int) {
	if m == nil {
		return
	}
	for i := 0; i < n; i++ {
		m.PinChanges.Inc()
	}
}
