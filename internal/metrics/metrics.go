package metrics

import (
	"net/http"
	"time"

	"mpesarelay/internal/provider"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus records Daraja operation outcomes. It satisfies mpesa.Observer.
type Prometheus struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry
func New(namespace string) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mpesa",
			Name:      "operations_total",
			Help:      "Daraja operations by outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mpesa",
			Name:      "operation_duration_seconds",
			Help:      "Wall time of Daraja operations, token exchange included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}
	p.registry.MustRegister(p.operations, p.latency)
	return p
}

// ObserveOperation implements mpesa.Observer
func (p *Prometheus) ObserveOperation(op provider.OperationType, outcome string, elapsed time.Duration) {
	p.operations.WithLabelValues(string(op), outcome).Inc()
	p.latency.WithLabelValues(string(op)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
