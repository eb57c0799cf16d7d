// Package metrics holds the Prometheus collectors for the client. Collectors
// are created against an explicit registerer and injected into the components
// that drive them; nothing registers into the global registry implicitly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Gateway struct {
	Requests *prometheus.CounterVec
	Retries  prometheus.Counter
	Duration *prometheus.HistogramVec
}

func NewGateway(reg prometheus.Registerer) *Gateway {
	factory := promauto.With(reg)
	return &Gateway{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "huwise",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "API requests issued, by method and outcome.",
		}, []string{"method", "outcome"}),
		Retries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "huwise",
			Subsystem: "gateway",
			Name:      "request_retries_total",
			Help:      "Retry attempts after transient request failures.",
		}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "huwise",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "API request latency, including retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (g *Gateway) ObserveRequest(method, outcome string, seconds float64) {
	if g == nil {
		return
	}
	g.Requests.WithLabelValues(method, outcome).Inc()
	g.Duration.WithLabelValues(method).Observe(seconds)
}

func (g *Gateway) ObserveRetry() {
	if g == nil {
		return
	}
	g.Retries.Inc()
}

type Bulk struct {
	Items *prometheus.CounterVec
}

func NewBulk(reg prometheus.Registerer) *Bulk {
	factory := promauto.With(reg)
	return &Bulk{
		Items: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "huwise",
			Subsystem: "bulk",
			Name:      "items_total",
			Help:      "Per-dataset outcomes of bulk operations.",
		}, []string{"operation", "outcome"}),
	}
}

func (b *Bulk) ObserveItem(operation, outcome string) {
	if b == nil {
		return
	}
	b.Items.WithLabelValues(operation, outcome).Inc()
}
