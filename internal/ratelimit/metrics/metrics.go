package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejected    *prometheus.CounterVec
	StoreErrors prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lahu_ratelimit_rejected_total",
			Help: "Requests rejected by the rate limiter, by endpoint class",
		}, []string{"class"}),
		StoreErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "lahu_ratelimit_store_errors_total",
			Help: "Rate limit lookups that failed and were let through",
		}),
	}
}

func (m *Metrics) IncrementRejected(class string) {
	if m != nil {
		m.Rejected.WithLabelValues(class).Inc()
	}
}

func (m *Metrics) IncrementStoreErrors() {
	if m != nil {
		m.StoreErrors.Inc()
	}
}
