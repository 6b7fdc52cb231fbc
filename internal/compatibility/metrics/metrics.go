package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks compatibility checks and profile lookups.
type Metrics struct {
	Checks        *prometheus.CounterVec
	CheckDuration prometheus.Histogram
	ProfileLookup *prometheus.CounterVec
}

// New creates and registers the compatibility metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Checks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lahu_compatibility_checks_total",
			Help: "Compatibility checks by verdict and reason",
		}, []string{"compatible", "reason"}),
		CheckDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lahu_compatibility_check_duration_seconds",
			Help:    "Duration of compatibility checks including input validation",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),
		ProfileLookup: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lahu_compatibility_profile_lookups_total",
			Help: "Profile lookups by blood type",
		}, []string{"blood_type"}),
	}
}

// IncrementCheck records a successful check.
func (m *Metrics) IncrementCheck(compatible bool, reason string) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(strconv.FormatBool(compatible), reason).Inc()
}

// ObserveCheck records the duration of a check.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCheck(start time.Time) {
	if m == nil {
		return
	}
	m.CheckDuration.Observe(time.Since(start).Seconds())
}

// IncrementProfileLookup records a lookup for a valid blood type.
func (m *Metrics) IncrementProfileLookup(bloodType string) {
	if m == nil {
		return
	}
	m.ProfileLookup.WithLabelValues(bloodType).Inc()
}
