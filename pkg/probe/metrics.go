package probe

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors of the prober
type metrics struct {
	up           *prometheus.GaugeVec
	responseTime *prometheus.HistogramVec
	sslExpiry    *prometheus.GaugeVec
	probes       *prometheus.CounterVec
}

// newMetrics initializes metric collectors of the prober
func newMetrics() metrics {
	return metrics{
		up: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "healthprobe_up",
				Help: "Whether the last probe of the target was healthy",
			},
			[]string{
				"target",
			},
		),
		responseTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "healthprobe_response_time_seconds",
				Help:    "Response time of healthy probes in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{
				"target",
			},
		),
		sslExpiry: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "healthprobe_ssl_expiry_days",
				Help: "Days until the certificate of the target expires",
			},
			[]string{
				"target",
			},
		),
		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "healthprobe_probes_total",
				Help: "Count of probes done by status",
			},
			[]string{
				"target",
				"status",
			},
		),
	}
}

// collectors returns all metric collectors
func (m metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.up,
		m.responseTime,
		m.sslExpiry,
		m.probes,
	}
}

// observe records a probe result
func (m metrics) observe(res Result) {
	state := 0.0
	if res.IsUp {
		state = 1
	}
	m.up.WithLabelValues(res.URL).Set(state)
	m.probes.WithLabelValues(res.URL, res.Status.String()).Inc()

	if res.ResponseTimeMS != nil {
		m.responseTime.WithLabelValues(res.URL).Observe(*res.ResponseTimeMS / 1000)
	}
	if res.SSLExpiryDays != nil {
		m.sslExpiry.WithLabelValues(res.URL).Set(float64(*res.SSLExpiryDays))
	} else {
		m.sslExpiry.DeleteLabelValues(res.URL)
	}
}
