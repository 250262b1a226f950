package probe

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	handler       http.Handler
	checksTotal   *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
}

// NewMetrics returns a private registry with the standard collectors and the
// per-probe check counters.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "identityprobe_checks_total",
			Help: "Total probe checks by probe and outcome",
		}, []string{"probe", "status"}),
		checkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "identityprobe_check_duration_seconds",
			Help:    "Probe check latency by probe",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"probe"}),
	}

	reg.MustRegister(m.checksTotal, m.checkDuration)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})

	return m
}

func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) ObserveCheck(probe, status string, took time.Duration) {
	m.checksTotal.WithLabelValues(probe, status).Inc()
	m.checkDuration.WithLabelValues(probe).Observe(took.Seconds())
}
