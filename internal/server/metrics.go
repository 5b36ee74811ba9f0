package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered per server so tests can run several servers in
// one process.
type metrics struct {
	registry *prometheus.Registry

	trapKeys     *prometheus.CounterVec
	sessions     prometheus.Gauge
	httpRequests *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		trapKeys: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wcagdemo",
			Name:      "trap_keys_total",
			Help:      "Key events delivered to remote focus traps, by trap action.",
		}, []string{"action"}),
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "wcagdemo",
			Name:      "trap_sessions_active",
			Help:      "Number of open websocket trap sessions.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wcagdemo",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
	}
}
