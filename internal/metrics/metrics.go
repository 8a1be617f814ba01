package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the auth path and HTTP layer.
type Metrics struct {
	Logins            *prometheus.CounterVec
	Registrations     prometheus.Counter
	AuthDenials       *prometheus.CounterVec
	RequestDurationMs *prometheus.HistogramVec
}

// New registers collectors on reg. Tests pass a fresh registry so repeated
// construction does not collide with previously registered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_registrations_total",
			Help: "Accounts created",
		}),
		AuthDenials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_auth_denials_total",
			Help: "Requests denied by the auth gate, by reason",
		}, []string{"reason"}),
		RequestDurationMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_request_duration_ms",
			Help:    "HTTP request duration in milliseconds",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "status"}),
	}
}
