package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics groups the service collectors. Every method is safe on a nil
// receiver so components can run without metrics in tests.
type Metrics struct {
	gatherer prometheus.Gatherer

	transitions *prometheus.CounterVec
	checkouts   *prometheus.CounterVec
	mail        *prometheus.CounterVec
	events      *prometheus.CounterVec
	deliveries  prometheus.Counter
	drops       prometheus.Counter
	sessions    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order lifecycle actions by action and result.",
		}, []string{"action", "result"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkouts by kind (registered, guest) and result.",
		}, []string{"kind", "result"}),
		mail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mail_total",
			Help:      "Outgoing mail by result (sent, failed, dropped).",
		}, []string{"result"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Domain event deliveries by subscriber and result.",
		}, []string{"subscriber", "result"}),
		deliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "deliveries_total",
			Help:      "Frames written to live viewer sessions.",
		}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "dropped_sessions_total",
			Help:      "Live sessions unregistered after a failed write.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "sessions",
			Help:      "Currently connected live viewer sessions.",
		}),
	}

	reg.MustRegister(m.transitions, m.checkouts, m.mail, m.events, m.deliveries, m.drops, m.sessions)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) Transition(action, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, result).Inc()
}

func (m *Metrics) Checkout(kind, result string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) Mail(result string) {
	if m == nil {
		return
	}
	m.mail.WithLabelValues(result).Inc()
}

func (m *Metrics) Event(subscriber, result string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(subscriber, result).Inc()
}

func (m *Metrics) LiveDelivered(n int) {
	if m == nil {
		return
	}
	m.deliveries.Add(float64(n))
}

func (m *Metrics) LiveDropped(n int) {
	if m == nil {
		return
	}
	m.drops.Add(float64(n))
}

func (m *Metrics) SessionsChanged(count int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(count))
}
