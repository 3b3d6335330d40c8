package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — счётчики протокола обновления токенов. Все методы безопасны на nil.
type Metrics struct {
	refresh       *prometheus.CounterVec
	replays       prometheus.Counter
	invalidations prometheus.Counter
}

// NewMetrics регистрирует счётчики в reg (nil — prometheus.DefaultRegisterer).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		refresh: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "admin",
			Subsystem: "gateway",
			Name:      "refresh_total",
			Help:      "Credential refresh attempts by result.",
		}, []string{"result"}),
		replays: f.NewCounter(prometheus.CounterOpts{
			Namespace: "admin",
			Subsystem: "gateway",
			Name:      "replays_total",
			Help:      "Requests replayed after a credential refresh.",
		}),
		invalidations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "admin",
			Subsystem: "gateway",
			Name:      "session_invalidations_total",
			Help:      "Sessions torn down after a failed refresh.",
		}),
	}
}

func (m *Metrics) refreshed(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.refresh.WithLabelValues(result).Inc()
}

func (m *Metrics) replayed() {
	if m == nil {
		return
	}
	m.replays.Inc()
}

func (m *Metrics) invalidated() {
	if m == nil {
		return
	}
	m.invalidations.Inc()
}
