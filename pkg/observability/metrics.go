package observability

import (
	"github.com/aretw0/actor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports actor lifecycle events as Prometheus collectors.
type Metrics struct {
	calls     *prometheus.CounterVec
	rollbacks *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "actor_calls_total",
				Help: "Total number of actor invocations by outcome",
			},
			[]string{"actor", "outcome"},
		),
		rollbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "actor_rollbacks_total",
				Help: "Total number of rollbacks triggered by a failing actor",
			},
			[]string{"actor"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "actor_call_duration_seconds",
				Help:    "Duration of actor invocations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"actor"},
		),
	}
	for _, c := range []prometheus.Collector{m.calls, m.rollbacks, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActorFinish: func(e *domain.ActorEvent) {
			m.calls.WithLabelValues(e.Actor, string(e.Outcome)).Inc()
			m.duration.WithLabelValues(e.Actor).Observe(e.Duration.Seconds())
		},
		OnRollback: func(e *domain.RollbackEvent) {
			m.rollbacks.WithLabelValues(e.Actor).Inc()
		},
	}
}
