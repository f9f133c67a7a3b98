package mindgames

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts started and completed sessions per game.
type Metrics struct {
	started   *prometheus.CounterVec
	completed *prometheus.CounterVec
}

// NewMetrics registers the session counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindgames_sessions_started_total",
			Help: "Mind game sessions started, by game.",
		}, []string{"game"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindgames_sessions_completed_total",
			Help: "Mind game sessions completed, by game.",
		}, []string{"game"}),
	}
	reg.MustRegister(m.started, m.completed)
	return m
}

func (m *Metrics) sessionStarted(game GameID) {
	if m == nil {
		return
	}
	m.started.WithLabelValues(string(game)).Inc()
}

func (m *Metrics) sessionCompleted(game GameID) {
	if m == nil {
		return
	}
	m.completed.WithLabelValues(string(game)).Inc()
}
