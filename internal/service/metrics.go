package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the verification counters exposed on /metrics.
type Metrics struct {
	uploads        *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	sessionsActive prometheus.Gauge
	sessionsIdle   prometheus.Counter
}

// NewMetrics creates the verification metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verification_uploads_total",
				Help: "Documents uploaded to verification checklists, by first upload or replacement.",
			},
			[]string{"kind"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verification_submissions_total",
				Help: "Verification submissions by outcome.",
			},
			[]string{"outcome"},
		),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "verification_sessions_active",
			Help: "Open verification sessions.",
		}),
		sessionsIdle: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "verification_sessions_expired_total",
			Help: "Verification sessions closed by the idle sweeper.",
		}),
	}

	for _, c := range []prometheus.Collector{m.uploads, m.submissions, m.sessionsActive, m.sessionsIdle} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) upload(first bool) {
	if m == nil {
		return
	}
	kind := "replace"
	if first {
		kind = "first"
	}
	m.uploads.WithLabelValues(kind).Inc()
}

func (m *Metrics) submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) sessionOpened() {
	if m != nil {
		m.sessionsActive.Inc()
	}
}

func (m *Metrics) sessionClosed() {
	if m != nil {
		m.sessionsActive.Dec()
	}
}

func (m *Metrics) sessionExpired() {
	if m != nil {
		m.sessionsActive.Dec()
		m.sessionsIdle.Inc()
	}
}
