package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_service",
		Subsystem: "persistence",
		Name:      "last_session_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent session persisted to Postgres.",
	})
	sessionsLoggedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_service",
		Subsystem: "sessions",
		Name:      "logged_total",
		Help:      "Number of workout sessions accepted, labeled by activity type.",
	}, []string{"activity_type"})
)

func init() {
	prometheus.MustRegister(sessionPersistGauge, sessionsLoggedCounter)
}

// RecordSessionPersisted updates the persistence watermark and counters.
func RecordSessionPersisted(activityType string, ts time.Time) {
	sessionsLoggedCounter.WithLabelValues(activityType).Inc()
	if ts.IsZero() {
		return
	}
	sessionPersistGauge.Set(float64(ts.Unix()))
}
