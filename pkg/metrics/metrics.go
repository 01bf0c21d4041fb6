// Package metrics exposes Prometheus counters for the scoring core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FindsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treasure_hunter",
		Name:      "finds_recorded_total",
		Help:      "Number of finds recorded.",
	})

	AchievementsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treasure_hunter",
		Name:      "achievements_awarded_total",
		Help:      "Number of newly unlocked achievements.",
	})

	LeaderboardRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treasure_hunter",
		Name:      "leaderboard_requests_total",
		Help:      "Leaderboard queries by period.",
	}, []string{"period"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treasure_hunter",
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by the rate governor.",
	})
)

// Handler serves the default registry, mounted at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
