// Package metrics exposes Prometheus counters for the short URL service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	shortURLsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturl_generated_total",
			Help: "Total number of short URLs generated",
		},
	)

	keyCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturl_key_collisions_total",
			Help: "Total number of candidate keys discarded because they already existed",
		},
	)

	probeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorturl_probe_failures_total",
			Help: "Total number of existence probes that failed with a backend error",
		},
	)
)

// ShortURLGenerated records a successfully published short URL.
func ShortURLGenerated() {
	shortURLsGenerated.Inc()
}

// KeyCollision records a candidate key discarded on collision.
func KeyCollision() {
	keyCollisions.Inc()
}

// ProbeFailure records an existence probe that failed.
func ProbeFailure() {
	probeFailures.Inc()
}

// Handler returns the Prometheus exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
