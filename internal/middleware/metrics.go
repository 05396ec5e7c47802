package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"virtual-museum/internal/metrics"
)

// MetricsConfig controls which requests are recorded.
type MetricsConfig struct {
	SkipPaths []string
}

// DefaultMetricsConfig skips the scrape and probe endpoints.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		SkipPaths: []string{"/metrics", "/health", "/healthz", "/livez", "/readyz"},
	}
}

// Metrics returns middleware recording Prometheus request metrics.
func Metrics(config MetricsConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range config.SkipPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			wrapped := newStatusWriter(w)
			start := time.Now()

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			path := normalizePath(r.URL.Path)
			status := strconv.Itoa(wrapped.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// normalizePath collapses dynamic route segments so label cardinality
// stays bounded. Gallery assets and thumbnails carry arbitrary file
// paths; room and media routes carry slugs and ids.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/media/"):
		return "/media/{path}"
	case strings.HasPrefix(path, "/api/thumbnail/"):
		return "/api/thumbnail/{path}"
	case strings.HasPrefix(path, "/api/rooms/"):
		return "/api/rooms/{slug}"
	case strings.HasPrefix(path, "/api/media/"):
		return "/api/media/{id}"
	}
	return path
}
