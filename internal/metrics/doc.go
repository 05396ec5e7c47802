// Package metrics defines the Prometheus collectors exported by the
// virtual museum: HTTP request counters and latencies, database query
// metrics, media sync run statistics, thumbnail cache activity, and
// authentication attempts.
//
// All collectors are registered via promauto at package load and are
// served from the dedicated metrics port.
package metrics
