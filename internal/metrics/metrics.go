package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	// HistoryBuilds counts history snapshots assembled for the map view.
	HistoryBuilds = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webtracker_history_builds_total",
		Help: "Total history snapshots built.",
	})

	// SnapFallbacks counts route-match calls that degraded to the raw
	// fix coordinates.
	SnapFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webtracker_snap_fallbacks_total",
		Help: "Total route snapping requests that fell back to raw coordinates.",
	})

	// DroppedFixes counts rows discarded at retrieval for missing or
	// non-numeric coordinates.
	DroppedFixes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webtracker_dropped_fixes_total",
		Help: "Total fix rows dropped for invalid coordinates.",
	})
)

func init() {
	registry.MustRegister(HistoryBuilds, SnapFallbacks, DroppedFixes)
}

// Handler exposes the registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
