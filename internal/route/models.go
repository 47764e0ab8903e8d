package route

import "github.com/paulmach/orb/geojson"

// Source tells which branch produced the polyline: road-matched geometry, or
// the raw fix coordinates when matching was unavailable.
type Source string

const (
	SourceMatched  Source = "matched"
	SourceFallback Source = "fallback"
)

// Route is the display-only polyline. It carries no fix metadata and its
// point count is not correlated with the fix sequence it was derived from.
type Route struct {
	Source Source           `json:"source"`
	Line   *geojson.Feature `json:"line"`
}
