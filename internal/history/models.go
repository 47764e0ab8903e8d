package history

import (
	"github.com/jayappagarisunil/web-tracker/internal/fix"
	"github.com/jayappagarisunil/web-tracker/internal/route"
	"github.com/jayappagarisunil/web-tracker/internal/timerange"
	"github.com/jayappagarisunil/web-tracker/internal/trip"
)

// Snapshot is everything the map view needs for one filter selection: the
// raw fixes, the derived trip metrics, and the display polyline. It is built
// wholesale per request and never mutated afterward; a new filter selection
// produces a new snapshot, it does not patch this one.
type Snapshot struct {
	ID        string           `json:"id"`
	TrackerID string           `json:"tracker_id,omitempty"`
	Window    timerange.Range  `json:"window"`
	Fixes     []fix.Fix        `json:"fixes"`
	Summary   trip.Summary     `json:"summary"`
	Stops     []trip.StopEvent `json:"stops"`
	Segments  []trip.Segment   `json:"segments"`
	Route     route.Route      `json:"route"`
}
