package trip

import (
	"fmt"
	"time"

	"github.com/jayappagarisunil/web-tracker/internal/fix"
	"github.com/jayappagarisunil/web-tracker/internal/shared/geo"
)

const (
	// A pair of consecutive fixes within stopMaxDistanceM meters and at
	// least stopMinDwell apart is a stationary dwell. Both boundaries
	// inclusive.
	stopMaxDistanceM = 50.0
	stopMinDwell     = 5 * time.Minute

	// Below walkingMaxSpeedKmh a leg is labeled Walking, at or above it
	// Vehicle. Pairwise only, no smoothing.
	walkingMaxSpeedKmh = 5.0
)

// TotalDistanceKm sums the great-circle distance over consecutive fixes,
// formatted to two decimals. Fewer than two fixes yields "0.00". A pair with
// an unusable coordinate is skipped, not errored; retrieval filters those
// already, but the engine tolerates them.
func TotalDistanceKm(fixes []fix.Fix) string {
	return fmt.Sprintf("%.2f", totalDistanceKm(fixes))
}

func totalDistanceKm(fixes []fix.Fix) float64 {
	total := 0.0
	for i := 1; i < len(fixes); i++ {
		prev, cur := fixes[i-1], fixes[i]
		if !prev.Valid() || !cur.Valid() {
			continue
		}
		total += geo.HaversineKm(prev.Lat, prev.Lng, cur.Lat, cur.Lng)
	}
	return total
}

// DetectStops scans consecutive pairs and emits a StopEvent for every
// qualifying pair, wrapping the later fix. Consecutive qualifying pairs each
// emit independently: a long dwell shows up as one event per reported sample.
func DetectStops(fixes []fix.Fix) []StopEvent {
	var stops []StopEvent
	for i := 1; i < len(fixes); i++ {
		prev, cur := fixes[i-1], fixes[i]
		if !prev.Valid() || !cur.Valid() {
			continue
		}
		dist := geo.HaversineM(prev.Lat, prev.Lng, cur.Lat, cur.Lng)
		dwell := cur.RecordedAt.Sub(prev.RecordedAt)
		if dist <= stopMaxDistanceM && dwell >= stopMinDwell {
			stops = append(stops, StopEvent{Fix: cur})
		}
	}
	return stops
}

// SpeedKmh derives the instantaneous speed between two consecutive fixes.
// Zero or negative elapsed time yields 0, never an infinity: duplicate or
// out-of-order timestamps bias the label toward Walking instead of blowing
// up the division.
func SpeedKmh(prev, cur fix.Fix) float64 {
	hours := cur.RecordedAt.Sub(prev.RecordedAt).Hours()
	if hours <= 0 {
		return 0
	}
	return geo.HaversineKm(prev.Lat, prev.Lng, cur.Lat, cur.Lng) / hours
}

// Classify buckets the pair speed into a coarse travel mode.
func Classify(prev, cur fix.Fix) Mode {
	if SpeedKmh(prev, cur) < walkingMaxSpeedKmh {
		return ModeWalking
	}
	return ModeVehicle
}

// Segments labels every consecutive pair in the sequence.
func Segments(fixes []fix.Fix) []Segment {
	var segments []Segment
	for i := 1; i < len(fixes); i++ {
		segments = append(segments, Segment{
			Index:    i,
			SpeedKmh: SpeedKmh(fixes[i-1], fixes[i]),
			Mode:     Classify(fixes[i-1], fixes[i]),
		})
	}
	return segments
}

// Summarize aggregates the sequence: point count, total distance, wall-clock
// duration and average speed over it.
func Summarize(fixes []fix.Fix) Summary {
	s := Summary{
		PointCount:      len(fixes),
		TotalDistanceKm: TotalDistanceKm(fixes),
	}
	if len(fixes) < 2 {
		return s
	}

	duration := fixes[len(fixes)-1].RecordedAt.Sub(fixes[0].RecordedAt)
	if duration <= 0 {
		return s
	}
	s.DurationSec = int64(duration.Seconds())
	s.AverageSpeedKmh = totalDistanceKm(fixes) / duration.Hours()
	return s
}
