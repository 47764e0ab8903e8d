package trip

import "github.com/jayappagarisunil/web-tracker/internal/fix"

// Mode is the coarse travel-mode label derived for a pair of consecutive
// fixes.
type Mode string

const (
	ModeWalking Mode = "Walking"
	ModeVehicle Mode = "Vehicle"
)

// StopEvent flags the fix at which a stationary dwell was detected: the later
// fix of the qualifying pair.
type StopEvent struct {
	Fix fix.Fix `json:"fix"`
}

// Segment labels the leg ending at Index, the position of the later fix in
// the sequence. The first fix has no predecessor and so no segment.
type Segment struct {
	Index    int     `json:"index"`
	SpeedKmh float64 `json:"speed_kmh"`
	Mode     Mode    `json:"mode"`
}

// Summary aggregates one fix sequence for the header panel.
type Summary struct {
	PointCount      int     `json:"point_count"`
	TotalDistanceKm string  `json:"total_distance_km"`
	DurationSec     int64   `json:"duration_sec"`
	AverageSpeedKmh float64 `json:"average_speed_kmh"`
}
