package timerange

import (
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// Range is an inclusive [Start, End] window fed to the fix store query.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Selection is the raw date filter from the UI: a named preset, or an
// explicit from/to pair of calendar days in 2006-01-02 form.
type Selection struct {
	Preset string
	From   string
	To     string
}

// Resolve turns a selection into a concrete inclusive window. Presets expand
// to local-day boundaries of the reference time; explicit days expand to UTC
// day boundaries, 00:00:00.000 through 23:59:59.999.
func Resolve(sel Selection, now time.Time) (Range, error) {
	switch sel.Preset {
	case "today":
		return dayRange(now), nil
	case "yesterday":
		return dayRange(now.AddDate(0, 0, -1)), nil
	case "":
	default:
		return Range{}, fmt.Errorf("unknown range preset %q", sel.Preset)
	}

	if sel.From == "" || sel.To == "" {
		return Range{}, fmt.Errorf("from and to dates required without a preset")
	}
	from, err := time.ParseInLocation(dayFormat, sel.From, time.UTC)
	if err != nil {
		return Range{}, fmt.Errorf("invalid from date: %w", err)
	}
	to, err := time.ParseInLocation(dayFormat, sel.To, time.UTC)
	if err != nil {
		return Range{}, fmt.Errorf("invalid to date: %w", err)
	}
	if to.Before(from) {
		return Range{}, fmt.Errorf("to date before from date")
	}
	return Range{Start: from, End: dayRange(to).End}, nil
}

// dayRange expands t to the full calendar day holding it, in t's location.
// The end boundary is computed from the next day's midnight so DST days keep
// correct wall-clock boundaries.
func dayRange(t time.Time) Range {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end := time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Millisecond)
	return Range{Start: start, End: end}
}
