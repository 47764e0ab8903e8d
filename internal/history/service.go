package history

import (
	"context"

	"github.com/jayappagarisunil/web-tracker/internal/fix"
	"github.com/jayappagarisunil/web-tracker/internal/metrics"
	"github.com/jayappagarisunil/web-tracker/internal/route"
	"github.com/jayappagarisunil/web-tracker/internal/timerange"
	"github.com/jayappagarisunil/web-tracker/internal/trip"

	"github.com/google/uuid"
)

type Service struct {
	fixes  *fix.Service
	routes *route.Service
}

func NewService(fixes *fix.Service, routes *route.Service) *Service {
	return &Service{fixes: fixes, routes: routes}
}

// Build assembles one history snapshot for the window. A store error
// propagates; a matching failure is absorbed inside the snapper; zero fixes
// is a normal snapshot with empty derived collections.
func (s *Service) Build(ctx context.Context, window timerange.Range, trackerID string) (Snapshot, error) {
	fixes, err := s.fixes.List(ctx, fix.Query{Window: window, TrackerID: trackerID})
	if err != nil {
		return Snapshot{}, err
	}

	metrics.HistoryBuilds.Inc()
	return Snapshot{
		ID:        uuid.NewString(),
		TrackerID: trackerID,
		Window:    window,
		Fixes:     fixes,
		Summary:   trip.Summarize(fixes),
		Stops:     trip.DetectStops(fixes),
		Segments:  trip.Segments(fixes),
		Route:     s.routes.Snap(ctx, fixes),
	}, nil
}
