package fix

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jayappagarisunil/web-tracker/internal/db"
	"github.com/jayappagarisunil/web-tracker/internal/metrics"
	"github.com/jayappagarisunil/web-tracker/internal/timerange"

	"github.com/redis/go-redis/v9"
)

const (
	trackersCacheKey = "trackers:distinct"
	trackersCacheTTL = 5 * time.Minute
)

type Service struct {
	db    db.Querier
	redis *redis.Client
}

func NewService(db db.Querier, redisClient *redis.Client) *Service {
	return &Service{db: db, redis: redisClient}
}

// Query bounds a fix listing: an inclusive time window plus an optional
// exact tracker match.
type Query struct {
	Window    timerange.Range
	TrackerID string
}

// List returns the valid fixes in the window, oldest first. Rows with missing
// or non-numeric coordinates are dropped here, so downstream consumers only
// ever see valid fixes. Ascending order is established by the query; callers
// rely on it and do not re-sort.
func (s *Service) List(ctx context.Context, q Query) ([]Fix, error) {
	sql := `
		SELECT id, tracker_id, latitude, longitude, COALESCE(address, ''), battery_percent, device_info, recorded_at
		FROM fixes
		WHERE recorded_at BETWEEN $1 AND $2`
	args := []any{q.Window.Start, q.Window.End}
	if q.TrackerID != "" {
		sql += ` AND tracker_id=$3`
		args = append(args, q.TrackerID)
	}
	sql += ` ORDER BY recorded_at ASC`

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fixes []Fix
	dropped := 0
	for rows.Next() {
		var f Fix
		var lat, lng *float64
		var device []byte
		if err := rows.Scan(&f.ID, &f.TrackerID, &lat, &lng, &f.Address, &f.BatteryPercent, &device, &f.RecordedAt); err != nil {
			return nil, err
		}
		if lat == nil || lng == nil {
			dropped++
			continue
		}
		f.Lat, f.Lng = *lat, *lng
		if !f.Valid() {
			dropped++
			continue
		}
		f.Device = ParseDeviceInfo(device)
		fixes = append(fixes, f)
	}

	if dropped > 0 {
		metrics.DroppedFixes.Add(float64(dropped))
	}
	return fixes, nil
}

// Trackers returns the distinct tracker identifiers for the selector
// dropdown, cached in Redis for a short interval.
func (s *Service) Trackers(ctx context.Context) ([]string, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, trackersCacheKey).Result(); err == nil {
			var ids []string
			if json.Unmarshal([]byte(cached), &ids) == nil {
				return ids, nil
			}
		}
	}

	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT tracker_id FROM fixes
		WHERE tracker_id IS NOT NULL AND tracker_id <> ''
		ORDER BY tracker_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if s.redis != nil {
		payload, _ := json.Marshal(ids)
		if err := s.redis.Set(ctx, trackersCacheKey, payload, trackersCacheTTL).Err(); err != nil {
			log.Printf("trackers cache set error: %v", err)
		}
	}
	return ids, nil
}
