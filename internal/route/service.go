package route

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jayappagarisunil/web-tracker/internal/fix"
	"github.com/jayappagarisunil/web-tracker/internal/metrics"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/redis/go-redis/v9"
)

const (
	requestTimeout = 10 * time.Second
	cacheTTL       = 10 * time.Minute
)

// Service calls an OSRM-compatible match endpoint to align raw fixes with
// the road network.
type Service struct {
	baseURL string
	profile string
	client  *http.Client
	redis   *redis.Client
}

func NewService(baseURL, profile string, redisClient *redis.Client) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: profile,
		client:  &http.Client{Timeout: requestTimeout},
		redis:   redisClient,
	}
}

type matchResponse struct {
	Code      string `json:"code"`
	Matchings []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"matchings"`
}

// Snap returns the road-matched polyline for the fix sequence, or the raw
// fix coordinates when matching is unavailable. It never returns an error:
// a broken matching service degrades the drawing, not the page. Snapped
// geometry is never written back onto the fixes.
func (s *Service) Snap(ctx context.Context, fixes []fix.Fix) Route {
	// A single point cannot be matched; skip the network entirely.
	if len(fixes) < 2 {
		return fallback(fixes)
	}

	line, err := s.match(ctx, fixes)
	if err != nil {
		log.Printf("route match fallback: %v", err)
		metrics.SnapFallbacks.Inc()
		return fallback(fixes)
	}
	return Route{Source: SourceMatched, Line: geojson.NewFeature(line)}
}

func (s *Service) match(ctx context.Context, fixes []fix.Fix) (orb.LineString, error) {
	coords := make([]string, len(fixes))
	for i, f := range fixes {
		coords[i] = fmt.Sprintf("%f,%f", f.Lng, f.Lat)
	}
	path := strings.Join(coords, ";")

	if cached := s.cacheGet(ctx, path); cached != nil {
		return cached, nil
	}

	endpoint := fmt.Sprintf("%s/match/v1/%s/%s?%s", s.baseURL, s.profile, path,
		url.Values{"overview": {"full"}, "geometries": {"geojson"}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("match service status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed matchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Matchings) == 0 {
		return nil, fmt.Errorf("no matchings in response")
	}

	// One matching per confidently matched sub-path; concatenate them in
	// response order, no reordering or best-segment selection.
	line := orb.LineString{}
	for _, m := range parsed.Matchings {
		for _, c := range m.Geometry.Coordinates {
			if len(c) < 2 {
				continue
			}
			line = append(line, orb.Point{c[0], c[1]})
		}
	}
	line = dedupeAdjacent(line)
	if len(line) == 0 {
		return nil, fmt.Errorf("empty matched geometry")
	}

	s.cacheSet(ctx, path, line)
	return line, nil
}

// dedupeAdjacent collapses immediately-adjacent duplicate coordinates, the
// seam points where two matchings join. Non-adjacent duplicates stay.
func dedupeAdjacent(line orb.LineString) orb.LineString {
	var out orb.LineString
	for _, pt := range line {
		if len(out) > 0 && out[len(out)-1] == pt {
			continue
		}
		out = append(out, pt)
	}
	return out
}

func fallback(fixes []fix.Fix) Route {
	line := make(orb.LineString, 0, len(fixes))
	for _, f := range fixes {
		line = append(line, orb.Point{f.Lng, f.Lat})
	}
	return Route{Source: SourceFallback, Line: geojson.NewFeature(line)}
}

func cacheKey(path string) string {
	sum := sha256.Sum256([]byte(path))
	return "route:match:" + hex.EncodeToString(sum[:8])
}

func (s *Service) cacheGet(ctx context.Context, path string) orb.LineString {
	if s.redis == nil {
		return nil
	}
	payload, err := s.redis.Get(ctx, cacheKey(path)).Bytes()
	if err != nil {
		return nil
	}
	g, err := geojson.UnmarshalGeometry(payload)
	if err != nil {
		return nil
	}
	line, ok := g.Geometry().(orb.LineString)
	if !ok {
		return nil
	}
	return line
}

func (s *Service) cacheSet(ctx context.Context, path string, line orb.LineString) {
	if s.redis == nil {
		return
	}
	payload, err := geojson.NewGeometry(line).MarshalJSON()
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(path), payload, cacheTTL).Err(); err != nil {
		log.Printf("route cache set error: %v", err)
	}
}
