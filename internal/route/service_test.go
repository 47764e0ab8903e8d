package route

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jayappagarisunil/web-tracker/internal/fix"

	"github.com/alicebob/miniredis/v2"
	"github.com/paulmach/orb"
	"github.com/redis/go-redis/v9"
)

func sampleFixes() []fix.Fix {
	t0 := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)
	return []fix.Fix{
		{Lat: 0, Lng: 0, RecordedAt: t0},
		{Lat: 1, Lng: 0, RecordedAt: t0.Add(5 * time.Minute)},
		{Lat: 2, Lng: 0, RecordedAt: t0.Add(10 * time.Minute)},
	}
}

func lineOf(t *testing.T, r Route) orb.LineString {
	t.Helper()
	line, ok := r.Line.Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("expected LineString geometry, got %T", r.Line.Geometry)
	}
	return line
}

// Two matchings sharing a seam point: concatenated in order, the seam
// collapses to one point.
const twoMatchingsBody = `{
	"code": "Ok",
	"matchings": [
		{"geometry": {"type": "LineString", "coordinates": [[0,0],[0,1]]}},
		{"geometry": {"type": "LineString", "coordinates": [[0,1],[0,2]]}}
	]
}`

func TestSnapConcatenatesAndDedupes(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(twoMatchingsBody))
	}))
	defer server.Close()

	svc := NewService(server.URL, "driving", nil)
	r := svc.Snap(context.Background(), sampleFixes())
	if r.Source != SourceMatched {
		t.Fatalf("expected matched source, got %v", r.Source)
	}
	line := lineOf(t, r)
	if len(line) != 3 {
		t.Fatalf("expected 3 points after seam dedupe, got %d", len(line))
	}
	want := orb.LineString{{0, 0}, {0, 1}, {0, 2}}
	for i := range want {
		if line[i] != want[i] {
			t.Fatalf("unexpected line: %v", line)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one match call, got %d", calls)
	}
}

func TestSnapSingleFixSkipsNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	svc := NewService(server.URL, "driving", nil)
	one := sampleFixes()[:1]
	r := svc.Snap(context.Background(), one)
	if r.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %v", r.Source)
	}
	line := lineOf(t, r)
	if len(line) != 1 || line[0] != (orb.Point{one[0].Lng, one[0].Lat}) {
		t.Fatalf("expected the single input coordinate, got %v", line)
	}
	if calls != 0 {
		t.Fatalf("expected no network call, got %d", calls)
	}
}

func TestSnapFallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewService(server.URL, "driving", nil)
	fixes := sampleFixes()
	r := svc.Snap(context.Background(), fixes)
	if r.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %v", r.Source)
	}
	line := lineOf(t, r)
	if len(line) != len(fixes) {
		t.Fatalf("fallback must keep input length: %d vs %d", len(line), len(fixes))
	}
	for i, f := range fixes {
		if line[i] != (orb.Point{f.Lng, f.Lat}) {
			t.Fatalf("fallback content mismatch at %d: %v", i, line[i])
		}
	}
}

func TestSnapFallbackOnEmptyMatchings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoMatch","matchings":[]}`))
	}))
	defer server.Close()

	svc := NewService(server.URL, "driving", nil)
	if r := svc.Snap(context.Background(), sampleFixes()); r.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %v", r.Source)
	}
}

func TestSnapFallbackOnUnreachableService(t *testing.T) {
	svc := NewService("http://127.0.0.1:1", "driving", nil)
	r := svc.Snap(context.Background(), sampleFixes())
	if r.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %v", r.Source)
	}
}

func TestSnapUsesRedisCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(twoMatchingsBody))
	}))
	defer server.Close()

	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})

	svc := NewService(server.URL, "driving", client)
	fixes := sampleFixes()

	first := svc.Snap(context.Background(), fixes)
	second := svc.Snap(context.Background(), fixes)
	if first.Source != SourceMatched || second.Source != SourceMatched {
		t.Fatalf("expected matched source on both calls")
	}
	if calls != 1 {
		t.Fatalf("expected second snap served from cache, got %d calls", calls)
	}
	if len(lineOf(t, second)) != 3 {
		t.Fatalf("unexpected cached line: %v", lineOf(t, second))
	}
}
