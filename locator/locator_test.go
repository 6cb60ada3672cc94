package locator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-antna/types"
)

func facility(name string, lat, lon float64) types.Facility {
	return types.Facility{Name: name, Capacity: 10, Lat: lat, Lon: lon, Type: types.Primary}
}

func TestNearest(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Nearest(nil, types.Coordinate{})
		if !errors.Is(err, ErrNoFacilities) {
			t.Fatalf("expected ErrNoFacilities, got %v", err)
		}
	})

	t.Run("closest in degree space", func(t *testing.T) {
		fs := []types.Facility{
			facility("far", 26.0, 52.0),
			facility("near", 25.36, 51.19),
			facility("mid", 25.5, 51.4),
		}
		got, err := Nearest(fs, types.Coordinate{Lat: 25.3548, Lon: 51.1839})
		if err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
		if got.Name != "near" {
			t.Fatalf("expected near, got %s", got.Name)
		}
	})

	t.Run("ties go to first occurrence", func(t *testing.T) {
		fs := []types.Facility{
			facility("east", 0, 1),
			facility("west", 0, -1),
			facility("north", 1, 0),
		}
		got, err := Nearest(fs, types.Coordinate{})
		if err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
		if got.Name != "east" {
			t.Fatalf("expected east, got %s", got.Name)
		}
	})
}

func TestFilterByType(t *testing.T) {
	fs := []types.Facility{
		{Name: "a", Type: types.Primary},
		{Name: "b", Type: types.Secondary},
		{Name: "c", Type: types.Primary},
	}
	for _, all := range []string{"", "All", "all"} {
		got, err := FilterByType(fs, all)
		if err != nil || len(got) != 3 {
			t.Fatalf("%q: expected 3 and nil, got %d and %v", all, len(got), err)
		}
	}

	got, err := FilterByType(fs, "primary")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Fatalf("expected [a c], got %v", got)
	}

	got, err = FilterByType(fs, "Tertiary")
	if err == nil || !strings.Contains(err.Error(), "Tertiary") {
		t.Fatalf("expected error naming Tertiary, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no facilities, got %v", got)
	}
}

type failingDirections struct{ err error }

func (f failingDirections) Directions(ctx context.Context, o, d types.Coordinate) (types.Route, error) {
	return types.Route{}, f.err
}

func TestRouteFallback(t *testing.T) {
	origin := types.Coordinate{Lat: 25.3548, Lon: 51.1839}
	dest := types.Coordinate{Lat: 25.430560, Lon: 51.488970}

	for name, l := range map[string]*Locator{
		"provider error": New(failingDirections{errors.New("timeout")}),
		"no provider":    New(nil),
	} {
		t.Run(name, func(t *testing.T) {
			route, notice := l.Route(context.Background(), origin, dest)
			if notice == "" {
				t.Fatalf("expected a notice, got none")
			}
			if !route.Fallback {
				t.Fatalf("expected fallback route")
			}
			if len(route.Waypoints) != 2 || route.Waypoints[0] != origin || route.Waypoints[1] != dest {
				t.Fatalf("expected {origin, dest}, got %v", route.Waypoints)
			}
			// roughly 31 km between the two points
			if route.DistanceMeters < 25000 || route.DistanceMeters > 40000 {
				t.Fatalf("expected ~31km estimate, got %.0fm", route.DistanceMeters)
			}
		})
	}
}

const orsBody = `{
  "type": "FeatureCollection",
  "features": [{
    "type": "Feature",
    "bbox": [51.18, 25.35, 51.49, 25.43],
    "properties": {
      "segments": [{"distance": 35210.4, "duration": 1830.2, "steps": []}],
      "summary": {"distance": 35210.4, "duration": 1830.2},
      "way_points": [0, 2]
    },
    "geometry": {"type": "LineString", "coordinates": [[51.1839, 25.3548], [51.3, 25.4], [51.48897, 25.43056]]}
  }]
}`

func TestORSClient(t *testing.T) {
	t.Run("decodes route", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v2/directions/driving-car/geojson" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "ors-key" {
				t.Errorf("expected key header, got %q", r.Header.Get("Authorization"))
			}
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"radiuses":[1000,1000]`) {
				t.Errorf("expected radiuses in body, got %s", body)
			}
			if !strings.Contains(string(body), `[51.1839,25.3548]`) {
				t.Errorf("expected lon,lat order, got %s", body)
			}
			w.Header().Set("Content-Type", "application/geo+json")
			io.WriteString(w, orsBody)
		}))
		defer srv.Close()

		c := NewORSClient(srv.URL, "ors-key")
		route, err := c.Directions(context.Background(), types.Coordinate{Lat: 25.3548, Lon: 51.1839}, types.Coordinate{Lat: 25.43056, Lon: 51.48897})
		if err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
		if len(route.Waypoints) != 3 {
			t.Fatalf("expected 3 waypoints, got %d", len(route.Waypoints))
		}
		if route.Waypoints[1] != (types.Coordinate{Lat: 25.4, Lon: 51.3}) {
			t.Fatalf("expected lat/lon swap on decode, got %v", route.Waypoints[1])
		}
		if route.DistanceMeters != 35210.4 {
			t.Fatalf("expected 35210.4m, got %v", route.DistanceMeters)
		}
		if route.Duration.Round(time.Second) != 1830*time.Second {
			t.Fatalf("expected 1830s, got %v", route.Duration)
		}
		if route.Fallback {
			t.Fatalf("expected provider route, got fallback")
		}
	})

	t.Run("no route found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":{"code":2010,"message":"Could not find routable point within a radius of 1000.0 meters"}}`)
		}))
		defer srv.Close()

		c := NewORSClient(srv.URL, "k")
		_, err := c.Directions(context.Background(), types.Coordinate{}, types.Coordinate{Lat: 1, Lon: 1})
		var pe *ProviderError
		if !errors.As(err, &pe) {
			t.Fatalf("expected ProviderError, got %v", err)
		}
		if pe.Code != 2010 {
			t.Fatalf("expected code 2010, got %d", pe.Code)
		}

		route, notice := New(c).Route(context.Background(), types.Coordinate{}, types.Coordinate{Lat: 1, Lon: 1})
		if !route.Fallback || notice == "" {
			t.Fatalf("expected fallback with notice, got %+v %q", route, notice)
		}
	})
}

type deadlineDirections struct{ hasDeadline *bool }

func (d deadlineDirections) Directions(ctx context.Context, o, dst types.Coordinate) (types.Route, error) {
	_, *d.hasDeadline = ctx.Deadline()
	return types.StraightLine(o, dst), nil
}

func TestRouteAddsNoDeadline(t *testing.T) {
	var hasDeadline bool
	l := New(deadlineDirections{&hasDeadline})

	l.Route(context.Background(), types.Coordinate{Lat: 25.35, Lon: 51.18}, types.Coordinate{Lat: 25.43, Lon: 51.49})
	if hasDeadline {
		t.Fatalf("expected provider context without a deadline")
	}
}
