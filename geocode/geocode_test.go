package geocode

import (
	"testing"
	"time"

	"googlemaps.github.io/maps"

	"go-antna/types"
)

func TestToRoute(t *testing.T) {
	path := []maps.LatLng{
		{Lat: 25.3548, Lng: 51.1839},
		{Lat: 25.40, Lng: 51.30},
		{Lat: 25.43056, Lng: 51.48897},
	}
	r := maps.Route{
		OverviewPolyline: maps.Polyline{Points: maps.Encode(path)},
		Legs: []*maps.Leg{{
			Distance: maps.Distance{Meters: 35210},
			Duration: 1830 * time.Second,
		}},
	}

	route, err := toRoute(r)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(route.Waypoints) != 3 {
		t.Fatalf("expected 3 waypoints, got %d", len(route.Waypoints))
	}
	first := route.Waypoints[0]
	if first.Lat < 25.354 || first.Lat > 25.356 || first.Lon < 51.183 || first.Lon > 51.185 {
		t.Fatalf("expected first waypoint near origin, got %v", first)
	}
	if route.DistanceMeters != 35210 {
		t.Fatalf("expected 35210, got %v", route.DistanceMeters)
	}
	if route.DurationMinutes() != 30.5 {
		t.Fatalf("expected 30.5 minutes, got %v", route.DurationMinutes())
	}
}

func TestLatLng(t *testing.T) {
	got := latLng(types.Coordinate{Lat: 25.3548, Lon: 51.1839})
	if got != "25.354800,51.183900" {
		t.Fatalf("expected lat,lng string, got %s", got)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", "Qatar"); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
