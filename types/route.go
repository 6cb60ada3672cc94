package types

import "time"

// Route is a driving path between two points. A fallback route is the
// straight line {origin, destination} with an estimated distance and no
// duration.
type Route struct {
	Waypoints      []Coordinate  `json:"waypoints"`
	DistanceMeters float64       `json:"distance_meters"`
	Duration       time.Duration `json:"-"`
	Provider       string        `json:"provider"`
	Fallback       bool          `json:"fallback"`
}

func StraightLine(origin, destination Coordinate) Route {
	return Route{
		Waypoints: []Coordinate{origin, destination},
		Provider:  "straight-line",
		Fallback:  true,
	}
}

func (r Route) DistanceKM() float64 {
	return r.DistanceMeters / 1000
}

func (r Route) DurationMinutes() float64 {
	return r.Duration.Minutes()
}
