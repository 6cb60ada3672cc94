package locator

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/zap"

	"go-antna/types"
)

// Directions is a road-routing provider.
type Directions interface {
	Directions(ctx context.Context, origin, destination types.Coordinate) (types.Route, error)
}

// Notice is shown to the user when a route had to be approximated. It is
// empty when the provider answered.
type Notice string

type Locator struct {
	provider Directions
}

// New accepts a nil provider; every route is then a straight line.
func New(provider Directions) *Locator {
	return &Locator{provider: provider}
}

// Route never fails. Provider errors degrade to the straight line between
// the two points with a haversine distance estimate.
func (l *Locator) Route(ctx context.Context, origin, destination types.Coordinate) (types.Route, Notice) {
	if l == nil || l.provider == nil {
		return fallback(origin, destination), "Routing is not configured; showing a straight-line path."
	}

	route, err := l.provider.Directions(ctx, origin, destination)
	if err == nil && len(route.Waypoints) < 2 {
		err = fmt.Errorf("provider returned %d waypoints", len(route.Waypoints))
	}
	if err != nil {
		zap.S().Warnw("routing failed, using straight line", "origin", origin, "destination", destination, "err", err)
		return fallback(origin, destination), Notice(fmt.Sprintf("Could not fetch a driving route (%v); showing a straight-line path.", err))
	}
	return route, ""
}

func fallback(origin, destination types.Coordinate) types.Route {
	r := types.StraightLine(origin, destination)
	r.DistanceMeters = geo.DistanceHaversine(Point(origin), Point(destination))
	return r
}

// Point converts to orb's lon/lat order.
func Point(c types.Coordinate) orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

func LineString(r types.Route) orb.LineString {
	ls := make(orb.LineString, 0, len(r.Waypoints))
	for _, w := range r.Waypoints {
		ls = append(ls, Point(w))
	}
	return ls
}
