package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"go-antna/types"
)

var ErrNoResults = errors.New("no geocoding results")

// Client wraps Google Maps for driving directions and forward geocoding.
type Client struct {
	maps   *maps.Client
	region string
}

// NewClient builds a maps client from a MAPS_CREDENTIALS key. region is
// appended to bare place names so "Al Khor" resolves inside the right country.
func NewClient(apiKey, region string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("MAPS_CREDENTIALS environment variable not set")
	}
	mc, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Client{maps: mc, region: region}, nil
}

// Locate takes an address or place name and returns its first match.
func (c *Client) Locate(ctx context.Context, address string) (types.Coordinate, error) {
	query := strings.TrimSpace(address)
	if c.region != "" && !strings.Contains(strings.ToLower(query), strings.ToLower(c.region)) {
		query = query + ", " + c.region
	}

	results, err := c.maps.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return types.Coordinate{}, err
	}
	if len(results) == 0 {
		return types.Coordinate{}, fmt.Errorf("%w for %q", ErrNoResults, address)
	}

	loc := results[0].Geometry.Location
	return types.Coordinate{Lat: loc.Lat, Lon: loc.Lng}, nil
}

// Directions requests a driving route and decodes the overview polyline.
func (c *Client) Directions(ctx context.Context, origin, destination types.Coordinate) (types.Route, error) {
	routes, _, err := c.maps.Directions(ctx, &maps.DirectionsRequest{
		Origin:      latLng(origin),
		Destination: latLng(destination),
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return types.Route{}, err
	}
	if len(routes) == 0 {
		return types.Route{}, errors.New("no driving route found")
	}
	return toRoute(routes[0])
}

func toRoute(r maps.Route) (types.Route, error) {
	points, err := r.OverviewPolyline.Decode()
	if err != nil {
		return types.Route{}, fmt.Errorf("decoding polyline: %w", err)
	}

	route := types.Route{
		Waypoints: make([]types.Coordinate, 0, len(points)),
		Provider:  "google",
	}
	for _, p := range points {
		route.Waypoints = append(route.Waypoints, types.Coordinate{Lat: p.Lat, Lon: p.Lng})
	}

	if len(r.Legs) > 0 {
		route.DistanceMeters = float64(r.Legs[0].Distance.Meters)
		route.Duration = r.Legs[0].Duration.Round(time.Second)
	}
	return route, nil
}

func latLng(c types.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lon)
}
