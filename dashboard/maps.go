package dashboard

import (
	"math"

	"github.com/paulmach/orb/geojson"

	"go-antna/locator"
	"go-antna/types"
)

// Marker is a named point the user is standing at.
type Marker struct {
	Name string
	At   types.Coordinate
}

func facilityFeature(f types.Facility, r *types.ResourceReport) *geojson.Feature {
	feat := geojson.NewFeature(locator.Point(f.Coordinate()))
	feat.Properties = geojson.Properties{
		"kind":         "facility",
		"name":         f.Name,
		"type":         f.Type,
		"contact":      f.Contact,
		"occupancy":    round1(f.OccupancyPercent()),
		"status":       f.Status(),
		"marker-color": markerColor(f.Type),
	}
	if r != nil {
		feat.Properties["water_supply"] = r.Water
		feat.Properties["food_supply"] = r.Food
		feat.Properties["medical_kits"] = r.MedicalKits
	}
	return feat
}

func originFeature(m Marker) *geojson.Feature {
	feat := geojson.NewFeature(locator.Point(m.At))
	feat.Properties = geojson.Properties{
		"kind":         "origin",
		"name":         "Your Location (" + m.Name + ")",
		"marker-color": "green",
	}
	return feat
}

func routeFeature(r types.Route) *geojson.Feature {
	feat := geojson.NewFeature(locator.LineString(r))
	feat.Properties = geojson.Properties{
		"kind":        "route",
		"provider":    r.Provider,
		"fallback":    r.Fallback,
		"distance_km": round1(r.DistanceKM()),
		"stroke":      "green",
	}
	if !r.Fallback {
		feat.Properties["duration_min"] = math.Round(r.DurationMinutes())
	}
	return feat
}

// CentersMap draws every facility with its supplies, plus the user's marker
// and a route when given. A facility without a resource report fails the
// whole map with types.ErrResourceNotFound.
func CentersMap(facilities []types.Facility, resources []types.ResourceReport, origin *Marker, route *types.Route) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, f := range facilities {
		r, err := types.FindResource(resources, f.Name)
		if err != nil {
			return nil, err
		}
		fc.Append(facilityFeature(f, &r))
	}
	if origin != nil {
		fc.Append(originFeature(*origin))
	}
	if route != nil {
		fc.Append(routeFeature(*route))
	}
	fc.BBox = bounds(fc)
	return fc, nil
}

// RouteMap is the chat map: the user, the chosen facility and the path
// between them.
func RouteMap(origin Marker, facility types.Facility, route types.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(originFeature(origin))
	fc.Append(facilityFeature(facility, nil))
	fc.Append(routeFeature(route))
	fc.BBox = bounds(fc)
	return fc
}

func bounds(fc *geojson.FeatureCollection) geojson.BBox {
	if len(fc.Features) == 0 {
		return nil
	}
	b := fc.Features[0].Geometry.Bound()
	for _, f := range fc.Features[1:] {
		b = b.Union(f.Geometry.Bound())
	}
	return geojson.NewBBox(b)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
