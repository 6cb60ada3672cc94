package locator

import (
	"errors"
	"strings"

	"go-antna/types"
)

var ErrNoFacilities = errors.New("no facilities to choose from")

// Nearest returns the facility closest to point by squared Euclidean
// distance over raw lat/lon degrees. Ties go to the earliest facility.
func Nearest(facilities []types.Facility, point types.Coordinate) (types.Facility, error) {
	if len(facilities) == 0 {
		return types.Facility{}, ErrNoFacilities
	}

	best := 0
	bestDist := squaredDegrees(facilities[0].Coordinate(), point)
	for i := 1; i < len(facilities); i++ {
		d := squaredDegrees(facilities[i].Coordinate(), point)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return facilities[best], nil
}

func squaredDegrees(a, b types.Coordinate) float64 {
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon
	return dLat*dLat + dLon*dLon
}

// FilterByType keeps facilities of the given type. An empty type or "All"
// keeps everything; any other unknown type is an error.
func FilterByType(facilities []types.Facility, kind string) ([]types.Facility, error) {
	if kind == "" || strings.EqualFold(kind, "All") {
		return append([]types.Facility{}, facilities...), nil
	}
	want, err := types.ParseFacilityType(kind)
	if err != nil {
		return nil, err
	}

	out := []types.Facility{}
	for _, f := range facilities {
		if f.Type == want {
			out = append(out, f)
		}
	}
	return out, nil
}
