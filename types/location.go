package types

import (
	"errors"
	"fmt"
	"strings"
)

var ErrResourceNotFound = errors.New("no resource report for facility")

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

type FacilityType string

const (
	Primary   FacilityType = "Primary"
	Secondary FacilityType = "Secondary"
)

func (t FacilityType) IsValid() bool {
	return t == Primary || t == Secondary
}

func ParseFacilityType(s string) (FacilityType, error) {
	for _, v := range []FacilityType{Primary, Secondary} {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown facility type %q", s)
}

// OccupancyStatus is the tier shown on a center card.
type OccupancyStatus string

const (
	StatusHealthy OccupancyStatus = "healthy"
	StatusBusy    OccupancyStatus = "busy"
	StatusFull    OccupancyStatus = "full"
)

const (
	busyThreshold = 60.0
	fullThreshold = 90.0
)

// Facility is a shelter or relief center. Name is unique within a session.
type Facility struct {
	Name     string       `json:"name"`
	Capacity int          `json:"capacity"`
	Current  int          `json:"current"`
	Lat      float64      `json:"lat"`
	Lon      float64      `json:"lon"`
	Type     FacilityType `json:"type"`
	Contact  string       `json:"contact"`
}

func (f Facility) Coordinate() Coordinate {
	return Coordinate{Lat: f.Lat, Lon: f.Lon}
}

// Validate enforces capacity > 0 and 0 <= current <= capacity.
func (f Facility) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("facility name is empty")
	}
	if f.Capacity <= 0 {
		return fmt.Errorf("facility %q: capacity must be positive, got %d", f.Name, f.Capacity)
	}
	if f.Current < 0 || f.Current > f.Capacity {
		return fmt.Errorf("facility %q: occupancy %d outside [0, %d]", f.Name, f.Current, f.Capacity)
	}
	return nil
}

func (f Facility) OccupancyPercent() float64 {
	if f.Capacity <= 0 {
		return 0
	}
	return float64(f.Current) / float64(f.Capacity) * 100
}

func (f Facility) Status() OccupancyStatus {
	pct := f.OccupancyPercent()
	switch {
	case pct < busyThreshold:
		return StatusHealthy
	case pct < fullThreshold:
		return StatusBusy
	default:
		return StatusFull
	}
}

// ResourceReport holds supply levels for the facility named by Location.
type ResourceReport struct {
	Location    string    `json:"location"`
	Water       int       `json:"water_supply"`
	Food        int       `json:"food_supply"`
	MedicalKits int       `json:"medical_kits"`
	Generators  int       `json:"generators"`
	Beds        int       `json:"beds"`
	LastUpdated Timestamp `json:"last_updated"`
}

func (r ResourceReport) Validate() error {
	if strings.TrimSpace(r.Location) == "" {
		return errors.New("resource location is empty")
	}
	for name, v := range map[string]int{
		"water": r.Water, "food": r.Food, "medical": r.MedicalKits,
		"generators": r.Generators, "beds": r.Beds,
	} {
		if v < 0 {
			return fmt.Errorf("resource %q: %s must be non-negative, got %d", r.Location, name, v)
		}
	}
	return nil
}

// FindResource joins a facility to its resource report. Zero matches is an
// error; duplicates resolve to the first row.
func FindResource(resources []ResourceReport, facilityName string) (ResourceReport, error) {
	for _, r := range resources {
		if r.Location == facilityName {
			return r, nil
		}
	}
	return ResourceReport{}, fmt.Errorf("%w: %q", ErrResourceNotFound, facilityName)
}

func FindFacility(facilities []Facility, name string) (Facility, bool) {
	for _, f := range facilities {
		if f.Name == name {
			return f, true
		}
	}
	return Facility{}, false
}
