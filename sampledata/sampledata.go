package sampledata

import (
	"fmt"
	"time"

	"go-antna/types"
)

const (
	alertSpacing  = 30 * time.Minute
	updateSpacing = 15 * time.Minute
)

// Generate builds the demo tables with times relative to now. Alerts are
// 30 minutes apart and updates 15 minutes apart, newest first.
func Generate(now time.Time) types.Tables {
	now = now.Truncate(time.Minute)
	return types.Tables{
		Alerts:     alerts(now),
		Facilities: shelters(),
		Resources:  resources(now),
		Updates:    updates(now),
	}
}

func alerts(now time.Time) []types.Alert {
	rows := []struct {
		kind     types.AlertType
		severity types.Severity
		location string
		desc     string
	}{
		{types.Sandstorm, types.High, "Al Wakrah", "Severe sandstorm approaching with reduced visibility"},
		{types.HeatWave, types.High, "Doha", "Extreme temperatures expected to reach 48°C"},
		{types.FlashFlood, types.Medium, "Al Khor", "Heavy rainfall may cause local flooding"},
		{types.DustStorm, types.Medium, "Al Rayyan", "Moderate dust storm affecting visibility"},
		{types.StrongWinds, types.Low, "Lusail", "Strong winds expected up to 40km/h"},
	}

	out := make([]types.Alert, 0, len(rows))
	for i, r := range rows {
		out = append(out, types.Alert{
			Type:        r.kind,
			Severity:    r.severity,
			Location:    r.location,
			Time:        types.NewTimestamp(now.Add(-time.Duration(i) * alertSpacing)),
			Description: r.desc,
		})
	}
	return out
}

func shelters() []types.Facility {
	rows := []struct {
		name              string
		capacity, current int
		lat, lon          float64
		kind              types.FacilityType
	}{
		{"Lusail Sports Arena", 800, 234, 25.430560, 51.488970, types.Primary},
		{"Al Thumama Stadium", 600, 156, 25.230844, 51.532197, types.Secondary},
		{"Education City Stadium", 500, 123, 25.311667, 51.424722, types.Primary},
		{"Al Bayt Stadium Complex", 1000, 445, 25.652222, 51.487778, types.Primary},
		{"Khalifa International Stadium", 700, 289, 25.263889, 51.448333, types.Secondary},
	}

	out := make([]types.Facility, 0, len(rows))
	for i, r := range rows {
		out = append(out, types.Facility{
			Name:     r.name,
			Capacity: r.capacity,
			Current:  r.current,
			Lat:      r.lat,
			Lon:      r.lon,
			Type:     r.kind,
			Contact:  fmt.Sprintf("+974-4000-%d111", i+1),
		})
	}
	return out
}

func resources(now time.Time) []types.ResourceReport {
	stock := [][5]int{
		// water, food, medical kits, generators, beds
		{1000, 800, 50, 10, 500},
		{800, 600, 40, 8, 400},
		{600, 500, 30, 6, 300},
		{1200, 1000, 60, 12, 600},
		{900, 700, 45, 9, 450},
	}

	facilities := shelters()
	out := make([]types.ResourceReport, 0, len(facilities))
	for i, f := range facilities {
		s := stock[i]
		out = append(out, types.ResourceReport{
			Location:    f.Name,
			Water:       s[0],
			Food:        s[1],
			MedicalKits: s[2],
			Generators:  s[3],
			Beds:        s[4],
			LastUpdated: types.NewTimestamp(now),
		})
	}
	return out
}

func updates(now time.Time) []types.SocialUpdate {
	rows := []struct {
		source   types.SourceType
		username string
		message  string
		location string
		trust    float64
		verified bool
		engaged  int
	}{
		{types.Official, "@QatarWeather", "Severe sandstorm warning for Al Wakrah region. Visibility reduced to 500m.", "Al Wakrah", 0.95, true, 1205},
		{types.Citizen, "@QatarResident1", "Heavy sand in Al Wakrah area. Roads barely visible.", "Al Wakrah", 0.68, false, 342},
		{types.Emergency, "@QatarRedCrescent", "Emergency teams deployed to Al Wakrah. Shelter available.", "Al Wakrah", 0.98, true, 892},
		{types.Official, "@QatarMOI", "Traffic diverted on Al Wakrah Road due to poor visibility.", "Al Wakrah", 0.97, true, 1567},
		{types.Healthcare, "@HamadMedical", "Al Wakrah Hospital ready to receive emergency cases.", "Doha", 0.96, true, 723},
		{types.Citizen, "@DohaResident", "Temperature hitting 47°C in Doha. Multiple cases of heat exhaustion.", "Doha", 0.65, false, 445},
		{types.Official, "@QatarMet", "Extreme heat warning: Temperature to reach 48°C in Doha.", "Doha", 0.99, true, 2341},
		{types.Emergency, "@CivilDefenceQA", "Flash flood warning for Al Khor. Emergency teams on high alert.", "Al Khor", 0.97, true, 1123},
		{types.Official, "@MunicipalityQA", "Storm drains being cleared in Al Khor to prevent flooding.", "Al Khor", 0.94, true, 567},
		{types.Media, "@QatarNews", "Live updates: Multiple weather-related incidents across Qatar.", "Qatar", 0.93, true, 1892},
	}

	out := make([]types.SocialUpdate, 0, len(rows))
	for i, r := range rows {
		out = append(out, types.SocialUpdate{
			Timestamp:  types.NewTimestamp(now.Add(-time.Duration(i) * updateSpacing)),
			SourceType: r.source,
			Username:   r.username,
			Message:    r.message,
			Location:   r.location,
			Verified:   r.verified,
			TrustScore: r.trust,
			Engagement: r.engaged,
		})
	}
	return out
}
