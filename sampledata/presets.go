package sampledata

import (
	"strings"

	"go-antna/types"
)

// DefaultOrigin is where a user is assumed to be when they don't say.
const DefaultOrigin = "Doha City Center"

type Origin struct {
	Name string           `json:"name"`
	At   types.Coordinate `json:"at"`
}

var origins = []Origin{
	{DefaultOrigin, types.Coordinate{Lat: 25.3548, Lon: 51.1839}},
	{"West Bay", types.Coordinate{Lat: 25.3287, Lon: 51.5309}},
	{"The Pearl", types.Coordinate{Lat: 25.3741, Lon: 51.5503}},
	{"Katara Cultural Village", types.Coordinate{Lat: 25.3594, Lon: 51.5277}},
	{"Hamad International Airport", types.Coordinate{Lat: 25.2608, Lon: 51.6138}},
	{"Education City", types.Coordinate{Lat: 25.3149, Lon: 51.4400}},
	{"Souq Waqif", types.Coordinate{Lat: 25.2867, Lon: 51.5333}},
	{"Aspire Zone", types.Coordinate{Lat: 25.2684, Lon: 51.4481}},
	{"Msheireb Downtown", types.Coordinate{Lat: 25.2897, Lon: 51.5335}},
	{"Al Waab", types.Coordinate{Lat: 25.2590, Lon: 51.4782}},
}

func Origins() []Origin {
	return append([]Origin(nil), origins...)
}

// LookupOrigin matches a preset name case-insensitively.
func LookupOrigin(name string) (Origin, bool) {
	for _, o := range origins {
		if strings.EqualFold(o.Name, strings.TrimSpace(name)) {
			return o, true
		}
	}
	return Origin{}, false
}

func Checklist() []string {
	return []string{
		"Water (5L per person per day)",
		"Non-perishable food",
		"First aid kit",
		"Portable fan/cooling devices",
		"Dust masks",
		"Emergency contact list",
		"Portable radio",
		"Power bank",
		"Important documents in waterproof container",
		"Sand/dust protection for electronics",
	}
}

type Contact struct {
	Service string `json:"service"`
	Number  string `json:"number"`
}

func Contacts() []Contact {
	return []Contact{
		{"Police", "999"},
		{"Ambulance", "999"},
		{"Civil Defence", "999"},
		{"Hamad Hospital", "4439 5777"},
		{"Kahramaa (Utilities)", "991"},
	}
}

type Scenario struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// ScenarioExamples are the canned prompts offered on the admin surface.
func ScenarioExamples() []Scenario {
	return []Scenario{
		{"Sandstorm", "A severe sandstorm is approaching Doha with winds exceeding 80km/h. Visibility is dropping rapidly."},
		{"Heatwave", "A heatwave has hit Qatar with temperatures reaching 50°C, causing widespread power outages."},
		{"Flooding", "Heavy rainfall has caused flash flooding in Al Wakrah, with water levels rising rapidly."},
		{"Multiple", "Multiple dust storms are affecting northern Qatar regions with strong winds."},
	}
}

func LookupScenario(name string) (Scenario, bool) {
	for _, s := range ScenarioExamples() {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return Scenario{}, false
}

type Guideline struct {
	Phase string   `json:"phase"`
	Steps []string `json:"steps"`
}

func Guidelines() []Guideline {
	return []Guideline{
		{"Before Emergency", []string{
			"Keep important documents in a waterproof container",
			"Maintain emergency supplies",
			"Learn evacuation routes",
		}},
		{"During Emergency", []string{
			"Stay informed through official channels",
			"Follow evacuation orders immediately",
			"Help others if safe to do so",
		}},
		{"After Emergency", []string{
			"Check on family and neighbors",
			"Document any damage",
			"Follow official recovery guidance",
		}},
	}
}
