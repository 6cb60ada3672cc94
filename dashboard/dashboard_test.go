package dashboard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"go-antna/sampledata"
	"go-antna/types"
)

func TestCenterCards(t *testing.T) {
	tables := sampledata.Generate(time.Now())

	cards, err := CenterCards(tables.Facilities, tables.Resources)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("expected 5 cards, got %d", len(cards))
	}
	if cards[0].Resources.Location != cards[0].Name {
		t.Fatalf("expected joined resource, got %s for %s", cards[0].Resources.Location, cards[0].Name)
	}

	_, err = CenterCards(tables.Facilities, tables.Resources[1:])
	if !errors.Is(err, types.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestScoreReadiness(t *testing.T) {
	items := sampledata.Checklist()

	cases := []struct {
		checked []string
		tier    string
		percent float64
	}{
		{nil, "low", 0},
		{items[:4], "low", 40},
		{items[:5], "fair", 50},
		{items[:7], "fair", 70},
		{items[:8], "good", 80},
		{append(items[:1:1], items[0]), "low", 10},
	}
	for _, tc := range cases {
		r, err := ScoreReadiness(tc.checked)
		if err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
		if r.Tier != tc.tier || r.Percent != tc.percent {
			t.Fatalf("%d checked: expected %s/%v, got %s/%v", len(tc.checked), tc.tier, tc.percent, r.Tier, r.Percent)
		}
	}

	if _, err := ScoreReadiness([]string{"Jetpack"}); err == nil {
		t.Fatalf("expected error for unknown item, got nil")
	}
}

func TestRouteMap(t *testing.T) {
	origin := Marker{Name: "Doha City Center", At: types.Coordinate{Lat: 25.3548, Lon: 51.1839}}
	f := types.Facility{Name: "Lusail Sports Arena", Capacity: 800, Current: 234, Lat: 25.43056, Lon: 51.48897, Type: types.Primary}
	route := types.StraightLine(origin.At, f.Coordinate())

	fc := RouteMap(origin, f, route)
	if len(fc.Features) != 3 {
		t.Fatalf("expected 3 features, got %d", len(fc.Features))
	}

	line, ok := fc.Features[2].Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("expected LineString, got %T", fc.Features[2].Geometry)
	}
	if len(line) != 2 || line[0] != (orb.Point{51.1839, 25.3548}) {
		t.Fatalf("expected lon/lat straight line, got %v", line)
	}
	if fc.Features[2].Properties["fallback"] != true {
		t.Fatalf("expected fallback property, got %v", fc.Features[2].Properties["fallback"])
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if !strings.Contains(string(b), `"FeatureCollection"`) {
		t.Fatalf("expected FeatureCollection JSON, got %s", b)
	}
}

func TestCentersMap(t *testing.T) {
	tables := sampledata.Generate(time.Now())

	t.Run("every facility carries its supplies", func(t *testing.T) {
		fc, err := CentersMap(tables.Facilities, tables.Resources, nil, nil)
		if err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
		if len(fc.Features) != 5 {
			t.Fatalf("expected 5 features, got %d", len(fc.Features))
		}
		if fc.Features[0].Properties["water_supply"] != tables.Resources[0].Water {
			t.Fatalf("expected water %d, got %v", tables.Resources[0].Water, fc.Features[0].Properties["water_supply"])
		}
	})

	t.Run("facility without a resource report fails", func(t *testing.T) {
		orphan := []types.Facility{{Name: "Orphan", Capacity: 10, Current: 1, Lat: 25.3, Lon: 51.5, Type: types.Primary}}
		fc, err := CentersMap(orphan, nil, nil, nil)
		if !errors.Is(err, types.ErrResourceNotFound) {
			t.Fatalf("expected ErrResourceNotFound, got %v", err)
		}
		if fc != nil {
			t.Fatalf("expected no map, got %d features", len(fc.Features))
		}
	})

	t.Run("origin and route are appended", func(t *testing.T) {
		origin := Marker{Name: "Doha City Center", At: types.Coordinate{Lat: 25.3548, Lon: 51.1839}}
		route := types.StraightLine(origin.At, tables.Facilities[0].Coordinate())
		fc, err := CentersMap(tables.Facilities, tables.Resources, &origin, &route)
		if err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
		if len(fc.Features) != 7 {
			t.Fatalf("expected 7 features, got %d", len(fc.Features))
		}
		if fc.BBox == nil {
			t.Fatalf("expected a bounding box")
		}
	})
}

func TestLoadTheme(t *testing.T) {
	if _, ok := LoadTheme(filepath.Join(t.TempDir(), "missing.css")); ok {
		t.Fatalf("expected missing theme to report false")
	}

	path := filepath.Join(t.TempDir(), "styles.css")
	if err := os.WriteFile(path, []byte("body{}"), 0644); err != nil {
		t.Fatal(err)
	}
	css, ok := LoadTheme(path)
	if !ok || string(css) != "body{}" {
		t.Fatalf("expected theme contents, got %q %v", css, ok)
	}
}

func TestRenderIndex(t *testing.T) {
	tables := sampledata.Generate(time.Now())
	centers, _ := CenterCards(tables.Facilities, tables.Resources)

	out, err := RenderIndex(Page{
		Title:     "ANTNA",
		Region:    "Qatar",
		Alerts:    AlertCards(tables.Alerts),
		Centers:   centers,
		Updates:   UpdateCards(tables.Updates),
		Origins:   sampledata.Origins(),
		Checklist: sampledata.Checklist(),
		Contacts:  sampledata.Contacts(),
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	html := string(out)
	for _, want := range []string{"Sandstorm Alert", "Lusail Sports Arena", "@QatarWeather", "Hamad Hospital"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}
