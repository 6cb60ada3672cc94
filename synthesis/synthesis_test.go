package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"go-antna/llm"
	"go-antna/types"
)

type stubModel struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	calls   []llm.Request
}

func (m *stubModel) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	for noun, err := range m.errs {
		if strings.Contains(req.User, noun) {
			return "", err
		}
	}
	for noun, reply := range m.replies {
		if strings.Contains(req.User, noun) {
			return reply, nil
		}
	}
	return "", errors.New("unexpected request")
}

func alertsReply(n int) string {
	recs := make([]string, n)
	for i := range recs {
		recs[i] = fmt.Sprintf(`{"type":"Sandstorm","severity":"High","location":"Doha","time":"2024-11-05 14:%02d","description":"alert %d"}`, i, i)
	}
	return "[" + strings.Join(recs, ",") + "]"
}

func resourcesReply(withCoords bool) string {
	recs := make([]string, recordsPerTable)
	for i := range recs {
		coords := ""
		if withCoords || i > 0 {
			coords = fmt.Sprintf(`"lat": "25.%d", "lon": 51.4,`, i+1)
		}
		recs[i] = fmt.Sprintf(`{"facility":"Center %d",%s"type":"Primary","water":"2000","food":1500,"medical":"40","beds":"300","current_occupancy":120,"last_updated":"2024-11-05 14:00"}`, i, coords)
	}
	return "```json\n[" + strings.Join(recs, ",\n") + "]\n```"
}

func updatesReply() string {
	recs := make([]string, recordsPerTable)
	for i := range recs {
		recs[i] = fmt.Sprintf(`{"source_type":"Official","username":"@user%d","message":"flood near Al Khor","location":"Al Khor","verified":"true","trust_score":"0.9%d","timestamp":"2024-11-05 14:%02d","engagement":"%d"}`, i, i, i, 100+i)
	}
	return "[" + strings.Join(recs, ",") + "]"
}

type stubGeocoder struct {
	at  types.Coordinate
	err error
}

func (g stubGeocoder) Locate(ctx context.Context, address string) (types.Coordinate, error) {
	return g.at, g.err
}

func TestSynthesizeAllTables(t *testing.T) {
	model := &stubModel{replies: map[string]string{
		"alerts":           alertsReply(recordsPerTable),
		"facility reports": resourcesReply(true),
		"social updates":   updatesReply(),
	}}

	res, err := New(model, nil, "Qatar").Synthesize(context.Background(), "sandstorm over Doha")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.Failed() != 0 {
		t.Fatalf("expected no failures, got %+v", res.Status)
	}
	if len(res.Tables.Alerts) != 10 || len(res.Tables.Resources) != 10 || len(res.Tables.Facilities) != 10 || len(res.Tables.Updates) != 10 {
		t.Fatalf("expected 10 of each table, got %d/%d/%d/%d", len(res.Tables.Alerts), len(res.Tables.Resources), len(res.Tables.Facilities), len(res.Tables.Updates))
	}

	f := res.Tables.Facilities[0]
	if f.Capacity != 300 || f.Current != 120 {
		t.Fatalf("expected 120/300, got %d/%d", f.Current, f.Capacity)
	}
	if _, err := types.FindResource(res.Tables.Resources, f.Name); err != nil {
		t.Fatalf("expected resource join for %s, got %v", f.Name, err)
	}
	if !res.Tables.Updates[0].Verified || res.Tables.Updates[0].Engagement != 100 {
		t.Fatalf("expected string fields coerced, got %+v", res.Tables.Updates[0])
	}

	if len(model.calls) != 3 {
		t.Fatalf("expected 3 model calls, got %d", len(model.calls))
	}
	for _, c := range model.calls {
		if c.Temperature != 0.7 || c.MaxTokens != 1000 {
			t.Fatalf("expected temperature 0.7 and 1000 tokens, got %v/%d", c.Temperature, c.MaxTokens)
		}
		if !strings.HasSuffix(c.User, "for: sandstorm over Doha") {
			t.Fatalf("expected scenario in user prompt, got %q", c.User)
		}
	}
}

func TestSynthesizePartialFailure(t *testing.T) {
	model := &stubModel{replies: map[string]string{
		"alerts":           "Sure! Here are your alerts: [",
		"facility reports": resourcesReply(true),
		"social updates":   updatesReply(),
	}}

	res, err := New(model, nil, "Qatar").Synthesize(context.Background(), "flooding")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(res.Tables.Alerts) != 0 {
		t.Fatalf("expected empty alerts, got %d", len(res.Tables.Alerts))
	}
	if len(res.Tables.Resources) != 10 || len(res.Tables.Updates) != 10 {
		t.Fatalf("expected other tables populated, got %d/%d", len(res.Tables.Resources), len(res.Tables.Updates))
	}
	if res.Failed() != 1 || res.Status[0].OK || res.Status[0].Table != types.TableAlerts {
		t.Fatalf("expected only alerts to fail, got %+v", res.Status)
	}
}

func TestSynthesizeProviderFailure(t *testing.T) {
	model := &stubModel{
		replies: map[string]string{"alerts": alertsReply(recordsPerTable), "facility reports": resourcesReply(true)},
		errs:    map[string]error{"social updates": errors.New("503 service unavailable")},
	}

	res, err := New(model, nil, "Qatar").Synthesize(context.Background(), "heatwave")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(res.Tables.Updates) != 0 || res.Status[2].OK {
		t.Fatalf("expected failed updates table, got %+v", res.Status[2])
	}
	if !strings.Contains(res.Status[2].Error, "503") {
		t.Fatalf("expected provider error in status, got %q", res.Status[2].Error)
	}
	if len(res.Tables.Alerts) != 10 {
		t.Fatalf("expected alerts populated, got %d", len(res.Tables.Alerts))
	}
}

func TestSynthesizeEmptyPrompt(t *testing.T) {
	model := &stubModel{}
	_, err := New(model, nil, "Qatar").Synthesize(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
	if len(model.calls) != 0 {
		t.Fatalf("expected no model calls, got %d", len(model.calls))
	}
}

func TestUnlocatedFacilities(t *testing.T) {
	replies := map[string]string{
		"alerts":           alertsReply(recordsPerTable),
		"facility reports": resourcesReply(false),
		"social updates":   updatesReply(),
	}

	t.Run("without geocoder", func(t *testing.T) {
		res, _ := New(&stubModel{replies: replies}, nil, "Qatar").Synthesize(context.Background(), "x")
		if len(res.Tables.Resources) != 10 || len(res.Tables.Facilities) != 9 {
			t.Fatalf("expected 10 reports and 9 placed facilities, got %d/%d", len(res.Tables.Resources), len(res.Tables.Facilities))
		}
		if !strings.Contains(res.Status[1].Warning, "Center 0") {
			t.Fatalf("expected warning naming Center 0, got %q", res.Status[1].Warning)
		}
	})

	t.Run("with geocoder", func(t *testing.T) {
		g := stubGeocoder{at: types.Coordinate{Lat: 25.29, Lon: 51.53}}
		res, _ := New(&stubModel{replies: replies}, g, "Qatar").Synthesize(context.Background(), "x")
		if len(res.Tables.Facilities) != 10 {
			t.Fatalf("expected 10 facilities, got %d", len(res.Tables.Facilities))
		}
		if res.Tables.Facilities[0].Lat != 25.29 {
			t.Fatalf("expected geocoded lat, got %v", res.Tables.Facilities[0].Lat)
		}
	})
}

func TestSchemaErrors(t *testing.T) {
	t.Run("wrong record count", func(t *testing.T) {
		_, err := splitRecords(types.TableAlerts, alertsReply(9))
		var se *SchemaError
		if !errors.As(err, &se) || se.Index != -1 {
			t.Fatalf("expected array-level SchemaError, got %v", err)
		}
	})

	t.Run("not json", func(t *testing.T) {
		_, err := splitRecords(types.TableAlerts, "I cannot help with that")
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("expected ParseError, got %v", err)
		}
	})

	t.Run("occupancy above beds", func(t *testing.T) {
		rec := resourceRecord{
			Facility:         "Arena",
			Water:            flexInt{1, true},
			Food:             flexInt{1, true},
			Medical:          flexInt{1, true},
			Beds:             flexInt{100, true},
			CurrentOccupancy: flexInt{101, true},
			LastUpdated:      "2024-11-05 14:00",
		}
		_, _, err := rec.facility(3)
		var se *SchemaError
		if !errors.As(err, &se) || se.Field != "current_occupancy" || se.Index != 3 {
			t.Fatalf("expected current_occupancy SchemaError at 3, got %v", err)
		}
	})

	t.Run("trust out of range", func(t *testing.T) {
		rec := updateRecord{
			SourceType: "Citizen", Username: "@a", Message: "m", Location: "Doha",
			Verified: flexBool{false, true}, TrustScore: flexFloat{1.4, true},
			Timestamp: "2024-11-05 14:00",
		}
		_, err := rec.update(0)
		var se *SchemaError
		if !errors.As(err, &se) || se.Field != "trust_score" {
			t.Fatalf("expected trust_score SchemaError, got %v", err)
		}
	})
}

func TestStripFences(t *testing.T) {
	for in, want := range map[string]string{
		"[1]":                  "[1]",
		"```json\n[1]\n```":    "[1]",
		"```\n[1]\n```\n":      "[1]",
		"  \n```json\n[]```  ": "[]",
	} {
		if got := stripFences(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestSplitRecordsProseReply(t *testing.T) {
	prose := "عاصفة رملية شديدة تقترب من الدوحة مع رياح قوية"
	_, err := splitRecords(types.TableAlerts, prose)

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !utf8.ValidString(err.Error()) {
		t.Fatalf("expected valid UTF-8 message, got %q", err.Error())
	}
	want := string([]rune(prose)[:20]) + "..."
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected message to quote %q, got %s", want, err.Error())
	}
}
