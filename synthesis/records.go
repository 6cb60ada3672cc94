package synthesis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go-antna/types"
)

// stripFences removes a surrounding ```json ... ``` block if the model
// wrapped its answer in one.
func stripFences(reply string) string {
	s := strings.TrimSpace(reply)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// splitRecords decodes reply as a JSON array of exactly ten objects.
func splitRecords(table, reply string) ([]json.RawMessage, error) {
	body := stripFences(reply)
	if !strings.HasPrefix(body, "[") {
		return nil, &ParseError{Table: table, Err: fmt.Errorf("reply starts with %q", head(body))}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, &ParseError{Table: table, Err: err}
	}
	if len(raw) != recordsPerTable {
		return nil, &SchemaError{Table: table, Index: -1, Reason: fmt.Sprintf("expected %d records, got %d", recordsPerTable, len(raw))}
	}
	return raw, nil
}

const headRunes = 20

// head shortens s for error messages without splitting a rune.
func head(s string) string {
	if utf8.RuneCountInString(s) <= headRunes {
		return s
	}
	return string([]rune(s)[:headRunes]) + "..."
}

func decodeRecord(table string, index int, raw json.RawMessage, dst interface{}) error {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return &SchemaError{Table: table, Index: index, Reason: "record is not an object"}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &SchemaError{Table: table, Index: index, Reason: err.Error()}
	}
	return nil
}

func required(table string, index int, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &SchemaError{Table: table, Index: index, Field: field, Reason: "missing"}
	}
	return nil
}

type alertRecord struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Location    string `json:"location"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

func (r alertRecord) alert(index int) (types.Alert, error) {
	const table = types.TableAlerts
	for field, v := range map[string]string{"location": r.Location, "description": r.Description} {
		if err := required(table, index, field, v); err != nil {
			return types.Alert{}, err
		}
	}

	kind, err := types.ParseAlertType(r.Type)
	if err != nil {
		return types.Alert{}, &SchemaError{Table: table, Index: index, Field: "type", Reason: err.Error()}
	}
	severity, err := types.ParseSeverity(r.Severity)
	if err != nil {
		return types.Alert{}, &SchemaError{Table: table, Index: index, Field: "severity", Reason: err.Error()}
	}
	at, err := types.ParseTimestamp(r.Time)
	if err != nil {
		return types.Alert{}, &SchemaError{Table: table, Index: index, Field: "time", Reason: err.Error()}
	}

	return types.Alert{
		Type:        kind,
		Severity:    severity,
		Location:    strings.TrimSpace(r.Location),
		Time:        at,
		Description: strings.TrimSpace(r.Description),
	}, nil
}

type resourceRecord struct {
	Facility         string    `json:"facility"`
	Type             string    `json:"type"`
	Lat              flexFloat `json:"lat"`
	Lon              flexFloat `json:"lon"`
	Contact          string    `json:"contact"`
	Water            flexInt   `json:"water"`
	Food             flexInt   `json:"food"`
	Medical          flexInt   `json:"medical"`
	Generators       flexInt   `json:"generators"`
	Beds             flexInt   `json:"beds"`
	CurrentOccupancy flexInt   `json:"current_occupancy"`
	LastUpdated      string    `json:"last_updated"`
}

// located reports whether the model supplied a usable coordinate.
func (r resourceRecord) located() bool {
	return r.Lat.set && r.Lon.set && !(r.Lat.v == 0 && r.Lon.v == 0) &&
		r.Lat.v >= -90 && r.Lat.v <= 90 && r.Lon.v >= -180 && r.Lon.v <= 180
}

// facility returns both halves of a generated row: the supply report and
// the shelter it describes (capacity is the bed count).
func (r resourceRecord) facility(index int) (types.ResourceReport, types.Facility, error) {
	const table = types.TableResources
	fail := func(field, reason string) (types.ResourceReport, types.Facility, error) {
		return types.ResourceReport{}, types.Facility{}, &SchemaError{Table: table, Index: index, Field: field, Reason: reason}
	}

	if err := required(table, index, "facility", r.Facility); err != nil {
		return types.ResourceReport{}, types.Facility{}, err
	}
	for _, f := range []struct {
		name string
		v    flexInt
	}{
		{"water", r.Water}, {"food", r.Food}, {"medical", r.Medical},
		{"beds", r.Beds}, {"current_occupancy", r.CurrentOccupancy},
	} {
		if !f.v.set {
			return fail(f.name, "missing")
		}
		if f.v.v < 0 {
			return fail(f.name, fmt.Sprintf("must be non-negative, got %d", f.v.v))
		}
	}
	if r.Generators.v < 0 {
		return fail("generators", fmt.Sprintf("must be non-negative, got %d", r.Generators.v))
	}
	if r.Beds.v == 0 {
		return fail("beds", "must be positive")
	}
	if r.CurrentOccupancy.v > r.Beds.v {
		return fail("current_occupancy", fmt.Sprintf("%d exceeds %d beds", r.CurrentOccupancy.v, r.Beds.v))
	}

	updated, err := types.ParseTimestamp(r.LastUpdated)
	if err != nil {
		return fail("last_updated", err.Error())
	}

	kind := types.Secondary
	if strings.TrimSpace(r.Type) != "" {
		kind, err = types.ParseFacilityType(r.Type)
		if err != nil {
			return fail("type", err.Error())
		}
	}

	name := strings.TrimSpace(r.Facility)
	report := types.ResourceReport{
		Location:    name,
		Water:       r.Water.v,
		Food:        r.Food.v,
		MedicalKits: r.Medical.v,
		Generators:  r.Generators.v,
		Beds:        r.Beds.v,
		LastUpdated: updated,
	}
	facility := types.Facility{
		Name:     name,
		Capacity: r.Beds.v,
		Current:  r.CurrentOccupancy.v,
		Type:     kind,
		Contact:  strings.TrimSpace(r.Contact),
	}
	if r.located() {
		facility.Lat, facility.Lon = r.Lat.v, r.Lon.v
	}
	return report, facility, nil
}

type updateRecord struct {
	SourceType string    `json:"source_type"`
	Username   string    `json:"username"`
	Message    string    `json:"message"`
	Location   string    `json:"location"`
	Verified   flexBool  `json:"verified"`
	TrustScore flexFloat `json:"trust_score"`
	Timestamp  string    `json:"timestamp"`
	Engagement flexInt   `json:"engagement"`
}

func (r updateRecord) update(index int) (types.SocialUpdate, error) {
	const table = types.TableUpdates
	fail := func(field, reason string) (types.SocialUpdate, error) {
		return types.SocialUpdate{}, &SchemaError{Table: table, Index: index, Field: field, Reason: reason}
	}

	for field, v := range map[string]string{"username": r.Username, "message": r.Message, "location": r.Location} {
		if err := required(table, index, field, v); err != nil {
			return types.SocialUpdate{}, err
		}
	}
	source, err := types.ParseSourceType(r.SourceType)
	if err != nil {
		return fail("source_type", err.Error())
	}
	if !r.Verified.set {
		return fail("verified", "missing")
	}
	if !r.TrustScore.set {
		return fail("trust_score", "missing")
	}
	if r.TrustScore.v < 0 || r.TrustScore.v > 1 {
		return fail("trust_score", fmt.Sprintf("%v outside [0, 1]", r.TrustScore.v))
	}
	if r.Engagement.v < 0 {
		return fail("engagement", fmt.Sprintf("must be non-negative, got %d", r.Engagement.v))
	}
	at, err := types.ParseTimestamp(r.Timestamp)
	if err != nil {
		return fail("timestamp", err.Error())
	}

	return types.SocialUpdate{
		Timestamp:  at,
		SourceType: source,
		Username:   strings.TrimSpace(r.Username),
		Message:    strings.TrimSpace(r.Message),
		Location:   strings.TrimSpace(r.Location),
		Verified:   r.Verified.v,
		TrustScore: r.TrustScore.v,
		Engagement: r.Engagement.v,
	}, nil
}
