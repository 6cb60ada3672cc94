package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"go-antna/llm"
	"go-antna/types"
)

// Geocoder places a facility the model named without coordinates.
type Geocoder interface {
	Locate(ctx context.Context, address string) (types.Coordinate, error)
}

type Synthesizer struct {
	model    llm.Completer
	geocoder Geocoder
	region   string
}

// New builds a synthesizer. geocoder may be nil.
func New(model llm.Completer, geocoder Geocoder, region string) *Synthesizer {
	return &Synthesizer{model: model, geocoder: geocoder, region: region}
}

// Result holds the freshly generated tables and how each one fared. A
// failed table is empty, never partially filled.
type Result struct {
	Tables types.Tables        `json:"tables"`
	Status []types.TableStatus `json:"status"`
}

func (r Result) Failed() int {
	n := 0
	for _, s := range r.Status {
		if !s.OK {
			n++
		}
	}
	return n
}

type generated struct {
	status     types.TableStatus
	alerts     []types.Alert
	resources  []types.ResourceReport
	facilities []types.Facility
	updates    []types.SocialUpdate
}

// Synthesize runs the three table generations concurrently. Only a blank
// prompt is an error; every model or parse failure lands in Result.Status.
func (s *Synthesizer) Synthesize(ctx context.Context, prompt string) (Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Result{}, ErrEmptyPrompt
	}

	zap.S().Infow("synthesizing scenario", "region", s.region, "prompt_len", len(prompt))

	jobs := []func(context.Context, string) generated{s.alerts, s.resources, s.updates}
	out := make([]generated, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job func(context.Context, string) generated) {
			defer wg.Done()
			out[i] = job(ctx, prompt)
		}(i, job)
	}
	wg.Wait()

	res := Result{
		Tables: types.Tables{
			Alerts:     []types.Alert{},
			Facilities: []types.Facility{},
			Resources:  []types.ResourceReport{},
			Updates:    []types.SocialUpdate{},
		},
	}
	for _, g := range out {
		res.Status = append(res.Status, g.status)
		if !g.status.OK {
			zap.S().Warnw("table generation failed", "table", g.status.Table, "err", g.status.Error)
			continue
		}
		res.Tables.Alerts = append(res.Tables.Alerts, g.alerts...)
		res.Tables.Resources = append(res.Tables.Resources, g.resources...)
		res.Tables.Facilities = append(res.Tables.Facilities, g.facilities...)
		res.Tables.Updates = append(res.Tables.Updates, g.updates...)
	}

	zap.S().Infow("scenario synthesized", "failed_tables", res.Failed())
	return res, nil
}

func failed(table string, err error) generated {
	return generated{status: types.TableStatus{Table: table, Error: err.Error()}}
}

func (s *Synthesizer) generate(ctx context.Context, table, system, noun, prompt string) ([]json.RawMessage, error) {
	reply, err := s.model.Complete(ctx, llm.Request{
		System:      system,
		User:        userPrompt(noun, prompt),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", table, err)
	}
	return splitRecords(table, reply)
}

func (s *Synthesizer) alerts(ctx context.Context, prompt string) generated {
	const table = types.TableAlerts
	raw, err := s.generate(ctx, table, alertsSystemPrompt(s.region), "alerts", prompt)
	if err != nil {
		return failed(table, err)
	}

	alerts := make([]types.Alert, 0, len(raw))
	for i, r := range raw {
		var rec alertRecord
		if err := decodeRecord(table, i, r, &rec); err != nil {
			return failed(table, err)
		}
		a, err := rec.alert(i)
		if err != nil {
			return failed(table, err)
		}
		alerts = append(alerts, a)
	}
	return generated{
		status: types.TableStatus{Table: table, OK: true, Count: len(alerts)},
		alerts: alerts,
	}
}

func (s *Synthesizer) resources(ctx context.Context, prompt string) generated {
	const table = types.TableResources
	raw, err := s.generate(ctx, table, resourcesSystemPrompt(s.region), "facility reports", prompt)
	if err != nil {
		return failed(table, err)
	}

	var (
		reports    = make([]types.ResourceReport, 0, len(raw))
		facilities = make([]types.Facility, 0, len(raw))
		unplaced   []string
		seen       = make(map[string]bool)
	)
	for i, r := range raw {
		var rec resourceRecord
		if err := decodeRecord(table, i, r, &rec); err != nil {
			return failed(table, err)
		}
		report, facility, err := rec.facility(i)
		if err != nil {
			return failed(table, err)
		}
		if seen[facility.Name] {
			return failed(table, &SchemaError{Table: table, Index: i, Field: "facility", Reason: fmt.Sprintf("duplicate name %q", facility.Name)})
		}
		seen[facility.Name] = true
		reports = append(reports, report)

		if facility.Coordinate().IsZero() {
			at, err := s.locate(ctx, facility.Name)
			if err != nil {
				zap.S().Debugw("could not place facility", "facility", facility.Name, "err", err)
				unplaced = append(unplaced, facility.Name)
				continue
			}
			facility.Lat, facility.Lon = at.Lat, at.Lon
		}
		facilities = append(facilities, facility)
	}

	status := types.TableStatus{Table: table, OK: true, Count: len(reports)}
	if len(unplaced) > 0 {
		status.Warning = fmt.Sprintf("no coordinates for %s; left off the map", strings.Join(unplaced, ", "))
	}
	return generated{status: status, resources: reports, facilities: facilities}
}

func (s *Synthesizer) locate(ctx context.Context, name string) (types.Coordinate, error) {
	if s.geocoder == nil {
		return types.Coordinate{}, fmt.Errorf("no geocoder configured")
	}
	return s.geocoder.Locate(ctx, name)
}

func (s *Synthesizer) updates(ctx context.Context, prompt string) generated {
	const table = types.TableUpdates
	raw, err := s.generate(ctx, table, updatesSystemPrompt(s.region), "social updates", prompt)
	if err != nil {
		return failed(table, err)
	}

	updates := make([]types.SocialUpdate, 0, len(raw))
	for i, r := range raw {
		var rec updateRecord
		if err := decodeRecord(table, i, r, &rec); err != nil {
			return failed(table, err)
		}
		u, err := rec.update(i)
		if err != nil {
			return failed(table, err)
		}
		updates = append(updates, u)
	}
	return generated{
		status:  types.TableStatus{Table: table, OK: true, Count: len(updates)},
		updates: updates,
	}
}
