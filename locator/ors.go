package locator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"go-antna/types"
)

const (
	orsProfile     = "driving-car"
	orsSnapRadius  = 1000
	orsProvider    = "openrouteservice"
	orsRetryMax    = 2
	orsHTTPTimeout = 10 * time.Second
)

// ProviderError is an explicit refusal from the routing service, such as
// "no route found" or an invalid coordinate.
type ProviderError struct {
	Status  int
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("routing provider error %d (code %d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("routing provider error %d: %s", e.Status, e.Message)
}

// ORSClient requests driving directions from OpenRouteService.
type ORSClient struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
}

func NewORSClient(baseURL, apiKey string) *ORSClient {
	rC := retryablehttp.NewClient()
	rC.Logger = leveledLogger{zap.S()}
	rC.RetryMax = orsRetryMax
	rC.RetryWaitMin = 200 * time.Millisecond
	rC.RetryWaitMax = 2 * time.Second
	rC.HTTPClient.Timeout = orsHTTPTimeout

	return &ORSClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    rC,
	}
}

type orsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
	Radiuses    []int        `json:"radiuses"`
}

type orsSummary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type orsMeta struct {
	Features []struct {
		Properties struct {
			Summary  orsSummary   `json:"summary"`
			Segments []orsSummary `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

type orsError struct {
	Error json.RawMessage `json:"error"`
}

func (c *ORSClient) Directions(ctx context.Context, origin, destination types.Coordinate) (types.Route, error) {
	body, err := json.Marshal(orsRequest{
		Coordinates: [][2]float64{{origin.Lon, origin.Lat}, {destination.Lon, destination.Lat}},
		Radiuses:    []int{orsSnapRadius, orsSnapRadius},
	})
	if err != nil {
		return types.Route{}, err
	}

	url := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, orsProfile)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return types.Route{}, err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return types.Route{}, fmt.Errorf("requesting directions: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Route{}, fmt.Errorf("reading directions: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return types.Route{}, parseProviderError(resp.StatusCode, raw)
	}
	return decodeORSRoute(raw)
}

func parseProviderError(status int, raw []byte) error {
	pe := &ProviderError{Status: status, Message: http.StatusText(status)}

	var envelope orsError
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Error) == 0 {
		return pe
	}

	// "error" is either a string or {"code": n, "message": "..."}.
	var detail struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &detail); err == nil {
		pe.Code = detail.Code
		if detail.Message != "" {
			pe.Message = detail.Message
		}
		return pe
	}
	var msg string
	if err := json.Unmarshal(envelope.Error, &msg); err == nil && msg != "" {
		pe.Message = msg
	}
	return pe
}

func decodeORSRoute(raw []byte) (types.Route, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return types.Route{}, fmt.Errorf("decoding directions geojson: %w", err)
	}
	if len(fc.Features) == 0 {
		return types.Route{}, errors.New("directions response has no features")
	}

	line, ok := fc.Features[0].Geometry.(orb.LineString)
	if !ok {
		return types.Route{}, fmt.Errorf("expected LineString geometry, got %T", fc.Features[0].Geometry)
	}

	var meta orsMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return types.Route{}, fmt.Errorf("decoding directions summary: %w", err)
	}
	props := meta.Features[0].Properties
	summary := props.Summary
	if len(props.Segments) > 0 {
		summary = props.Segments[0]
	}

	route := types.Route{
		Waypoints:      make([]types.Coordinate, 0, len(line)),
		DistanceMeters: summary.Distance,
		Duration:       time.Duration(summary.Duration * float64(time.Second)),
		Provider:       orsProvider,
	}
	for _, p := range line {
		route.Waypoints = append(route.Waypoints, types.Coordinate{Lat: p.Lat(), Lon: p.Lon()})
	}
	return route, nil
}

// leveledLogger routes retryablehttp's logging into zap.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}
