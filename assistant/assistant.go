package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"go-antna/dashboard"
	"go-antna/llm"
	"go-antna/locator"
	"go-antna/sampledata"
	"go-antna/types"
)

var ErrEmptyQuery = errors.New("please enter a question")

// routeTrigger asks for directions to the nearest facility.
const routeTrigger = "medical supplies"

const (
	temperature = 0.7
	maxTokens   = 500
	topP        = 0.9
)

type Query struct {
	Text       string
	Updates    []types.SocialUpdate
	Facilities []types.Facility
	// Origin defaults to the city center preset.
	Origin dashboard.Marker
}

// Reply separates a model failure (Err) from the answer text so the caller
// decides how to show it.
type Reply struct {
	Query    string                     `json:"query"`
	Text     string                     `json:"answer"`
	Err      error                      `json:"-"`
	Context  []string                   `json:"context"`
	Map      *geojson.FeatureCollection `json:"map,omitempty"`
	Facility *types.Facility            `json:"facility,omitempty"`
	Route    *types.Route               `json:"route,omitempty"`
	Notices  []string                   `json:"notices,omitempty"`
}

// Message is what goes in the chat transcript.
func (r Reply) Message() string {
	if r.Err != nil {
		return "AI processing error: " + r.Err.Error()
	}
	return r.Text
}

type Assistant struct {
	model       llm.Completer
	transcriber llm.Transcriber
	locator     *locator.Locator
	region      string
}

func New(model llm.Completer, transcriber llm.Transcriber, loc *locator.Locator, region string) *Assistant {
	return &Assistant{model: model, transcriber: transcriber, locator: loc, region: region}
}

// Answer only errors on a blank query. Model and routing failures are
// carried on the Reply.
func (a *Assistant) Answer(ctx context.Context, q Query) (Reply, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return Reply{}, ErrEmptyQuery
	}

	reply := Reply{Query: text, Context: Context(text, q.Updates)}

	answer, err := a.model.Complete(ctx, llm.Request{
		System:      systemPrompt(a.region),
		User:        BuildPrompt(reply.Context, text),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        topP,
	})
	if err != nil {
		zap.S().Warnw("model call failed", "err", err)
		reply.Err = err
	} else {
		reply.Text = answer
	}

	if strings.Contains(strings.ToLower(text), routeTrigger) {
		a.attachRoute(ctx, &reply, q)
	}
	return reply, nil
}

func (a *Assistant) attachRoute(ctx context.Context, reply *Reply, q Query) {
	origin := q.Origin
	if origin.At.IsZero() {
		def, _ := sampledata.LookupOrigin(sampledata.DefaultOrigin)
		origin = dashboard.Marker{Name: def.Name, At: def.At}
	}

	nearest, err := locator.Nearest(q.Facilities, origin.At)
	if err != nil {
		reply.Notices = append(reply.Notices, "No facilities are available to route to.")
		return
	}

	route, notice := a.locator.Route(ctx, origin.At, nearest.Coordinate())
	if notice != "" {
		reply.Notices = append(reply.Notices, string(notice))
	}

	reply.Facility = &nearest
	reply.Route = &route
	reply.Map = dashboard.RouteMap(origin, nearest, route)
	reply.Notices = append(reply.Notices, routeSummary(nearest, route))
}

func routeSummary(f types.Facility, r types.Route) string {
	if r.Fallback {
		return fmt.Sprintf("Nearest facility: %s, about %.1f km in a straight line.", f.Name, r.DistanceKM())
	}
	return fmt.Sprintf("Nearest facility: %s, %.1f km, about %.0f min by car.", f.Name, r.DistanceKM(), r.DurationMinutes())
}

// Voice transcribes audio and answers the transcript. When transcription
// fails nothing else is called and the reply is nil.
func (a *Assistant) Voice(ctx context.Context, audio []byte, q Query) (*Reply, error) {
	if a.transcriber == nil {
		return nil, errors.New("transcription is not configured")
	}
	text, err := a.transcriber.Transcribe(ctx, audio)
	if err != nil {
		zap.S().Warnw("transcription failed", "bytes", len(audio), "err", err)
		return nil, err
	}

	q.Text = text
	reply, err := a.Answer(ctx, q)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}
