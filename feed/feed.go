package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bluesky-social/indigo/xrpc"
	"go.uber.org/zap"

	"go-antna/types"
)

const (
	feedMethod   = "app.bsky.feed.getFeed"
	defaultLimit = 10
	maxLimit     = 100

	// Posts from the open network are unverified citizen reports.
	liveTrust = 0.5
)

// Presets are public disaster feed generators.
var Presets = map[string]string{
	"fire":       "at://did:plc:qiknc4t5rq7yngvz7g4aezq7/app.bsky.feed.generator/aaaejsyozb6iq",
	"earthquake": "at://did:plc:qiknc4t5rq7yngvz7g4aezq7/app.bsky.feed.generator/aaaejxlobe474",
	"hurricane":  "at://did:plc:qiknc4t5rq7yngvz7g4aezq7/app.bsky.feed.generator/aaaejwgffwqky",
}

var hiddenLabels = map[string]bool{"spam": true, "!hide": true}

type Client struct {
	xrpc   *xrpc.Client
	region string
}

func NewClient(host, region string) *Client {
	return &Client{
		xrpc: &xrpc.Client{
			Client: &http.Client{Timeout: 10 * time.Second},
			Host:   strings.TrimRight(host, "/"),
		},
		region: region,
	}
}

// ResolveFeed accepts a preset name or an at:// feed generator URI.
func ResolveFeed(feed string) (string, error) {
	feed = strings.TrimSpace(feed)
	if uri, ok := Presets[strings.ToLower(feed)]; ok {
		return uri, nil
	}
	if strings.HasPrefix(feed, "at://") && strings.Contains(feed, "/app.bsky.feed.generator/") {
		return feed, nil
	}
	return "", fmt.Errorf("unknown feed %q", feed)
}

// Fetch reads one page of a feed and converts its posts to updates.
func (c *Client) Fetch(ctx context.Context, feedURI string, limit int) ([]types.SocialUpdate, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	params := map[string]interface{}{
		"feed":  feedURI,
		"limit": limit,
	}
	zap.S().Debugw("fetching feed", "params", params)

	var out types.FeedResponse
	if err := c.xrpc.Do(ctx, xrpc.Query, "json", feedMethod, params, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching feed via xrpc: %w", err)
	}

	updates := make([]types.SocialUpdate, 0, len(out.Feed))
	for _, entry := range out.Feed {
		u, ok := c.toUpdate(entry.Post)
		if !ok {
			continue
		}
		updates = append(updates, u)
	}
	zap.S().Infow("feed fetched", "posts", len(out.Feed), "kept", len(updates))
	return updates, nil
}

func (c *Client) toUpdate(p types.Post) (types.SocialUpdate, bool) {
	text := strings.TrimSpace(p.Record.Text)
	if text == "" {
		return types.SocialUpdate{}, false
	}
	for _, l := range p.Author.Labels {
		if hiddenLabels[l.Val] {
			return types.SocialUpdate{}, false
		}
	}

	at, err := types.ParseTimestamp(p.Record.CreatedAt)
	if err != nil {
		if at, err = types.ParseTimestamp(p.IndexedAt); err != nil {
			return types.SocialUpdate{}, false
		}
	}

	return types.SocialUpdate{
		Timestamp:  at,
		SourceType: types.Citizen,
		Username:   "@" + p.Author.Handle,
		Message:    text,
		Location:   c.region,
		Verified:   false,
		TrustScore: liveTrust,
		Engagement: p.LikeCount + p.RepostCount + p.ReplyCount + p.QuoteCount,
	}, true
}
