package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-antna/feed"
	"go-antna/sampledata"
	"go-antna/synthesis"
)

func GetExamples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": sampledata.ScenarioExamples()})
}

// GenerateScenario replaces the session's tables with synthesized ones.
// Any failed table makes the response 207 Multi-Status.
func GenerateScenario(c *gin.Context, synth *synthesis.Synthesizer) {
	var request struct {
		Prompt  string `json:"prompt"`
		Example string `json:"example"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err)
		return
	}

	prompt := request.Prompt
	if strings.TrimSpace(prompt) == "" && request.Example != "" {
		ex, ok := sampledata.LookupScenario(request.Example)
		if !ok {
			badRequest(c, errors.New("unknown example scenario"))
			return
		}
		prompt = ex.Prompt
	}

	res, err := synth.Synthesize(c.Request.Context(), prompt)
	if err != nil {
		badRequest(c, err)
		return
	}
	currentSession(c).Replace(res.Tables, res.Status)

	status := http.StatusOK
	if res.Failed() > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{
		"status": res.Status,
		"counts": gin.H{
			"alerts":     len(res.Tables.Alerts),
			"resources":  len(res.Tables.Resources),
			"facilities": len(res.Tables.Facilities),
			"updates":    len(res.Tables.Updates),
		},
	})
}

func GetData(c *gin.Context) {
	sess := currentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"tables": sess.Tables(),
		"status": sess.Status(),
	})
}

// LiveFeed swaps the session's update table for one page of a Bluesky feed.
func LiveFeed(c *gin.Context, client *feed.Client) {
	var request struct {
		Feed  string `json:"feed"`
		Limit int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err)
		return
	}
	uri, err := feed.ResolveFeed(request.Feed)
	if err != nil {
		badRequest(c, err)
		return
	}

	updates, err := client.Fetch(c.Request.Context(), uri, request.Limit)
	if err != nil {
		zap.S().Warnw("live feed import failed", "feed", uri, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch feed"})
		return
	}

	currentSession(c).ReplaceUpdates(updates)
	c.JSON(http.StatusOK, gin.H{"feed": uri, "count": len(updates)})
}
