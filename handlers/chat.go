package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-antna/assistant"
	"go-antna/dashboard"
)

const maxAudioBytes = 25 << 20

func chatQuery(c *gin.Context, text string, origin dashboard.Marker) assistant.Query {
	tables := currentSession(c).Tables()
	return assistant.Query{
		Text:       text,
		Updates:    tables.Updates,
		Facilities: tables.Facilities,
		Origin:     origin,
	}
}

func replyJSON(r assistant.Reply) gin.H {
	return gin.H{
		"query":       r.Query,
		"answer":      r.Message(),
		"model_error": r.Err != nil,
		"context":     r.Context,
		"map":         r.Map,
		"facility":    r.Facility,
		"route":       r.Route,
		"notices":     r.Notices,
	}
}

func Chat(c *gin.Context, a *assistant.Assistant) {
	var request struct {
		Query  string `json:"query"`
		Origin string `json:"origin"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err)
		return
	}
	origin, ok := resolveOrigin(request.Origin)
	if !ok {
		badRequest(c, fmt.Errorf("unknown origin %q", request.Origin))
		return
	}

	reply, err := a.Answer(c.Request.Context(), chatQuery(c, request.Query, origin))
	if errors.Is(err, assistant.ErrEmptyQuery) {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, replyJSON(reply))
}

// Voice takes a multipart "audio" file. A failed transcription answers with
// a null reply and a notice.
func Voice(c *gin.Context, a *assistant.Assistant) {
	fh, err := c.FormFile("audio")
	if err != nil {
		badRequest(c, errors.New("audio file is required"))
		return
	}
	if fh.Size > maxAudioBytes {
		badRequest(c, fmt.Errorf("audio exceeds %d bytes", maxAudioBytes))
		return
	}
	origin, ok := resolveOrigin(c.PostForm("origin"))
	if !ok {
		badRequest(c, fmt.Errorf("unknown origin %q", c.PostForm("origin")))
		return
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()
	audio, err := io.ReadAll(io.LimitReader(f, maxAudioBytes))
	if err != nil {
		badRequest(c, err)
		return
	}

	reply, err := a.Voice(c.Request.Context(), audio, chatQuery(c, "", origin))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"reply":  nil,
			"notice": "Could not transcribe audio: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": replyJSON(*reply)})
}
