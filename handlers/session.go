package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-antna/dashboard"
	"go-antna/sampledata"
	"go-antna/session"
)

const (
	SessionCookie = "antna_session"
	SessionHeader = "X-Session-ID"
	sessionKey    = "session"
)

// SessionMiddleware attaches the caller's session, creating one when the
// request carries no known id.
func SessionMiddleware(store *session.Store, maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}

		sess, created := store.GetOrCreate(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sess.ID, maxAgeSeconds, "/", "", false, true)
		}
		c.Header(SessionHeader, sess.ID)
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// resolveOrigin maps a preset location name to a marker. Blank means the
// default preset.
func resolveOrigin(name string) (dashboard.Marker, bool) {
	if name == "" {
		name = sampledata.DefaultOrigin
	}
	o, ok := sampledata.LookupOrigin(name)
	if !ok {
		return dashboard.Marker{}, false
	}
	return dashboard.Marker{Name: o.Name, At: o.At}, true
}
