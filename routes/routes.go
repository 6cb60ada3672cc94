package routes

import (
	"github.com/gin-gonic/gin"

	"go-antna/assistant"
	"go-antna/feed"
	"go-antna/handlers"
	"go-antna/locator"
	"go-antna/session"
	"go-antna/synthesis"
)

// Env carries the clients the handlers are wired to.
type Env struct {
	Store       *session.Store
	Assistant   *assistant.Assistant
	Locator     *locator.Locator
	Synthesizer *synthesis.Synthesizer
	Feed        *feed.Client

	Admin         bool
	Site          handlers.Site
	SessionMaxAge int
}

func SetupRouter(env Env) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", handlers.Health)
	if len(env.Site.Theme) > 0 {
		r.GET("/static/styles.css", func(c *gin.Context) {
			handlers.Theme(c, env.Site.Theme)
		})
	}

	withSession := handlers.SessionMiddleware(env.Store, env.SessionMaxAge)

	r.GET("/", withSession, func(c *gin.Context) {
		handlers.Index(c, env.Site)
	})

	// api routes
	api := r.Group("/api/antna", withSession)
	{
		api.GET("/alerts", handlers.GetAlerts)
		api.GET("/centers", handlers.GetCenters)
		api.GET("/centers/map", func(c *gin.Context) {
			handlers.GetCentersMap(c, env.Locator)
		})
		api.GET("/updates", handlers.GetUpdates)
		api.POST("/chat", func(c *gin.Context) {
			handlers.Chat(c, env.Assistant)
		})
		api.POST("/voice", func(c *gin.Context) {
			handlers.Voice(c, env.Assistant)
		})
		api.GET("/origins", handlers.GetOrigins)
		api.GET("/prep", handlers.GetPrep)
		api.POST("/prep/score", handlers.ScorePrep)
	}

	if env.Admin {
		admin := api.Group("/admin")
		{
			admin.GET("/examples", handlers.GetExamples)
			admin.POST("/scenario", func(c *gin.Context) {
				handlers.GenerateScenario(c, env.Synthesizer)
			})
			admin.GET("/data", handlers.GetData)
			admin.POST("/live-feed", func(c *gin.Context) {
				handlers.LiveFeed(c, env.Feed)
			})
		}
	}

	return r
}
