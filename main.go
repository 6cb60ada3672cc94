package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"go-antna/assistant"
	"go-antna/config"
	"go-antna/cronjobs"
	"go-antna/dashboard"
	"go-antna/feed"
	"go-antna/geocode"
	"go-antna/handlers"
	"go-antna/llm"
	"go-antna/locator"
	"go-antna/routes"
	"go-antna/sampledata"
	"go-antna/session"
	"go-antna/synthesis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger isn't configured yet; fall back to a plain production logger.
		logger, _ := zap.NewProduction()
		logger.Fatal("configuration error", zap.Error(err))
	}

	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	zap.S().Infow("starting ANTNA", "mode", cfg.Mode, "region", cfg.Region, "routing", cfg.RoutingProvider)

	model := llm.NewClient(cfg.LLMKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.TranscriptionModel)

	var maps *geocode.Client
	if cfg.MapsKey != "" {
		maps, err = geocode.NewClient(cfg.MapsKey, cfg.Region)
		if err != nil {
			zap.S().Warnw("google maps disabled", "err", err)
			maps = nil
		}
	}

	loc := locator.New(routingProvider(cfg, maps))

	var geocoder synthesis.Geocoder
	if maps != nil {
		geocoder = maps
	}

	// Viewers start from the sample tables, admins from an empty slate.
	seed := session.Seed(sampledata.Generate)
	if cfg.Mode == config.ModeAdmin {
		seed = nil
	}
	store := session.NewStore(seed)

	scheduler, err := cronjobs.InitCronJobs(store, cfg.SessionIdle)
	if err != nil {
		zap.S().Fatalw("failed to schedule cron jobs", "err", err)
	}
	defer scheduler.Stop()

	title := "ANTNA"
	if cfg.Mode == config.ModeAdmin {
		title = "ANTNA Admin"
	}
	theme, _ := dashboard.LoadTheme(cfg.ThemePath)

	r := routes.SetupRouter(routes.Env{
		Store:         store,
		Assistant:     assistant.New(model, model, loc, cfg.Region),
		Locator:       loc,
		Synthesizer:   synthesis.New(model, geocoder, cfg.Region),
		Feed:          feed.NewClient(cfg.BlueskyHost, cfg.Region),
		Admin:         cfg.Mode == config.ModeAdmin,
		SessionMaxAge: int(cfg.SessionIdle.Seconds()),
		Site: handlers.Site{
			Title:  title,
			Region: cfg.Region,
			Admin:  cfg.Mode == config.ModeAdmin,
			Theme:  theme,
		},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("failed to start server", "err", err)
		}
	}()
	zap.S().Infow("listening", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("shutdown", "err", err)
	}
}

// routingProvider picks the directions backend. Without a key there is no
// provider and every route is a straight line.
func routingProvider(cfg *config.Config, maps *geocode.Client) locator.Directions {
	switch cfg.RoutingProvider {
	case config.RoutingORS:
		if cfg.ORSKey == "" {
			zap.S().Warn("ORS_API_KEY not set; routes will be straight lines")
			return nil
		}
		return locator.NewORSClient(cfg.ORSBaseURL, cfg.ORSKey)
	case config.RoutingGoogle:
		if maps == nil {
			zap.S().Warn("MAPS_CREDENTIALS not set; routes will be straight lines")
			return nil
		}
		return maps
	default:
		return nil
	}
}
