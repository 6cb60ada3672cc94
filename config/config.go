package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var ErrMissingLLMKey = errors.New("LLM_API_KEY is not set")

type Mode string

const (
	ModeViewer Mode = "viewer"
	ModeAdmin  Mode = "admin"
)

const (
	RoutingORS    = "ors"
	RoutingGoogle = "google"
	RoutingNone   = "none"
)

type Config struct {
	Port     string
	Mode     Mode
	LogLevel string

	LLMKey             string
	LLMBaseURL         string
	LLMModel           string
	TranscriptionModel string

	RoutingProvider string
	ORSKey          string
	ORSBaseURL      string
	MapsKey         string

	Region      string
	ThemePath   string
	SessionIdle time.Duration
	BlueskyHost string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ANTNA_MODE", string(ModeViewer))
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LLM_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("LLM_MODEL", "mixtral-8x7b-32768")
	v.SetDefault("TRANSCRIPTION_MODEL", "whisper-large-v3")
	v.SetDefault("ROUTING_PROVIDER", RoutingORS)
	v.SetDefault("ORS_BASE_URL", "https://api.openrouteservice.org")
	v.SetDefault("REGION_NAME", "Qatar")
	v.SetDefault("THEME_PATH", "styles.css")
	v.SetDefault("SESSION_IDLE_MINUTES", 120)
	v.SetDefault("BLUESKY_HOST", "https://public.api.bsky.app")
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.S().Warnw("no .env file loaded", "err", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		Mode:               Mode(strings.ToLower(v.GetString("ANTNA_MODE"))),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LLMKey:             v.GetString("LLM_API_KEY"),
		LLMBaseURL:         v.GetString("LLM_BASE_URL"),
		LLMModel:           v.GetString("LLM_MODEL"),
		TranscriptionModel: v.GetString("TRANSCRIPTION_MODEL"),
		RoutingProvider:    strings.ToLower(v.GetString("ROUTING_PROVIDER")),
		ORSKey:             v.GetString("ORS_API_KEY"),
		ORSBaseURL:         v.GetString("ORS_BASE_URL"),
		MapsKey:            v.GetString("MAPS_CREDENTIALS"),
		Region:             v.GetString("REGION_NAME"),
		ThemePath:          v.GetString("THEME_PATH"),
		SessionIdle:        time.Duration(v.GetInt("SESSION_IDLE_MINUTES")) * time.Minute,
		BlueskyHost:        v.GetString("BLUESKY_HOST"),
	}

	if cfg.LLMKey == "" {
		cfg.LLMKey = v.GetString("GROQ_API_KEY")
	}
	if cfg.LLMKey == "" {
		return nil, ErrMissingLLMKey
	}

	switch cfg.Mode {
	case ModeViewer, ModeAdmin:
	default:
		return nil, fmt.Errorf("ANTNA_MODE must be %q or %q, got %q", ModeViewer, ModeAdmin, cfg.Mode)
	}

	switch cfg.RoutingProvider {
	case RoutingORS, RoutingGoogle, RoutingNone:
	default:
		return nil, fmt.Errorf("unknown ROUTING_PROVIDER %q", cfg.RoutingProvider)
	}

	if cfg.SessionIdle <= 0 {
		cfg.SessionIdle = 120 * time.Minute
	}
	return cfg, nil
}
