package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"campaign-gen/internal/ratio"
)

var ErrConfig = errors.New("invalid configuration")

type Config struct {
	Firefly Firefly `envPrefix:"FIREFLY_"`
	HTTP    HTTP    `envPrefix:"HTTP_"`
	Log     Logger  `envPrefix:"LOG_"`

	// RatioList is the raw ASPECT_RATIOS value; use AspectRatios for the parsed form.
	RatioList []string `env:"ASPECT_RATIOS" envSeparator:"," envDefault:"1:1,9:16,16:9"`

	AssetsDir  string `env:"ASSETS_DIR" envDefault:"assets"`
	OutputsDir string `env:"OUTPUTS_DIR" envDefault:"outputs"`
	BriefsDir  string `env:"BRIEFS_DIR" envDefault:"briefs"`
	LocalesDir string `env:"LOCALES_DIR" envDefault:"locales"`
}

// Firefly holds the service credentials. They are checked by the client
// before the first request, not here, so a missing secret still lets the
// rest of the configuration load.
type Firefly struct {
	ClientID        string `env:"SERVICES_CLIENT_ID"`
	ClientSecret    string `env:"SERVICES_CLIENT_SECRET"`
	TokenURL        string `env:"TOKEN_URL" envDefault:"https://ims-na1.adobelogin.com/ims/token/v3"`
	BaseURL         string `env:"BASE_URL" envDefault:"https://firefly-api.adobe.io"`
	VisualIntensity int    `env:"VISUAL_INTENSITY" envDefault:"6"`
}

type HTTP struct {
	TimeoutSeconds int  `env:"TIMEOUT_SECONDS" envDefault:"120"`
	PreferIPv4     bool `env:"PREFER_IPV4" envDefault:"false"`
}

func (h HTTP) Timeout() time.Duration {
	if h.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// SlogLevel maps Level onto slog; unknown values fall back to info.
func (c Logger) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Logger) SlogFormat() string {
	if strings.EqualFold(strings.TrimSpace(c.Format), "json") {
		return "json"
	}
	return "text"
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg.Firefly.ClientID = strings.TrimSpace(cfg.Firefly.ClientID)
	cfg.Firefly.ClientSecret = strings.TrimSpace(cfg.Firefly.ClientSecret)
	cfg.Firefly.TokenURL = strings.TrimSpace(cfg.Firefly.TokenURL)
	cfg.Firefly.BaseURL = strings.TrimSpace(cfg.Firefly.BaseURL)
	cfg.AssetsDir = strings.TrimSpace(cfg.AssetsDir)
	cfg.OutputsDir = strings.TrimSpace(cfg.OutputsDir)
	cfg.BriefsDir = strings.TrimSpace(cfg.BriefsDir)
	cfg.LocalesDir = strings.TrimSpace(cfg.LocalesDir)

	if cfg.Firefly.VisualIntensity < 1 || cfg.Firefly.VisualIntensity > 10 {
		return Config{}, fmt.Errorf("%w: FIREFLY_VISUAL_INTENSITY must be between 1 and 10, got %d", ErrConfig, cfg.Firefly.VisualIntensity)
	}

	return cfg, nil
}

// AspectRatios parses RatioList in order, dropping duplicates. An empty
// result is not an error here; the pipeline rejects it before any request.
func (c Config) AspectRatios() ([]ratio.Ratio, error) {
	ratios, err := ratio.ParseList(c.RatioList)
	if err != nil {
		return nil, fmt.Errorf("%w: ASPECT_RATIOS: %w", ErrConfig, err)
	}
	return ratios, nil
}
