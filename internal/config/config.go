package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Extractor
	ExtractorType string `envconfig:"EXTRACTOR_TYPE" default:"deepface"`
	DeepFaceURL   string `envconfig:"DEEPFACE_URL" default:"http://localhost:5000"`

	// Matching
	MatchThreshold float64 `envconfig:"MATCH_THRESHOLD" default:"0.65"`

	// Storage
	FacesDir   string `envconfig:"FACES_DIR" default:"faces"`
	ReportsDir string `envconfig:"REPORTS_DIR" default:"attendance_logs"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.MatchThreshold <= -1 || cfg.MatchThreshold >= 1 {
		return nil, fmt.Errorf("load config: MATCH_THRESHOLD %f out of range (-1, 1)", cfg.MatchThreshold)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
