package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment parsing. A zero value means the
// variable was not set and the current Config value is kept.
type envConfig struct {
	APIBaseURL     string        `env:"TRANSIT_API_BASE_URL"`
	RequestTimeout time.Duration `env:"TRANSIT_REQUEST_TIMEOUT"`
	DatabaseFile   string        `env:"TRANSIT_DATABASE_FILE"`
	PollInterval   time.Duration `env:"TRANSIT_POLL_INTERVAL"`
	PlanRadiusKm   float64       `env:"TRANSIT_PLAN_RADIUS_KM"`
	StopRadiusM    float64       `env:"TRANSIT_STOP_RADIUS_M"`
}

// parseEnv overlays Config with values from TRANSIT_* environment variables.
// Parse errors are deliberately fatal: a malformed variable should not be
// silently replaced by a default.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabaseFile != "" {
		cfg.DatabaseFile = ec.DatabaseFile
	}
	if ec.PollInterval != 0 {
		cfg.PollInterval = ec.PollInterval
	}
	if ec.PlanRadiusKm != 0 {
		cfg.PlanRadiusKm = ec.PlanRadiusKm
	}
	if ec.StopRadiusM != 0 {
		cfg.StopRadiusM = ec.StopRadiusM
	}
}
