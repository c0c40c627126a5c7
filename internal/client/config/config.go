package config

import "time"

// Config holds runtime settings for the Tshwane Transit CLI.
//
// Fields:
//   - APIBaseURL: root of the backend REST API, e.g. "http://localhost:8000/api".
//   - RequestTimeout: deadline for every API request.
//   - DatabaseFile: name of the local SQLite file inside the data directory.
//   - PollInterval: how often the live bus-location watcher refreshes.
//   - PlanRadiusKm: stop search radius (km) sent with route-planning requests.
//   - StopRadiusM: search radius (m) for nearby-stop queries.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabaseFile   string
	PollInterval   time.Duration
	PlanRadiusKm   float64
	StopRadiusM    float64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 15 * time.Second
	c.DatabaseFile = "transit.db"
	c.PollInterval = 10 * time.Second
	c.PlanRadiusKm = 2
	c.StopRadiusM = 100
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
